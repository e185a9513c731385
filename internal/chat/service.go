package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"print3d-order-admin/internal/pkg/model"
	"print3d-order-admin/internal/telegram"
	"print3d-order-admin/pkg"
)

// LogLimit caps how many messages Log returns.
const LogLimit = 500

type Orders interface {
	GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error)
}

type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

type Service interface {
	Send(ctx context.Context, orderID int64, text string) (*model.ChatMessage, error)
	Log(ctx context.Context, orderID int64) ([]model.ChatMessage, error)
}

type DefaultService struct {
	repo   Repo
	orders Orders
	sender Sender
}

func NewDefaultService(repo Repo, orders Orders, sender Sender) Service {
	return &DefaultService{
		repo:   repo,
		orders: orders,
		sender: sender,
	}
}

// Send delivers text to the order's client and records it only once Telegram
// accepted it. A delivered message that fails to record is still a successful
// send; the returned message then has a zero ID.
func (d *DefaultService) Send(ctx context.Context, orderID int64, text string) (*model.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	order, err := d.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := d.sender.SendText(ctx, order.UserID, text); err != nil {
		slog.Error("Error delivering message", "error", err, "orderID", orderID, "userID", order.UserID)
		if errors.Is(err, pkg.ErrConfiguration) {
			return nil, err
		}
		return nil, &ErrDeliveryFailed{OrderID: orderID, Reason: telegram.Reason(err), Err: err}
	}

	msg, err := d.repo.AppendMessage(context.WithoutCancel(ctx), orderID, string(model.DirectionOut), text)
	if err != nil {
		slog.Error("Message delivered but not recorded", "error", err, "orderID", orderID)
		return &model.ChatMessage{
			OrderID:   orderID,
			Direction: model.DirectionOut,
			Text:      text,
			CreatedAt: time.Now(),
		}, nil
	}

	slog.Info("Message sent to client", "orderID", orderID, "messageID", msg.ID)
	result := toChatMessage(*msg)
	return &result, nil
}

// Log returns the conversation oldest first.
func (d *DefaultService) Log(ctx context.Context, orderID int64) ([]model.ChatMessage, error) {
	if _, err := d.orders.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}

	dbMessages, err := d.repo.GetMessages(ctx, orderID, LogLimit)
	if err != nil {
		slog.Error("Error retrieving messages", "error", err, "orderID", orderID)
		return nil, err
	}

	messages := make([]model.ChatMessage, len(dbMessages))
	for i, m := range dbMessages {
		messages[i] = toChatMessage(m)
	}
	return messages, nil
}

func toChatMessage(m DBMessage) model.ChatMessage {
	return model.ChatMessage{
		ID:        m.ID,
		OrderID:   m.OrderID,
		Direction: model.Direction(m.Direction),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}
