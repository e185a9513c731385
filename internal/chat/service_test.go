package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"print3d-order-admin/internal/pkg/model"
	"print3d-order-admin/internal/telegram"
	"print3d-order-admin/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	messages  []DBMessage
	appendErr error
	clock     time.Time
}

func (m *memRepo) AppendMessage(ctx context.Context, orderID int64, direction, text string) (*DBMessage, error) {
	if m.appendErr != nil {
		return nil, m.appendErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.clock = m.clock.Add(time.Second)
	msg := DBMessage{
		ID:        int64(len(m.messages) + 1),
		OrderID:   orderID,
		Direction: direction,
		Text:      text,
		CreatedAt: m.clock,
	}
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func (m *memRepo) GetMessages(ctx context.Context, orderID int64, limit uint64) ([]DBMessage, error) {
	var out []DBMessage
	for _, msg := range m.messages {
		if msg.OrderID == orderID {
			out = append(out, msg)
		}
	}
	if uint64(len(out)) > limit {
		out = out[uint64(len(out))-limit:]
	}
	return out, nil
}

func (m *memRepo) inbound(orderID int64, text string) {
	m.clock = m.clock.Add(time.Second)
	m.messages = append(m.messages, DBMessage{
		ID:        int64(len(m.messages) + 1),
		OrderID:   orderID,
		Direction: "in",
		Text:      text,
		CreatedAt: m.clock,
	})
}

type stubOrders map[int64]*model.Order

func (s stubOrders) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	o, ok := s[orderID]
	if !ok {
		return nil, fmt.Errorf("order %d: %w", orderID, pkg.ErrNotFound)
	}
	return o, nil
}

type stubSender struct {
	err    error
	calls  int
	chatID int64
	text   string
	onSend func()
}

func (s *stubSender) SendText(ctx context.Context, chatID int64, text string) error {
	s.calls++
	s.chatID = chatID
	s.text = text
	if s.onSend != nil {
		s.onSend()
	}
	return s.err
}

func setup() (*memRepo, *stubSender, Service) {
	repo := &memRepo{clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	sender := &stubSender{}
	orders := stubOrders{
		5: {ID: 5, UserID: 777, Status: model.StatusInWork},
	}
	return repo, sender, NewDefaultService(repo, orders, sender)
}

func TestSend(t *testing.T) {
	repo, sender, svc := setup()

	msg, err := svc.Send(context.Background(), 5, "Готово, забирайте")
	require.NoError(t, err)
	assert.Equal(t, int64(777), sender.chatID)
	assert.Equal(t, "Готово, забирайте", sender.text)
	assert.Equal(t, model.DirectionOut, msg.Direction)
	assert.Equal(t, "Готово, забирайте", msg.Text)
	assert.NotZero(t, msg.ID)

	log, err := svc.Log(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, *msg, log[0])
	assert.Len(t, repo.messages, 1)
}

func TestSendEmptyText(t *testing.T) {
	repo, sender, svc := setup()

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.Send(context.Background(), 5, text)
		assert.ErrorIs(t, err, pkg.ErrValidation)
	}
	assert.Zero(t, sender.calls)
	assert.Empty(t, repo.messages)
}

func TestSendUnknownOrder(t *testing.T) {
	repo, sender, svc := setup()

	_, err := svc.Send(context.Background(), 6, "hello")
	assert.ErrorIs(t, err, pkg.ErrNotFound)
	assert.Zero(t, sender.calls)
	assert.Empty(t, repo.messages)
}

func TestSendRejected(t *testing.T) {
	repo, sender, svc := setup()
	sender.err = &telegram.ErrAPI{Method: "sendMessage", Reason: "Forbidden: bot was blocked by the user"}

	_, err := svc.Send(context.Background(), 5, "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, pkg.ErrDelivery)

	var delivery *ErrDeliveryFailed
	require.True(t, errors.As(err, &delivery))
	assert.Equal(t, "Forbidden: bot was blocked by the user", delivery.Reason)
	assert.Empty(t, repo.messages)
}

func TestSendUnreachable(t *testing.T) {
	repo, sender, svc := setup()
	sender.err = &telegram.ErrTransport{Method: "sendMessage", Err: context.DeadlineExceeded}

	_, err := svc.Send(context.Background(), 5, "hello")
	assert.ErrorIs(t, err, pkg.ErrDelivery)
	assert.Empty(t, repo.messages)
}

func TestSendWithoutToken(t *testing.T) {
	repo, sender, svc := setup()
	sender.err = telegram.ErrNoToken

	_, err := svc.Send(context.Background(), 5, "hello")
	assert.ErrorIs(t, err, pkg.ErrConfiguration)
	assert.NotErrorIs(t, err, pkg.ErrDelivery)
	assert.Empty(t, repo.messages)
}

func TestSendRecordFailureStillSucceeds(t *testing.T) {
	repo, sender, svc := setup()
	repo.appendErr = errors.New("connection reset")

	msg, err := svc.Send(context.Background(), 5, "hello")
	require.NoError(t, err)
	assert.Equal(t, 1, sender.calls)
	assert.Zero(t, msg.ID)
	assert.Equal(t, "hello", msg.Text)
}

func TestSendRecordedAfterCallerGone(t *testing.T) {
	repo, sender, svc := setup()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sender.onSend = cancel

	msg, err := svc.Send(ctx, 5, "hello")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	require.Len(t, repo.messages, 1)
	assert.Equal(t, "hello", repo.messages[0].Text)
}

func TestLogInterleaved(t *testing.T) {
	repo, _, svc := setup()
	repo.inbound(5, "Когда будет готово?")
	_, err := svc.Send(context.Background(), 5, "Завтра")
	require.NoError(t, err)
	repo.inbound(5, "Спасибо")
	repo.inbound(9, "other order")

	first, err := svc.Log(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, first, 3)
	assert.Equal(t, model.DirectionIn, first[0].Direction)
	assert.Equal(t, model.DirectionOut, first[1].Direction)
	assert.Equal(t, "Спасибо", first[2].Text)
	assert.True(t, first[0].CreatedAt.Before(first[1].CreatedAt))

	second, err := svc.Log(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLogUnknownOrder(t *testing.T) {
	_, _, svc := setup()

	_, err := svc.Log(context.Background(), 404)
	assert.ErrorIs(t, err, pkg.ErrNotFound)
}
