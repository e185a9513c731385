package admin

import (
	"fmt"
	"time"

	"print3d-order-admin/internal/pkg/model"
	"print3d-order-admin/internal/stats"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

type verifyResponse struct {
	Valid bool   `json:"valid"`
	User  string `json:"user"`
}

type statusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=new filling submitted in_work done canceled"`
}

type messageRequest struct {
	Text string `json:"text" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type orderResponse struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Username    string         `json:"username"`
	FullName    string         `json:"full_name"`
	Branch      string         `json:"branch"`
	Status      string         `json:"status"`
	StatusLabel string         `json:"status_label"`
	Payload     map[string]any `json:"order_payload"`
	Summary     string         `json:"summary"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toOrderResponse(o model.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		Username:    o.Username,
		FullName:    o.FullName,
		Branch:      string(o.Branch),
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
		Payload:     o.Payload,
		Summary:     o.Summary,
		CreatedAt:   o.CreatedAt,
	}
}

type fileResponse struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"order_id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	CreatedAt    time.Time `json:"created_at"`
	DownloadURL  string    `json:"download_url"`
}

type filesResponse struct {
	Files []fileResponse `json:"files"`
}

func toFileResponse(f model.OrderFile) fileResponse {
	return fileResponse{
		ID:           f.ID,
		OrderID:      f.OrderID,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		CreatedAt:    f.CreatedAt,
		DownloadURL:  fmt.Sprintf("/api/files/%d/download", f.ID),
	}
}

type chatMessageResponse struct {
	ID        int64     `json:"id"`
	Direction string    `json:"direction"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

type chatLogResponse struct {
	Messages []chatMessageResponse `json:"messages"`
}

func toChatMessageResponse(m model.ChatMessage) chatMessageResponse {
	return chatMessageResponse{
		ID:        m.ID,
		Direction: string(m.Direction),
		Text:      m.Text,
		Timestamp: m.CreatedAt,
	}
}

type statsResponse struct {
	TotalOrders  int            `json:"total_orders"`
	NewOrders    int            `json:"new_orders"`
	ActiveOrders int            `json:"active_orders"`
	ByStatus     map[string]int `json:"by_status"`
}

func toStatsResponse(s *stats.Summary) statsResponse {
	byStatus := make(map[string]int, len(s.PerStatus))
	for status, n := range s.PerStatus {
		byStatus[string(status)] = n
	}
	return statsResponse{
		TotalOrders:  s.Total,
		NewOrders:    s.NewCount,
		ActiveOrders: s.ActiveCount,
		ByStatus:     byStatus,
	}
}
