package model

import "time"

type OrderStatus string

const (
	StatusNew       OrderStatus = "new"
	StatusFilling   OrderStatus = "filling"
	StatusSubmitted OrderStatus = "submitted"
	StatusInWork    OrderStatus = "in_work"
	StatusDone      OrderStatus = "done"
	StatusCanceled  OrderStatus = "canceled"

	// statusDraft is written by the bot for orders the client has not submitted yet.
	statusDraft OrderStatus = "draft"
)

// Statuses lists the canonical lifecycle states in display order.
var Statuses = []OrderStatus{
	StatusNew,
	StatusFilling,
	StatusSubmitted,
	StatusInWork,
	StatusDone,
	StatusCanceled,
}

// ActiveStatuses are the in-flight states counted as active on the dashboard.
var ActiveStatuses = []OrderStatus{
	StatusNew,
	StatusFilling,
	StatusSubmitted,
	StatusInWork,
}

var statusLabels = map[OrderStatus]string{
	statusDraft:     "Черновик",
	StatusNew:       "Новая заявка",
	StatusFilling:   "Заполняется",
	StatusSubmitted: "Новая заявка",
	StatusInWork:    "В работе",
	StatusDone:      "Готово",
	StatusCanceled:  "Отменено",
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusFilling, StatusSubmitted, StatusInWork, StatusDone, StatusCanceled:
		return true
	}
	return false
}

func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// NormalizeStatus maps a stored status value onto the canonical set.
// A draft order is one still being filled in by the client.
func NormalizeStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(raw)
	if status == statusDraft {
		return StatusFilling, true
	}
	return status, status.Valid()
}

type Branch string

const (
	BranchPrint  Branch = "print"
	BranchScan   Branch = "scan"
	BranchIdea   Branch = "idea"
	BranchDialog Branch = "dialog"
)

type Order struct {
	ID        int64
	UserID    int64
	Username  string
	FullName  string
	Branch    Branch
	Status    OrderStatus
	Payload   map[string]any
	Summary   string
	CreatedAt time.Time
}

type OrderFile struct {
	ID             int64
	OrderID        int64
	TelegramFileID string
	OriginalName   string
	MimeType       string
	CreatedAt      time.Time
}

type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

type ChatMessage struct {
	ID        int64
	OrderID   int64
	Direction Direction
	Text      string
	CreatedAt time.Time
}
