package order

import "time"

type DBOrder struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Username  string    `db:"username"`
	FullName  string    `db:"full_name"`
	Branch    string    `db:"branch"`
	Status    string    `db:"status"`
	Payload   string    `db:"order_payload"`
	Summary   string    `db:"summary"`
	CreatedAt time.Time `db:"created_at"`
}

type DBOrderFile struct {
	ID             int64     `db:"id"`
	OrderID        int64     `db:"order_id"`
	TelegramFileID string    `db:"telegram_file_id"`
	OriginalName   string    `db:"original_name"`
	MimeType       string    `db:"mime_type"`
	CreatedAt      time.Time `db:"created_at"`
}

type DBStatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}
