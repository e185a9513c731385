package chat

import "time"

type DBMessage struct {
	ID        int64     `db:"id"`
	OrderID   int64     `db:"order_id"`
	Direction string    `db:"direction"`
	Text      string    `db:"message_text"`
	CreatedAt time.Time `db:"created_at"`
}
