package chat

import (
	"context"
	"fmt"

	"print3d-order-admin/pkg"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx"
)

type Repo interface {
	AppendMessage(ctx context.Context, orderID int64, direction, text string) (*DBMessage, error)
	// GetMessages returns up to limit newest messages, oldest first.
	GetMessages(ctx context.Context, orderID int64, limit uint64) ([]DBMessage, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type DefaultRepo struct {
	db *pgx.ConnPool
}

func NewDefaultRepo(db *pgx.ConnPool) Repo {
	return &DefaultRepo{db: db}
}

func (d *DefaultRepo) AppendMessage(ctx context.Context, orderID int64, direction, text string) (*DBMessage, error) {
	query, args, err := psql.Insert("order_messages").
		Columns("order_id", "direction", "message_text").
		Values(orderID, direction, text).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	msg := DBMessage{
		OrderID:   orderID,
		Direction: direction,
		Text:      text,
	}
	if err := d.db.QueryRowEx(ctx, query, nil, args...).Scan(&msg.ID, &msg.CreatedAt); err != nil {
		return nil,
			&pkg.ErrDBProcedure{
				Cause: "failed to insert message",
				Info:  fmt.Sprintf("orderID: %d, direction: %s", orderID, direction),
				Err:   err,
			}
	}
	return &msg, nil
}

func (d *DefaultRepo) GetMessages(ctx context.Context, orderID int64, limit uint64) ([]DBMessage, error) {
	newest := psql.Select("id", "order_id", "direction", "message_text", "created_at").
		From("order_messages").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	query, args, err := psql.Select("*").
		FromSelect(newest, "m").
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	rows, err := d.db.QueryEx(ctx, query, nil, args...)
	if err != nil {
		return nil,
			&pkg.ErrDBProcedure{
				Cause: "failed to select messages",
				Info:  fmt.Sprintf("orderID: %d", orderID),
				Err:   err,
			}
	}
	defer rows.Close()

	var messages []DBMessage
	for rows.Next() {
		var m DBMessage
		if err := rows.Scan(&m.ID, &m.OrderID, &m.Direction, &m.Text, &m.CreatedAt); err != nil {
			return nil, &pkg.ErrDBProcedure{Cause: "failed to scan message", Err: err}
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to iterate messages", Err: err}
	}
	return messages, nil
}
