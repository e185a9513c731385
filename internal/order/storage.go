package order

import (
	"context"
	"errors"
	"fmt"

	"print3d-order-admin/pkg"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx"
)

type Repo interface {
	GetOrderByID(ctx context.Context, orderID int64) (*DBOrder, error)
	GetOrders(ctx context.Context, statuses []string, limit, offset uint64) ([]DBOrder, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) (bool, error)
	CountOrdersByStatus(ctx context.Context) ([]DBStatusCount, error)
	GetOrderFiles(ctx context.Context, orderID int64) ([]DBOrderFile, error)
	GetOrderFileByID(ctx context.Context, fileID int64) (*DBOrderFile, error)
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var orderColumns = []string{
	"id",
	"user_id",
	"COALESCE(username, '')",
	"COALESCE(full_name, '')",
	"branch",
	"status",
	"COALESCE(order_payload::text, '{}')",
	"COALESCE(summary, '')",
	"created_at",
}

var fileColumns = []string{
	"id",
	"order_id",
	"telegram_file_id",
	"COALESCE(original_name, '')",
	"COALESCE(mime_type, '')",
	"created_at",
}

type DefaultRepo struct {
	db *pgx.ConnPool
}

func NewDefaultRepo(db *pgx.ConnPool) Repo {
	return &DefaultRepo{db: db}
}

func (d *DefaultRepo) GetOrderByID(ctx context.Context, orderID int64) (*DBOrder, error) {
	query, args, err := psql.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	var order DBOrder
	err = scanOrder(d.db.QueryRowEx(ctx, query, nil, args...), &order)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil,
			&pkg.ErrDBProcedure{
				Cause: "failed to select order",
				Info:  fmt.Sprintf("orderID: %d", orderID),
				Err:   err,
			}
	}
	return &order, nil
}

func (d *DefaultRepo) GetOrders(ctx context.Context, statuses []string, limit, offset uint64) ([]DBOrder, error) {
	builder := psql.Select(orderColumns...).
		From("orders").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset)
	if len(statuses) > 0 {
		builder = builder.Where(sq.Eq{"status": statuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	rows, err := d.db.QueryEx(ctx, query, nil, args...)
	if err != nil {
		return nil,
			&pkg.ErrDBProcedure{
				Cause: "failed to select orders",
				Info:  fmt.Sprintf("query: %s", query),
				Err:   err,
			}
	}
	defer rows.Close()

	var orders []DBOrder
	for rows.Next() {
		var order DBOrder
		if err := scanOrder(rows, &order); err != nil {
			return nil, &pkg.ErrDBProcedure{Cause: "failed to scan order", Err: err}
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to iterate orders", Err: err}
	}
	return orders, nil
}

func (d *DefaultRepo) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (bool, error) {
	query, args, err := psql.Update("orders").
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return false, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	tag, err := d.db.ExecEx(ctx, query, nil, args...)
	if err != nil {
		return false,
			&pkg.ErrDBProcedure{
				Cause: "failed to update order status",
				Info:  fmt.Sprintf("orderID: %d, status: %s", orderID, status),
				Err:   err,
			}
	}
	return tag.RowsAffected() > 0, nil
}

func (d *DefaultRepo) CountOrdersByStatus(ctx context.Context) ([]DBStatusCount, error) {
	query, args, err := psql.Select("status", "COUNT(*)").
		From("orders").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	rows, err := d.db.QueryEx(ctx, query, nil, args...)
	if err != nil {
		return nil,
			&pkg.ErrDBProcedure{
				Cause: "failed to count orders",
				Info:  fmt.Sprintf("query: %s", query),
				Err:   err,
			}
	}
	defer rows.Close()

	var counts []DBStatusCount
	for rows.Next() {
		var c DBStatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, &pkg.ErrDBProcedure{Cause: "failed to scan status count", Err: err}
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to iterate status counts", Err: err}
	}
	return counts, nil
}

func (d *DefaultRepo) GetOrderFiles(ctx context.Context, orderID int64) ([]DBOrderFile, error) {
	query, args, err := psql.Select(fileColumns...).
		From("order_files").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	rows, err := d.db.QueryEx(ctx, query, nil, args...)
	if err != nil {
		return nil,
			&pkg.ErrDBProcedure{
				Cause: "failed to select order files",
				Info:  fmt.Sprintf("orderID: %d", orderID),
				Err:   err,
			}
	}
	defer rows.Close()

	var files []DBOrderFile
	for rows.Next() {
		var file DBOrderFile
		if err := scanFile(rows, &file); err != nil {
			return nil, &pkg.ErrDBProcedure{Cause: "failed to scan order file", Err: err}
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to iterate order files", Err: err}
	}
	return files, nil
}

func (d *DefaultRepo) GetOrderFileByID(ctx context.Context, fileID int64) (*DBOrderFile, error) {
	query, args, err := psql.Select(fileColumns...).
		From("order_files").
		Where(sq.Eq{"id": fileID}).
		ToSql()
	if err != nil {
		return nil, &pkg.ErrDBProcedure{Cause: "failed to build query", Err: err}
	}

	var file DBOrderFile
	err = scanFile(d.db.QueryRowEx(ctx, query, nil, args...), &file)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil,
			&pkg.ErrDBProcedure{
				Cause: "failed to select order file",
				Info:  fmt.Sprintf("fileID: %d", fileID),
				Err:   err,
			}
	}
	return &file, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row scanner, o *DBOrder) error {
	return row.Scan(&o.ID, &o.UserID, &o.Username, &o.FullName, &o.Branch, &o.Status, &o.Payload, &o.Summary, &o.CreatedAt)
}

func scanFile(row scanner, f *DBOrderFile) error {
	return row.Scan(&f.ID, &f.OrderID, &f.TelegramFileID, &f.OriginalName, &f.MimeType, &f.CreatedAt)
}
