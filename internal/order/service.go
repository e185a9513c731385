package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"print3d-order-admin/internal/pkg/model"
	"print3d-order-admin/pkg"
)

// PageSize caps every order listing.
const PageSize = 500

type Service interface {
	GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error)
	GetOrders(ctx context.Context, filter *model.OrderStatus, page int) ([]model.Order, error)
	SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error)
	GetOrderFiles(ctx context.Context, orderID int64) ([]model.OrderFile, error)
	GetOrderFile(ctx context.Context, fileID int64) (*model.OrderFile, error)
}

type DefaultService struct {
	repo Repo
}

func NewDefaultService(repo Repo) Service {
	return &DefaultService{
		repo: repo,
	}
}

func (d *DefaultService) GetOrderByID(ctx context.Context, orderID int64) (*model.Order, error) {
	if orderID <= 0 {
		return nil, fmt.Errorf("order %d: %w", orderID, pkg.ErrNotFound)
	}

	dbOrder, err := d.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		slog.Error("Error retrieving order", "error", err, "orderID", orderID)
		return nil, err
	}
	if dbOrder == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, pkg.ErrNotFound)
	}

	order := toOrder(*dbOrder)
	return &order, nil
}

// GetOrders lists orders newest first, PageSize per page. A filter outside the
// status set is ignored.
func (d *DefaultService) GetOrders(ctx context.Context, filter *model.OrderStatus, page int) ([]model.Order, error) {
	if page < 1 {
		page = 1
	}

	var statuses []string
	if filter != nil && filter.Valid() {
		statuses = storedStatuses(*filter)
	}

	dbOrders, err := d.repo.GetOrders(ctx, statuses, PageSize, uint64(page-1)*PageSize)
	if err != nil {
		slog.Error("Error retrieving orders", "error", err, "statuses", statuses)
		return nil, err
	}

	orders := make([]model.Order, len(dbOrders))
	for i, dbOrder := range dbOrders {
		orders[i] = toOrder(dbOrder)
	}
	return orders, nil
}

// SetStatus is a no-op for statuses outside the set and for unknown orders.
func (d *DefaultService) SetStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if orderID <= 0 || !status.Valid() {
		slog.Warn("Ignoring status update", "orderID", orderID, "status", status)
		return nil
	}

	updated, err := d.repo.UpdateOrderStatus(ctx, orderID, string(status))
	if err != nil {
		slog.Error("Error updating order status", "error", err, "orderID", orderID, "status", status)
		return err
	}
	if !updated {
		slog.Warn("Status update matched no order", "orderID", orderID, "status", status)
	}
	return nil
}

func (d *DefaultService) CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error) {
	rows, err := d.repo.CountOrdersByStatus(ctx)
	if err != nil {
		slog.Error("Error counting orders by status", "error", err)
		return nil, err
	}

	counts := make(map[model.OrderStatus]int, len(model.Statuses))
	for _, status := range model.Statuses {
		counts[status] = 0
	}
	for _, row := range rows {
		status, ok := model.NormalizeStatus(row.Status)
		if !ok {
			slog.Warn("Skipping orders with unknown status", "status", row.Status, "count", row.Count)
			continue
		}
		counts[status] += row.Count
	}
	return counts, nil
}

func (d *DefaultService) GetOrderFiles(ctx context.Context, orderID int64) ([]model.OrderFile, error) {
	dbFiles, err := d.repo.GetOrderFiles(ctx, orderID)
	if err != nil {
		slog.Error("Error retrieving order files", "error", err, "orderID", orderID)
		return nil, err
	}

	files := make([]model.OrderFile, len(dbFiles))
	for i, file := range dbFiles {
		files[i] = toOrderFile(file)
	}
	return files, nil
}

func (d *DefaultService) GetOrderFile(ctx context.Context, fileID int64) (*model.OrderFile, error) {
	if fileID <= 0 {
		return nil, fmt.Errorf("file %d: %w", fileID, pkg.ErrNotFound)
	}

	dbFile, err := d.repo.GetOrderFileByID(ctx, fileID)
	if err != nil {
		slog.Error("Error retrieving order file", "error", err, "fileID", fileID)
		return nil, err
	}
	if dbFile == nil {
		return nil, fmt.Errorf("file %d: %w", fileID, pkg.ErrNotFound)
	}

	file := toOrderFile(*dbFile)
	return &file, nil
}

// storedStatuses expands a canonical status into the raw values that read as it.
func storedStatuses(status model.OrderStatus) []string {
	if status == model.StatusFilling {
		return []string{string(model.StatusFilling), "draft"}
	}
	return []string{string(status)}
}

func toOrder(o DBOrder) model.Order {
	status, ok := model.NormalizeStatus(o.Status)
	if !ok {
		slog.Warn("Order has unknown status", "orderID", o.ID, "status", o.Status)
	}

	payload := make(map[string]any)
	if o.Payload != "" {
		if err := json.Unmarshal([]byte(o.Payload), &payload); err != nil {
			slog.Warn("Order payload is not a JSON object", "orderID", o.ID, "error", err)
			payload = make(map[string]any)
		}
	}

	return model.Order{
		ID:        o.ID,
		UserID:    o.UserID,
		Username:  o.Username,
		FullName:  o.FullName,
		Branch:    model.Branch(o.Branch),
		Status:    status,
		Payload:   payload,
		Summary:   o.Summary,
		CreatedAt: o.CreatedAt,
	}
}

func toOrderFile(f DBOrderFile) model.OrderFile {
	return model.OrderFile{
		ID:             f.ID,
		OrderID:        f.OrderID,
		TelegramFileID: f.TelegramFileID,
		OriginalName:   f.OriginalName,
		MimeType:       f.MimeType,
		CreatedAt:      f.CreatedAt,
	}
}
