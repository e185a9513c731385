package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"print3d-order-admin/internal/pkg/model"

	"github.com/xuri/excelize/v2"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName   = "Заявки"
	timeLayout  = "02.01.2006 15:04"
)

var orderHeaders = []string{
	"№", "Клиент", "Username", "Telegram ID", "Направление", "Статус", "Создана", "Описание",
}

var columnWidths = []struct {
	from, to string
	width    float64
}{
	{"B", "C", 25},
	{"E", "G", 18},
	{"H", "H", 60},
}

type OrderLister interface {
	GetOrders(ctx context.Context, filter *model.OrderStatus, page int) ([]model.Order, error)
}

type Exporter struct {
	orders OrderLister
}

func NewExporter(orders OrderLister) *Exporter {
	return &Exporter{orders: orders}
}

// Orders writes the first page of orders matching filter as an xlsx workbook.
func (e *Exporter) Orders(ctx context.Context, filter *model.OrderStatus, w io.Writer) error {
	orders, err := e.orders.GetOrders(ctx, filter, 1)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Error closing workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &orderHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(orderHeaders), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastHeader, style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, o := range orders {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := orderRow(o)
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write order %d: %w", o.ID, err)
		}
	}

	for _, cw := range columnWidths {
		if err := f.SetColWidth(sheetName, cw.from, cw.to, cw.width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	slog.Info("Orders exported", "count", len(orders))
	return nil
}

func orderRow(o model.Order) []interface{} {
	username := ""
	if o.Username != "" {
		username = "@" + strings.TrimPrefix(o.Username, "@")
	}
	return []interface{}{
		o.ID,
		o.FullName,
		username,
		o.UserID,
		string(o.Branch),
		o.Status.Label(),
		o.CreatedAt.Format(timeLayout),
		describe(o),
	}
}

// describe prefers the bot's own summary and falls back to the raw answers.
func describe(o model.Order) string {
	if s := strings.TrimSpace(o.Summary); s != "" {
		return s
	}

	keys := make([]string, 0, len(o.Payload))
	for k := range o.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, o.Payload[k]))
	}
	return strings.Join(parts, "; ")
}
