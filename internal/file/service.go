package file

import (
	"context"
	"io"
	"log/slog"

	"print3d-order-admin/internal/pkg/model"
	"print3d-order-admin/internal/telegram"
)

type Orders interface {
	GetOrderFile(ctx context.Context, fileID int64) (*model.OrderFile, error)
}

type Telegram interface {
	Configured() bool
	GetFilePath(ctx context.Context, fileID string) (string, error)
	Download(ctx context.Context, filePath string) (io.ReadCloser, int64, error)
}

type Service interface {
	Retrieve(ctx context.Context, fileID int64) (*Download, error)
}

type DefaultService struct {
	orders Orders
	tg     Telegram
}

func NewDefaultService(orders Orders, tg Telegram) Service {
	return &DefaultService{
		orders: orders,
		tg:     tg,
	}
}

// Retrieve resolves the stored handle and opens the file on Telegram. Every
// call asks Telegram for a fresh path since paths expire.
func (d *DefaultService) Retrieve(ctx context.Context, fileID int64) (*Download, error) {
	f, err := d.orders.GetOrderFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !d.tg.Configured() {
		slog.Error("Cannot relay file without bot token", "fileID", fileID)
		return nil, telegram.ErrNoToken
	}

	filePath, err := d.tg.GetFilePath(ctx, f.TelegramFileID)
	if err != nil {
		slog.Error("Error resolving telegram file", "error", err, "fileID", fileID, "orderID", f.OrderID)
		return nil, &ErrDownloadFailed{FileID: fileID, Err: err}
	}

	body, size, err := d.tg.Download(ctx, filePath)
	if err != nil {
		slog.Error("Error downloading telegram file", "error", err, "fileID", fileID, "orderID", f.OrderID)
		return nil, &ErrDownloadFailed{FileID: fileID, Err: err}
	}

	name := displayName(f.ID, f.OriginalName)
	slog.Info("Relaying order file", "fileID", fileID, "orderID", f.OrderID, "size", size)
	return &Download{
		Name:      name,
		ASCIIName: asciiName(f.ID, name),
		MimeType:  f.MimeType,
		Body:      body,
		Size:      size,
	}, nil
}
