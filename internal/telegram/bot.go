package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"print3d-order-admin/internal/pkg/config"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const (
	methodGetFile     = "getFile"
	methodDownload    = "downloadFile"
	methodSendMessage = "sendMessage"
)

// Client is the slice of the Bot API the admin surface needs. It never polls
// for updates: the bot process owns the update stream.
type Client struct {
	api     *bot.Bot
	client  *http.Client
	timeout time.Duration
}

// NewClient builds a client for cfg. An empty token yields an unconfigured
// client whose calls fail with ErrNoToken.
func NewClient(cfg *config.TelegramCfg, httpClient *http.Client) (*Client, error) {
	c := &Client{
		client:  httpClient,
		timeout: cfg.Timeout,
	}
	if cfg.Token == "" {
		slog.Warn("Telegram bot token is not configured, file and message relay are disabled")
		return c, nil
	}

	opts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(cfg.Timeout, httpClient),
	}
	if cfg.APIURL != "" {
		opts = append(opts, bot.WithServerURL(cfg.APIURL))
	}

	api, err := bot.New(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot instance: %w", err)
	}
	c.api = api
	return c, nil
}

func (c *Client) Configured() bool {
	return c.api != nil
}

// GetFilePath exchanges a long-lived file handle for the short-lived path the
// download endpoint accepts.
func (c *Client) GetFilePath(ctx context.Context, fileID string) (string, error) {
	if c.api == nil {
		return "", ErrNoToken
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	file, err := c.api.GetFile(ctx, &bot.GetFileParams{
		FileID: fileID,
	})
	if err != nil {
		err = classify(ctx, methodGetFile, err)
		observe(methodGetFile, err, start)
		return "", err
	}
	if file == nil || file.FilePath == "" {
		err = &ErrAPI{Method: methodGetFile, Reason: "response has no file_path"}
		observe(methodGetFile, err, start)
		return "", err
	}

	observe(methodGetFile, nil, start)
	return file.FilePath, nil
}

// Download opens the file at filePath. The caller owns the returned body.
// size is -1 when Telegram does not report a length.
func (c *Client) Download(ctx context.Context, filePath string) (body io.ReadCloser, size int64, err error) {
	if c.api == nil {
		return nil, 0, ErrNoToken
	}

	start := time.Now()
	defer func() {
		observe(methodDownload, err, start)
	}()

	link := c.api.FileDownloadLink(&models.File{FilePath: filePath})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, 0, &ErrAPI{Method: methodDownload, Reason: "bad file path", Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, classify(ctx, methodDownload, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, 0, &ErrAPI{Method: methodDownload, Reason: resp.Status}
	}

	return resp.Body, resp.ContentLength, nil
}

func (c *Client) SendText(ctx context.Context, chatID int64, text string) error {
	if c.api == nil {
		return ErrNoToken
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	_, err := c.api.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		err = classify(ctx, methodSendMessage, err)
	}
	observe(methodSendMessage, err, start)
	return err
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
