package telegram

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"print3d-order-admin/internal/pkg/metrics"
	"print3d-order-admin/pkg"

	"github.com/go-telegram/bot"
)

var ErrNoToken = fmt.Errorf("%w: telegram bot token is not set", pkg.ErrConfiguration)

// ErrAPI means Telegram answered, but not with what was asked for.
type ErrAPI struct {
	Method string
	Reason string
	Err    error
}

func (e *ErrAPI) Error() string {
	return fmt.Sprintf("telegram %s failed: %s", e.Method, e.Reason)
}

func (e *ErrAPI) Unwrap() error {
	return e.Err
}

func (e *ErrAPI) Is(target error) bool {
	return target == pkg.ErrUpstreamProtocol
}

// ErrTransport means no answer arrived: connection failure or timeout.
type ErrTransport struct {
	Method string
	Err    error
}

func (e *ErrTransport) Error() string {
	return fmt.Errorf("telegram %s unreachable: %w", e.Method, e.Err).Error()
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

func (e *ErrTransport) Is(target error) bool {
	return target == pkg.ErrUpstreamUnreachable
}

// Reason returns the description Telegram attached to a failed call, if any.
func Reason(err error) string {
	var apiErr *ErrAPI
	if errors.As(err, &apiErr) {
		return apiErr.Reason
	}
	return ""
}

// Library prefixes for failures that happen before Telegram answers. The
// library rebuilds these errors from text, so the net types are gone.
var transportPrefixes = []string{
	"error do request for method ",
	"error read response body for method ",
}

func classify(ctx context.Context, method string, err error) error {
	if isRejection(err) {
		return &ErrAPI{Method: method, Reason: description(err), Err: err}
	}
	if isTransport(ctx, err) {
		return &ErrTransport{Method: method, Err: err}
	}
	return &ErrAPI{Method: method, Reason: description(err), Err: err}
}

func isRejection(err error) bool {
	var tooMany *bot.TooManyRequestsError
	var migrate *bot.MigrateError
	return errors.Is(err, bot.ErrorBadRequest) ||
		errors.Is(err, bot.ErrorForbidden) ||
		errors.Is(err, bot.ErrorUnauthorized) ||
		errors.Is(err, bot.ErrorNotFound) ||
		errors.Is(err, bot.ErrorConflict) ||
		errors.As(err, &tooMany) ||
		errors.As(err, &migrate)
}

func isTransport(ctx context.Context, err error) bool {
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &urlErr) ||
		errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		ctx.Err() != nil {
		return true
	}
	msg := err.Error()
	for _, prefix := range transportPrefixes {
		if strings.Contains(msg, prefix) {
			return true
		}
	}
	return false
}

// description strips the library prefix ("forbidden, Forbidden: bot was
// blocked by the user") down to Telegram's own text.
func description(err error) string {
	msg := err.Error()
	if _, rest, ok := strings.Cut(msg, ", "); ok && rest != "" {
		return rest
	}
	return msg
}

func observe(method string, err error, start time.Time) {
	outcome := "ok"
	switch {
	case errors.Is(err, pkg.ErrUpstreamUnreachable):
		outcome = "unreachable"
	case err != nil:
		outcome = "rejected"
	}
	metrics.ObserveTelegram(method, outcome, time.Since(start))
}
