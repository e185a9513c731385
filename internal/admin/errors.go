package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"print3d-order-admin/internal/chat"
	"print3d-order-admin/internal/telegram"
	"print3d-order-admin/pkg"
)

// statusFor maps a component error onto an HTTP status and the message shown
// to the operator.
func statusFor(err error) (int, string) {
	var delivery *chat.ErrDeliveryFailed
	switch {
	case errors.Is(err, pkg.ErrUnauthorized):
		return http.StatusUnauthorized, "Недействительный токен"
	case errors.Is(err, pkg.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), pkg.ErrValidation.Error()+": ")
	case errors.Is(err, pkg.ErrNotFound):
		return http.StatusNotFound, "Не найдено"
	case errors.As(err, &delivery):
		if delivery.Reason != "" {
			return http.StatusBadGateway, "Не удалось отправить сообщение в Telegram: " + delivery.Reason
		}
		return http.StatusBadGateway, "Не удалось отправить сообщение в Telegram"
	case errors.Is(err, pkg.ErrConfiguration):
		return http.StatusInternalServerError, "Токен бота не настроен"
	case errors.Is(err, pkg.ErrUpstreamUnreachable):
		return http.StatusServiceUnavailable, "Telegram недоступен, повторите позже"
	case errors.Is(err, pkg.ErrUpstreamProtocol):
		if reason := telegram.Reason(err); reason != "" {
			return http.StatusBadGateway, "Telegram вернул ошибку: " + reason
		}
		return http.StatusBadGateway, "Telegram вернул ошибку"
	}
	return http.StatusInternalServerError, "Внутренняя ошибка сервера"
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "error", err, "method", r.Method, "path", r.URL.Path, "status", status)
	}
	writeJSON(w, status, errorResponse{Detail: msg})
}

// writePlainError is used where the client expects bytes, not JSON.
func writePlainError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed", "error", err, "method", r.Method, "path", r.URL.Path, "status", status)
	}
	http.Error(w, msg, status)
}
