package admin

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"print3d-order-admin/internal/pkg/model"
	"print3d-order-admin/internal/report"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decodeValid(w, r, &req, "Введите пароль"); err != nil {
		writeError(w, r, err)
		return
	}
	if !s.auth.CheckCredentials(req.Username, req.Password) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "Неверный логин или пароль"})
		return
	}

	token, err := s.auth.Mint(w)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, TokenType: "bearer"})
}

func (s *Server) verify(w http.ResponseWriter, r *http.Request) {
	claims, err := s.auth.ParseFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{Valid: true, User: claims.Subject})
}

// statusFilter reads ?status= (or ?status_filter=). Unknown values mean no filter.
func statusFilter(r *http.Request) *model.OrderStatus {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		raw = r.URL.Query().Get("status_filter")
	}
	status, ok := model.NormalizeStatus(raw)
	if !ok {
		return nil
	}
	return &status
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	orders, err := s.orders.GetOrders(r.Context(), statusFilter(r), page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) orderStats(w http.ResponseWriter, r *http.Request) {
	summary, err := s.stats.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsResponse(summary))
}

func (s *Server) exportOrders(w http.ResponseWriter, r *http.Request) {
	name := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", contentDisposition(name, name))
	if err := s.export.Orders(r.Context(), statusFilter(r), w); err != nil {
		w.Header().Del("Content-Disposition")
		writeError(w, r, err)
	}
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := s.orders.GetOrderByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(*o))
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req statusUpdateRequest
	if err := s.decodeValid(w, r, &req, "Недопустимый статус"); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := s.orders.GetOrderByID(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.orders.SetStatus(r.Context(), id, model.OrderStatus(req.Status)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Заявка обновлена"})
}

func (s *Server) listFiles(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	files, err := s.orders.GetOrderFiles(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := filesResponse{Files: make([]fileResponse, len(files))}
	for i, f := range files {
		resp.Files[i] = toFileResponse(f)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) downloadFile(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r, "id")
	if err != nil {
		writePlainError(w, r, err)
		return
	}

	dl, err := s.files.Retrieve(r.Context(), id)
	if err != nil {
		writePlainError(w, r, err)
		return
	}
	defer dl.Body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", contentDisposition(dl.ASCIIName, dl.Name))
	if dl.Size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(dl.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, dl.Body); err != nil {
		slog.Warn("File stream interrupted", "error", err, "fileID", id)
	}
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	messages, err := s.chat.Log(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := chatLogResponse{Messages: make([]chatMessageResponse, len(messages))}
	for i, m := range messages {
		resp.Messages[i] = toChatMessageResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := s.pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req messageRequest
	if err := s.decodeValid(w, r, &req, "Текст сообщения пустой"); err != nil {
		writeError(w, r, err)
		return
	}

	msg, err := s.chat.Send(r.Context(), id, req.Text)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toChatMessageResponse(*msg))
}

func (s *Server) getBotConfig(w http.ResponseWriter, r *http.Request) {
	values, err := s.botConfig.GetAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) updateBotConfig(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := s.decode(w, r, &values); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.botConfig.UpdateAll(r.Context(), values); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Настройки сохранены"})
}

func (s *Server) getBotTexts(w http.ResponseWriter, r *http.Request) {
	texts, err := s.botConfig.Texts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, texts)
}

func (s *Server) updateBotTexts(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := s.decode(w, r, &values); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.botConfig.UpdateTexts(r.Context(), values); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Тексты сохранены"})
}

func (s *Server) getBotSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.botConfig.Settings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) updateBotSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if err := s.decode(w, r, &values); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.botConfig.UpdateSettings(r.Context(), values); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Настройки сохранены"})
}
