package admin

import (
	"context"
	"io"
	"net/http"

	"print3d-order-admin/internal/botconfig"
	"print3d-order-admin/internal/chat"
	"print3d-order-admin/internal/file"
	"print3d-order-admin/internal/order"
	"print3d-order-admin/internal/pkg/model"
	"print3d-order-admin/internal/stats"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Exporter interface {
	Orders(ctx context.Context, filter *model.OrderStatus, w io.Writer) error
}

type Services struct {
	Orders    order.Service
	Files     file.Service
	Chat      chat.Service
	BotConfig botconfig.Service
	Stats     stats.Service
	Export    Exporter
}

type Server struct {
	orders    order.Service
	files     file.Service
	chat      chat.Service
	botConfig botconfig.Service
	stats     stats.Service
	export    Exporter
	auth      *AuthManager
	validate  *validator.Validate
}

func NewServer(svc Services, auth *AuthManager) *Server {
	return &Server{
		orders:    svc.Orders,
		files:     svc.Files,
		chat:      svc.Chat,
		botConfig: svc.BotConfig,
		stats:     svc.Stats,
		export:    svc.Export,
		auth:      auth,
		validate:  validator.New(),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(instrument)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.login)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.Middleware)

			r.Get("/auth/verify", s.verify)

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", s.listOrders)
				r.Get("/stats", s.orderStats)
				r.Get("/export", s.exportOrders)
				r.Get("/{id}", s.getOrder)
				r.Put("/{id}", s.updateOrder)
				r.Get("/{id}/files", s.listFiles)
				r.Get("/{id}/messages", s.listMessages)
				r.Post("/{id}/messages", s.sendMessage)
			})

			r.Get("/files/{id}/download", s.downloadFile)

			r.Route("/bot-config", func(r chi.Router) {
				r.Get("/", s.getBotConfig)
				r.Put("/", s.updateBotConfig)
				r.Get("/texts", s.getBotTexts)
				r.Put("/texts", s.updateBotTexts)
				r.Get("/settings", s.getBotSettings)
				r.Put("/settings", s.updateBotSettings)
			})
		})
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
