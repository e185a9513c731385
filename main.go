package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"print3d-order-admin/internal/admin"
	"print3d-order-admin/internal/botconfig"
	"print3d-order-admin/internal/chat"
	"print3d-order-admin/internal/file"
	"print3d-order-admin/internal/migrations"
	"print3d-order-admin/internal/order"
	"print3d-order-admin/internal/pkg"
	"print3d-order-admin/internal/pkg/config"
	"print3d-order-admin/internal/pkg/metrics"
	"print3d-order-admin/internal/report"
	"print3d-order-admin/internal/stats"
	"print3d-order-admin/internal/telegram"

	"github.com/jackc/pgx"
	"github.com/joho/godotenv"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatal(err)
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal(err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	})))

	if cfg.DB.Migrate {
		if err := migrations.Up(ctx, cfg.DB.DSN); err != nil {
			log.Fatal(err)
		}
	}

	connCfg, err := pgx.ParseConnectionString(cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	pool, err := pgx.NewConnPool(pgx.ConnPoolConfig{
		ConnConfig:     connCfg,
		MaxConnections: cfg.DB.MaxConnections,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	metrics.MustRegister()

	tg, err := telegram.NewClient(&cfg.Telegram, pkg.NewHTTPClient(cfg.Telegram.Timeout))
	if err != nil {
		log.Fatal(err)
	}

	orderService := order.NewDefaultService(order.NewDefaultRepo(pool))
	fileService := file.NewDefaultService(orderService, tg)
	chatService := chat.NewDefaultService(chat.NewDefaultRepo(pool), orderService, tg)
	configService := botconfig.NewDefaultService(botconfig.NewDefaultRepo(pool))
	statsService := stats.NewDefaultService(orderService)

	server := admin.NewServer(admin.Services{
		Orders:    orderService,
		Files:     fileService,
		Chat:      chatService,
		BotConfig: configService,
		Stats:     statsService,
		Export:    report.NewExporter(orderService),
	}, admin.NewAuthManager(&cfg.Admin))

	httpServer := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      server.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		slog.Info("Admin API listening", "addr", cfg.HTTP.Addr, "telegram", tg.Configured())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")
	ctx, shutdown := context.WithTimeout(context.Background(), time.Second*15)
	defer shutdown()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatal(err)
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
