package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"cv-align/infrastructure"
	"cv-align/interfaces"
)

func main() {
	// Load .env
	_ = godotenv.Load()

	cfg, err := infrastructure.LoadConfig()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(infrastructure.NewLogger(cfg.LogLevel))

	// Session store: MySQL when configured, cookie otherwise
	var sessions infrastructure.SessionStore = infrastructure.NewCookieStore(cfg.Session)
	if cfg.Session.DSN != "" {
		db, err := infrastructure.NewMySQLConnection(cfg.Session.DSN)
		if err != nil {
			slog.Error("failed to open session database", slog.Any("error", err))
			os.Exit(1)
		}
		sessions = infrastructure.NewDBStore(db, cfg.Session)
	}

	// Activity events: RabbitMQ when configured
	var activity infrastructure.ActivityPublisher = infrastructure.NopPublisher{}
	if cfg.Broker.URL != "" {
		rmq, err := infrastructure.NewRabbitMQ(cfg.Broker)
		if err != nil {
			slog.Error("failed to connect to broker", slog.Any("error", err))
			os.Exit(1)
		}
		defer rmq.Close()
		activity = rmq
	}

	router := gin.Default()
	interfaces.NewHTTPHandler(router, &interfaces.HTTPHandler{
		API:             infrastructure.NewClient(cfg.API),
		Sessions:        sessions,
		Activity:        activity,
		ReferenceSkills: cfg.Dashboard.ReferenceSkills,
	})

	slog.Info("cvalign web running",
		slog.String("port", cfg.Server.Port),
		slog.String("api", cfg.API.BaseURL),
	)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}
