package main

import (
	"log/slog"
	"net/http"

	"github.com/guardline/guardline/internal/app"
	"github.com/guardline/guardline/internal/config"
	"github.com/guardline/guardline/internal/logger"
	"github.com/guardline/guardline/internal/routes"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

	app, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		panic(err)
	}
	defer func() {
		closeErr := app.Close()
		if closeErr != nil {
			slog.Error("failed to close app", "error", closeErr)
		}
	}()

	handler := routes.SetupRoutes(app)

	slog.Info("server starting", "app", cfg.AppName, "env", cfg.AppEnv, "port", cfg.Port)

	err = http.ListenAndServe(":"+cfg.Port, handler)
	if err != nil {
		slog.Error("server stopped", "error", err)
		panic(err)
	}
}
