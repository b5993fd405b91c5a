// Package main Glam API
//
// @title           Glam API
// @version         1.0
// @description     API магазина: учётные записи, сессии, каталог товаров и SMS

// @host      localhost:3000
// @BasePath  /
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/glam-app/internal/app/glamapp"
	"github.com/magabrotheeeer/glam-app/internal/config"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := glamapp.SetupLogger(cfg.Env)

	logger.Info("starting glam-app", slog.String("env", cfg.Env))
	logger.Debug("config loaded", slog.String("config", cfg.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := glamapp.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("glam-app stopped gracefully")
}
