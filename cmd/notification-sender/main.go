package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/glam-app/internal/app/glamapp"
	"github.com/magabrotheeeer/glam-app/internal/app/sender"
	"github.com/magabrotheeeer/glam-app/internal/config"
	"github.com/magabrotheeeer/glam-app/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := glamapp.SetupLogger(cfg.Env)
	logger.Info("starting notification-sender", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := sender.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize notification-sender", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("notification-sender stopped with error", sl.Err(err))
		os.Exit(1)
	}
}
