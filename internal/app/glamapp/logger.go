package glamapp

import (
	"log/slog"
	"os"

	"github.com/magabrotheeeer/glam-app/internal/config"
)

// SetupLogger выбирает формат логов по окружению.
func SetupLogger(env string) *slog.Logger {
	if env == config.EnvProduction {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
