// Package driver выбирает реализацию storage.Repository по конфигурации.
package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/glam-app/internal/config"
	"github.com/magabrotheeeer/glam-app/internal/storage"
	"github.com/magabrotheeeer/glam-app/internal/storage/memory"
	"github.com/magabrotheeeer/glam-app/internal/storage/mongodb"
	"github.com/magabrotheeeer/glam-app/internal/storage/postgresql"
)

// Поддерживаемые значения storage.driver.
const (
	Postgres = "postgres"
	MongoDB  = "mongodb"
	Memory   = "memory"
)

// Open подключает хранилище, указанное в cfg.Driver.
func Open(ctx context.Context, cfg config.Storage, log *slog.Logger) (storage.Repository, error) {
	const op = "storage.driver.Open"

	log = log.With(slog.String("op", op), slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case Postgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("%s: postgres_dsn is empty", op)
		}
		s, err := postgresql.New(ctx, cfg.PostgresDSN, cfg.MigrateOnStart)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("storage connected", slog.Bool("migrated", cfg.MigrateOnStart))
		return s, nil
	case MongoDB:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("%s: mongo_uri is empty", op)
		}
		s, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		log.Info("storage connected", slog.String("database", cfg.MongoDatabase))
		return s, nil
	case Memory, "":
		log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("%s: unknown driver %q", op, cfg.Driver)
	}
}
