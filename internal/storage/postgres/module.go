package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/config"
)

// Open connects to the configured database and closes the storage when lc stops.
func Open(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	storage, err := New(ctx, cfg.DatabaseURI, logger)
	if err != nil {
		return nil, err
	}
	registerLifecycle(lc, storage)
	return storage, nil
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
