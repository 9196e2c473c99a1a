package redis

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/config"
)

// Open connects using the configured address and closes the store when lc stops.
func Open(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	store, err := New(ctx, Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.CredentialTTL,
	}, logger)
	if err != nil {
		return nil, err
	}
	registerLifecycle(lc, store)
	return store, nil
}

func registerLifecycle(lc fx.Lifecycle, store *Store) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}
