package storage

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/config"
	"github.com/kakigori/storefront/internal/domain/repository"
	"github.com/kakigori/storefront/internal/storage/memory"
	"github.com/kakigori/storefront/internal/storage/postgres"
	"github.com/kakigori/storefront/internal/storage/redis"
)

// Credential store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Module provides the credential store selected by configuration.
var Module = fx.Provide(newCredentialStore)

type storeParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newCredentialStore(p storeParams) (repository.CredentialStore, error) {
	logger := p.Logger.With(slog.String("backend", p.Config.CredentialBackend))

	switch p.Config.CredentialBackend {
	case BackendMemory, "":
		return memory.New(), nil
	case BackendPostgres:
		store, err := postgres.Open(p.Ctx, p.Lifecycle, p.Config, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case BackendRedis:
		store, err := redis.Open(p.Ctx, p.Lifecycle, p.Config, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown credential backend %q", p.Config.CredentialBackend)
	}
}
