package usecase

import (
	"context"
	"log/slog"
	"strings"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/domain/repository"
)

// CredentialUseCase manages the store id and API key remembered per session.
// Storage failures never fail a request: reads degrade to "not configured"
// and writes are logged.
type CredentialUseCase struct {
	store     repository.CredentialStore
	clientKey string
	logger    *slog.Logger
}

// NewCredentialUseCase constructs CredentialUseCase.
func NewCredentialUseCase(store repository.CredentialStore, clientKey string, logger *slog.Logger) *CredentialUseCase {
	return &CredentialUseCase{store: store, clientKey: clientKey, logger: logger}
}

// Load returns the stored config, or the zero value when absent or unreadable.
func (u *CredentialUseCase) Load(ctx context.Context, sessionID string) model.StoreConfig {
	cfg, err := u.store.Load(ctx, sessionID)
	if err != nil {
		u.logger.Warn("credential read failed", slog.String("session", sessionID), slog.String("error", err.Error()))
		return model.StoreConfig{}
	}
	return cfg
}

// Save trims and stores the operator's store id and key.
func (u *CredentialUseCase) Save(ctx context.Context, sessionID, storeID, apiKey string) (model.StoreConfig, error) {
	id, err := NormalizeStoreID(storeID)
	if err != nil {
		return model.StoreConfig{}, err
	}
	cfg := model.StoreConfig{StoreID: id, APIKey: strings.TrimSpace(apiKey)}
	if err := u.store.Save(ctx, sessionID, cfg); err != nil {
		u.logger.Warn("credential write failed", slog.String("session", sessionID), slog.String("error", err.Error()))
	}
	return cfg, nil
}

// Clear forgets the session's credentials.
func (u *CredentialUseCase) Clear(ctx context.Context, sessionID string) {
	if err := u.store.Clear(ctx, sessionID); err != nil {
		u.logger.Warn("credential clear failed", slog.String("session", sessionID), slog.String("error", err.Error()))
	}
}

// RequireStore returns the stored config or ErrMissingStoreID.
func (u *CredentialUseCase) RequireStore(ctx context.Context, sessionID string) (model.StoreConfig, error) {
	cfg := u.Load(ctx, sessionID)
	if !cfg.Configured() {
		return cfg, domainErrors.ErrMissingStoreID
	}
	return cfg, nil
}

// RequireCredentials returns the stored config when both store id and key are set.
func (u *CredentialUseCase) RequireCredentials(ctx context.Context, sessionID string) (model.StoreConfig, error) {
	cfg, err := u.RequireStore(ctx, sessionID)
	if err != nil {
		return cfg, err
	}
	if cfg.APIKey == "" {
		return cfg, domainErrors.ErrMissingCredentials
	}
	return cfg, nil
}

// Credentials builds request credentials for a stored config.
func (u *CredentialUseCase) Credentials(cfg model.StoreConfig) model.Credentials {
	return cfg.Credentials(u.clientKey)
}
