package repository

import (
	"context"
	"time"

	"github.com/kakigori/storefront/internal/domain/model"
)

// CredentialStore persists operator store configuration per session.
// Load returns a zero StoreConfig when nothing is stored.
type CredentialStore interface {
	Load(ctx context.Context, sessionID string) (model.StoreConfig, error)
	Save(ctx context.Context, sessionID string, cfg model.StoreConfig) error
	Clear(ctx context.Context, sessionID string) error
}

// CredentialPurger is implemented by stores that cannot expire entries on
// their own. Purge removes entries last written before cutoff.
type CredentialPurger interface {
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}
