package session

import (
	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/config"
)

// Module provides the session Signer.
var Module = fx.Provide(newSigner)

type signerParams struct {
	fx.In

	Config *config.Config
}

func newSigner(p signerParams) *Signer {
	return NewSigner(p.Config.SessionSecret, Options{TTL: p.Config.SessionTTL})
}
