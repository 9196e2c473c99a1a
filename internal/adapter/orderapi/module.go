package orderapi

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/config"
)

// Module exposes the order service client to the fx graph as Client.
var Module = fx.Provide(fx.Annotate(newClient, fx.As(new(Client))))

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (*HTTPClient, error) {
	mode, err := ParseLookupMode(p.Config.OrderLookupMode)
	if err != nil {
		return nil, err
	}
	return NewHTTPClient(p.Config.OrderAPIAddress, Options{
		ClientKeyHeader: p.Config.ClientKeyHeader,
		APIKeyHeader:    p.Config.APIKeyHeader,
		LookupMode:      mode,
		Timeout:         p.Config.RequestTimeout,
	}, p.Logger)
}
