package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/kakigori/storefront/internal/adapter/orderapi"
	"github.com/kakigori/storefront/internal/config"
	"github.com/kakigori/storefront/internal/domain/repository"
)

// Module provides the customer and operator use cases to the fx container.
var Module = fx.Provide(
	NewFlowStore,
	newOrderingUseCase,
	newCredentialUseCase,
)

type orderingParams struct {
	fx.In

	Config  *config.Config
	Gateway orderapi.Client
	Flows   *FlowStore
	Logger  *slog.Logger
}

func newOrderingUseCase(p orderingParams) *OrderingUseCase {
	return NewOrderingUseCase(p.Gateway, p.Flows, p.Config.ClientKey, p.Logger)
}

type credentialParams struct {
	fx.In

	Config *config.Config
	Store  repository.CredentialStore
	Logger *slog.Logger
}

func newCredentialUseCase(p credentialParams) *CredentialUseCase {
	return NewCredentialUseCase(p.Store, p.Config.ClientKey, p.Logger)
}
