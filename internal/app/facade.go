package app

import (
	"context"

	"github.com/kakigori/storefront/internal/board"
	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/usecase"
)

// StorefrontFacade joins the customer and operator use cases with the
// session-scoped boards for the HTTP layer.
type StorefrontFacade struct {
	ordering    *usecase.OrderingUseCase
	credentials *usecase.CredentialUseCase
	flows       *usecase.FlowStore
	boards      *BoardRegistry
}

func NewStorefrontFacade(ordering *usecase.OrderingUseCase, credentials *usecase.CredentialUseCase, flows *usecase.FlowStore, boards *BoardRegistry) *StorefrontFacade {
	return &StorefrontFacade{ordering: ordering, credentials: credentials, flows: flows, boards: boards}
}

func (f *StorefrontFacade) OrderState(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error) {
	id, err := usecase.NormalizeStoreID(storeID)
	if err != nil {
		return usecase.FlowState{}, err
	}
	return f.ordering.State(ctx, sessionID, id)
}

func (f *StorefrontFacade) FlowNext(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error) {
	id, err := usecase.NormalizeStoreID(storeID)
	if err != nil {
		return usecase.FlowState{}, err
	}
	return f.ordering.Next(ctx, sessionID, id)
}

func (f *StorefrontFacade) FlowBack(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error) {
	id, err := usecase.NormalizeStoreID(storeID)
	if err != nil {
		return usecase.FlowState{}, err
	}
	return f.ordering.Back(ctx, sessionID, id)
}

func (f *StorefrontFacade) SelectMenuItem(sessionID, storeID, menuItemID string) (usecase.Flow, error) {
	id, err := usecase.NormalizeStoreID(storeID)
	if err != nil {
		return usecase.Flow{}, err
	}
	return f.ordering.Select(sessionID, id, menuItemID)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, sessionID, storeID, menuItemID string) (*model.Order, error) {
	id, err := usecase.NormalizeStoreID(storeID)
	if err != nil {
		return nil, err
	}
	return f.ordering.SubmitSelection(ctx, sessionID, id, menuItemID)
}

func (f *StorefrontFacade) Receipt(ctx context.Context, storeID, orderID string) (*model.Order, error) {
	id, err := usecase.NormalizeStoreID(storeID)
	if err != nil {
		return nil, err
	}
	return f.ordering.Receipt(ctx, id, orderID)
}

func (f *StorefrontFacade) StoreConfig(ctx context.Context, sessionID string) model.StoreConfig {
	return f.credentials.Load(ctx, sessionID)
}

// SaveStoreConfig stores new credentials. A running admin board for other
// credentials is replaced on next access.
func (f *StorefrontFacade) SaveStoreConfig(ctx context.Context, sessionID, storeID, apiKey string) (model.StoreConfig, error) {
	return f.credentials.Save(ctx, sessionID, storeID, apiKey)
}

// Logout forgets the session's credentials and tears down its boards and flows.
func (f *StorefrontFacade) Logout(ctx context.Context, sessionID string) {
	f.credentials.Clear(ctx, sessionID)
	f.boards.Release(sessionID)
	f.flows.Forget(sessionID)
}

// Board returns the admin board of the session's configured store.
func (f *StorefrontFacade) Board(ctx context.Context, sessionID string) (*board.Controller, error) {
	cfg, err := f.credentials.RequireCredentials(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return f.boards.Admin(sessionID, cfg, f.credentials.Credentials(cfg))
}

// PublicBoard returns the "now serving" board of the session's configured store.
func (f *StorefrontFacade) PublicBoard(ctx context.Context, sessionID string) (*board.PublicBoard, error) {
	cfg, err := f.credentials.RequireCredentials(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return f.boards.Public(cfg, f.credentials.Credentials(cfg))
}
