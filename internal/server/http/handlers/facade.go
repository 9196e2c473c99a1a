package handlers

import (
	"context"

	"github.com/kakigori/storefront/internal/board"
	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/usecase"
)

// OrderingFacade describes the customer ordering operations used by handlers.
type OrderingFacade interface {
	OrderState(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error)
	FlowNext(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error)
	FlowBack(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error)
	SelectMenuItem(sessionID, storeID, menuItemID string) (usecase.Flow, error)
	PlaceOrder(ctx context.Context, sessionID, storeID, menuItemID string) (*model.Order, error)
	Receipt(ctx context.Context, storeID, orderID string) (*model.Order, error)
}

// CredentialFacade manages the operator's stored store configuration.
type CredentialFacade interface {
	StoreConfig(ctx context.Context, sessionID string) model.StoreConfig
	SaveStoreConfig(ctx context.Context, sessionID, storeID, apiKey string) (model.StoreConfig, error)
	Logout(ctx context.Context, sessionID string)
}

// BoardFacade resolves the boards of a session.
type BoardFacade interface {
	Board(ctx context.Context, sessionID string) (*board.Controller, error)
	PublicBoard(ctx context.Context, sessionID string) (*board.PublicBoard, error)
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	OrderingFacade
	CredentialFacade
	BoardFacade
}
