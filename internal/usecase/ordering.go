package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
	"github.com/kakigori/storefront/internal/domain/model"
)

// OrderGateway is the part of the order service used by customers.
type OrderGateway interface {
	ListMenu(ctx context.Context, storeID string, creds model.Credentials) ([]model.MenuItem, error)
	CreateOrder(ctx context.Context, storeID, menuItemID string, creds model.Credentials) (*model.Order, error)
	GetOrder(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error)
}

// FlowState is what the ordering page renders for a session.
type FlowState struct {
	StoreID string
	Step    Step
	Flow    Flow
	Menu    []model.MenuItem
}

// OrderingUseCase drives the customer ordering flow.
type OrderingUseCase struct {
	gateway   OrderGateway
	flows     *FlowStore
	clientKey string
	logger    *slog.Logger
}

// NewOrderingUseCase constructs OrderingUseCase.
func NewOrderingUseCase(gateway OrderGateway, flows *FlowStore, clientKey string, logger *slog.Logger) *OrderingUseCase {
	return &OrderingUseCase{gateway: gateway, flows: flows, clientKey: clientKey, logger: logger}
}

func (u *OrderingUseCase) creds() model.Credentials {
	return model.Credentials{ClientKey: u.clientKey}
}

// Menu returns the store menu.
func (u *OrderingUseCase) Menu(ctx context.Context, storeID string) ([]model.MenuItem, error) {
	if storeID == "" {
		return nil, domainErrors.ErrMissingStoreID
	}
	return u.gateway.ListMenu(ctx, storeID, u.creds())
}

// Submit places an order for the selected menu item.
func (u *OrderingUseCase) Submit(ctx context.Context, storeID, menuItemID string) (*model.Order, error) {
	if storeID == "" {
		return nil, domainErrors.ErrMissingStoreID
	}
	if strings.TrimSpace(menuItemID) == "" {
		return nil, domainErrors.ErrMissingSelection
	}
	order, err := u.gateway.CreateOrder(ctx, storeID, menuItemID, u.creds())
	if err != nil {
		u.logger.Error("order submission failed", slog.String("store", storeID), slog.String("error", err.Error()))
		return nil, err
	}
	u.logger.Info("order submitted",
		slog.String("store", storeID),
		slog.String("order", order.ID),
		slog.Int("number", order.OrderNumber),
	)
	return order, nil
}

// Receipt fetches an order for the receipt page.
func (u *OrderingUseCase) Receipt(ctx context.Context, storeID, orderID string) (*model.Order, error) {
	if storeID == "" {
		return nil, domainErrors.ErrMissingStoreID
	}
	if orderID == "" {
		return nil, domainErrors.ErrOrderNotFound
	}
	if err := ValidateOrderID(orderID); err != nil {
		return nil, err
	}
	return u.gateway.GetOrder(ctx, storeID, orderID, u.creds())
}

// State returns the flow of a session. The menu is fetched only on the menu step.
func (u *OrderingUseCase) State(ctx context.Context, sessionID, storeID string) (FlowState, error) {
	flow := u.flows.Get(sessionID, storeID)
	state := FlowState{StoreID: storeID, Step: flow.Current(), Flow: flow}
	if !flow.AtMenu() {
		return state, nil
	}
	menu, err := u.Menu(ctx, storeID)
	if err != nil {
		return state, err
	}
	state.Menu = menu
	return state, nil
}

// Next moves the session flow forward.
func (u *OrderingUseCase) Next(ctx context.Context, sessionID, storeID string) (FlowState, error) {
	_, _ = u.flows.Update(sessionID, storeID, func(f Flow) (Flow, error) { return f.Next(), nil })
	return u.State(ctx, sessionID, storeID)
}

// Back moves the session flow backward.
func (u *OrderingUseCase) Back(ctx context.Context, sessionID, storeID string) (FlowState, error) {
	_, _ = u.flows.Update(sessionID, storeID, func(f Flow) (Flow, error) { return f.Back(), nil })
	return u.State(ctx, sessionID, storeID)
}

// Select stores the chosen menu item for the session.
func (u *OrderingUseCase) Select(sessionID, storeID, menuItemID string) (Flow, error) {
	if strings.TrimSpace(menuItemID) == "" {
		return u.flows.Get(sessionID, storeID), domainErrors.ErrMissingSelection
	}
	return u.flows.Update(sessionID, storeID, func(f Flow) (Flow, error) { return f.Select(menuItemID) })
}

// SubmitSelection orders the explicit menu item, or the one chosen in the
// session flow when override is empty. The flow restarts after success.
func (u *OrderingUseCase) SubmitSelection(ctx context.Context, sessionID, storeID, override string) (*model.Order, error) {
	menuItemID := override
	if menuItemID == "" {
		menuItemID = u.flows.Get(sessionID, storeID).MenuItemID
	}
	order, err := u.Submit(ctx, storeID, menuItemID)
	if err != nil {
		return nil, err
	}
	u.flows.Reset(sessionID, storeID)
	return order, nil
}

// ReceiptPath is where a customer is sent after ordering.
func ReceiptPath(storeID, orderID string) string {
	return "/order/" + url.PathEscape(storeID) + "/receipt/" + url.PathEscape(orderID)
}
