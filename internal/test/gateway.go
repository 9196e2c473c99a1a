package test

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
	"github.com/kakigori/storefront/internal/domain/model"
)

// AdvanceCall records a status change request.
type AdvanceCall struct {
	StoreID string
	OrderID string
	To      model.OrderStatus
}

// OrderGatewayStub keeps orders in memory and records calls for tests.
// Fn fields override the default behavior.
type OrderGatewayStub struct {
	mu sync.Mutex

	Menu   []model.MenuItem
	Orders []model.Order
	Next   int

	MenuFn    func(ctx context.Context, storeID string, creds model.Credentials) ([]model.MenuItem, error)
	CreateFn  func(ctx context.Context, storeID, menuItemID string, creds model.Credentials) (*model.Order, error)
	GetFn     func(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error)
	ListFn    func(ctx context.Context, storeID string, filter *model.OrderStatus, creds model.Credentials) ([]model.Order, error)
	AdvanceFn func(ctx context.Context, storeID, orderID string, to model.OrderStatus) (*model.Order, error)

	ListCalls    int
	CreateCalls  int
	AdvanceCalls []AdvanceCall
	LastCreds    model.Credentials
}

// ListMenu returns the configured menu.
func (s *OrderGatewayStub) ListMenu(ctx context.Context, storeID string, creds model.Credentials) ([]model.MenuItem, error) {
	s.mu.Lock()
	s.LastCreds = creds
	fn := s.MenuFn
	menu := append([]model.MenuItem(nil), s.Menu...)
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, storeID, creds)
	}
	return menu, nil
}

// CreateOrder appends a pending order.
func (s *OrderGatewayStub) CreateOrder(ctx context.Context, storeID, menuItemID string, creds model.Credentials) (*model.Order, error) {
	s.mu.Lock()
	s.CreateCalls++
	s.LastCreds = creds
	fn := s.CreateFn
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, storeID, menuItemID, creds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Next++
	order := model.Order{
		ID:          fmt.Sprintf("order-%d", s.Next),
		MenuItemID:  menuItemID,
		OrderNumber: s.Next,
		Status:      model.OrderStatusPending,
	}
	for _, item := range s.Menu {
		if item.ID == menuItemID {
			order.MenuName = item.Name
		}
	}
	s.Orders = append(s.Orders, order)
	return &order, nil
}

// GetOrder finds an order by id.
func (s *OrderGatewayStub) GetOrder(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	s.mu.Lock()
	s.LastCreds = creds
	fn := s.GetFn
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, storeID, orderID, creds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.ID == orderID {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrOrderNotFound
}

// ListOrders returns a copy of the stored orders.
func (s *OrderGatewayStub) ListOrders(ctx context.Context, storeID string, filter *model.OrderStatus, creds model.Credentials) ([]model.Order, error) {
	s.mu.Lock()
	s.ListCalls++
	s.LastCreds = creds
	fn := s.ListFn
	s.mu.Unlock()

	if fn != nil {
		return fn(ctx, storeID, filter, creds)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	orders := make([]model.Order, 0, len(s.Orders))
	for _, o := range s.Orders {
		if filter == nil || o.Status == *filter {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// AdvanceToWaitingPickup records and applies the change.
func (s *OrderGatewayStub) AdvanceToWaitingPickup(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	return s.advance(ctx, storeID, orderID, model.OrderStatusWaitingPickup)
}

// AdvanceToComplete records and applies the change.
func (s *OrderGatewayStub) AdvanceToComplete(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error) {
	return s.advance(ctx, storeID, orderID, model.OrderStatusCompleted)
}

func (s *OrderGatewayStub) advance(ctx context.Context, storeID, orderID string, to model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	s.AdvanceCalls = append(s.AdvanceCalls, AdvanceCall{StoreID: storeID, OrderID: orderID, To: to})
	fn := s.AdvanceFn
	s.mu.Unlock()

	if fn != nil {
		order, err := fn(ctx, storeID, orderID, to)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.Orders {
		if o.ID == orderID {
			s.Orders[i].Status = to
			order := s.Orders[i]
			return &order, nil
		}
	}
	return nil, domainErrors.ErrOrderNotFound
}

// Calls returns a copy of the recorded advance calls.
func (s *OrderGatewayStub) Calls() []AdvanceCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AdvanceCall(nil), s.AdvanceCalls...)
}

// Lists returns how many times ListOrders was called.
func (s *OrderGatewayStub) Lists() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ListCalls
}

// SetOrders replaces the stored orders.
func (s *OrderGatewayStub) SetOrders(orders []model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Orders = append([]model.Order(nil), orders...)
}
