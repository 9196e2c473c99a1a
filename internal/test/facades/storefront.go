// Package facades holds a storefront facade stub for HTTP layer tests. It is
// kept apart from package test so board and usecase tests can import that one.
package facades

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/kakigori/storefront/internal/board"
	"github.com/kakigori/storefront/internal/domain/model"
	testhelpers "github.com/kakigori/storefront/internal/test"
	"github.com/kakigori/storefront/internal/usecase"
)

// StorefrontFacadeStub provides controllable behaviour for every storefront endpoint.
// Boards default to real controllers over Gateway that never poll on their own.
type StorefrontFacadeStub struct {
	StateFn   func(context.Context, string, string) (usecase.FlowState, error)
	NextFn    func(context.Context, string, string) (usecase.FlowState, error)
	BackFn    func(context.Context, string, string) (usecase.FlowState, error)
	SelectFn  func(string, string, string) (usecase.Flow, error)
	PlaceFn   func(context.Context, string, string, string) (*model.Order, error)
	ReceiptFn func(context.Context, string, string) (*model.Order, error)

	ConfigFn     func(context.Context, string) model.StoreConfig
	SaveConfigFn func(context.Context, string, string, string) (model.StoreConfig, error)
	LogoutFn     func(context.Context, string)

	BoardFn       func(context.Context, string) (*board.Controller, error)
	PublicBoardFn func(context.Context, string) (*board.PublicBoard, error)

	Gateway *testhelpers.OrderGatewayStub

	mu      sync.Mutex
	admin   *board.Controller
	public  *board.PublicBoard
	logouts []string
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OrderState returns the configured state or the chat step.
func (s *StorefrontFacadeStub) OrderState(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error) {
	if s.StateFn != nil {
		return s.StateFn(ctx, sessionID, storeID)
	}
	return usecase.FlowState{StoreID: storeID, Step: usecase.StepChat}, nil
}

// FlowNext delegates to NextFn or reports the menu step.
func (s *StorefrontFacadeStub) FlowNext(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error) {
	if s.NextFn != nil {
		return s.NextFn(ctx, sessionID, storeID)
	}
	return usecase.FlowState{StoreID: storeID, Step: usecase.StepMenu, Flow: usecase.Flow{}.Next().Next()}, nil
}

// FlowBack delegates to BackFn or reports the chat step.
func (s *StorefrontFacadeStub) FlowBack(ctx context.Context, sessionID, storeID string) (usecase.FlowState, error) {
	if s.BackFn != nil {
		return s.BackFn(ctx, sessionID, storeID)
	}
	return usecase.FlowState{StoreID: storeID, Step: usecase.StepChat}, nil
}

// SelectMenuItem delegates to SelectFn or echoes the selection.
func (s *StorefrontFacadeStub) SelectMenuItem(sessionID, storeID, menuItemID string) (usecase.Flow, error) {
	if s.SelectFn != nil {
		return s.SelectFn(sessionID, storeID, menuItemID)
	}
	return usecase.Flow{}.Next().Next().Select(menuItemID)
}

// PlaceOrder delegates to PlaceFn or returns a pending order.
func (s *StorefrontFacadeStub) PlaceOrder(ctx context.Context, sessionID, storeID, menuItemID string) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, sessionID, storeID, menuItemID)
	}
	return &model.Order{ID: "order-1", MenuItemID: menuItemID, OrderNumber: 1, Status: model.OrderStatusPending}, nil
}

// Receipt delegates to ReceiptFn or returns a pending order.
func (s *StorefrontFacadeStub) Receipt(ctx context.Context, storeID, orderID string) (*model.Order, error) {
	if s.ReceiptFn != nil {
		return s.ReceiptFn(ctx, storeID, orderID)
	}
	return &model.Order{ID: orderID, OrderNumber: 1, Status: model.OrderStatusPending}, nil
}

// StoreConfig delegates to ConfigFn or reports an unconfigured session.
func (s *StorefrontFacadeStub) StoreConfig(ctx context.Context, sessionID string) model.StoreConfig {
	if s.ConfigFn != nil {
		return s.ConfigFn(ctx, sessionID)
	}
	return model.StoreConfig{}
}

// SaveStoreConfig delegates to SaveConfigFn or echoes the input.
func (s *StorefrontFacadeStub) SaveStoreConfig(ctx context.Context, sessionID, storeID, apiKey string) (model.StoreConfig, error) {
	if s.SaveConfigFn != nil {
		return s.SaveConfigFn(ctx, sessionID, storeID, apiKey)
	}
	return model.StoreConfig{StoreID: storeID, APIKey: apiKey}, nil
}

// Logout records the session and calls LogoutFn when set.
func (s *StorefrontFacadeStub) Logout(ctx context.Context, sessionID string) {
	s.mu.Lock()
	s.logouts = append(s.logouts, sessionID)
	s.mu.Unlock()
	if s.LogoutFn != nil {
		s.LogoutFn(ctx, sessionID)
	}
}

// Logouts returns the sessions passed to Logout.
func (s *StorefrontFacadeStub) Logouts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.logouts...)
}

func (s *StorefrontFacadeStub) gateway() *testhelpers.OrderGatewayStub {
	if s.Gateway == nil {
		s.Gateway = &testhelpers.OrderGatewayStub{}
	}
	return s.Gateway
}

// Board delegates to BoardFn or lazily builds one controller over Gateway.
func (s *StorefrontFacadeStub) Board(ctx context.Context, sessionID string) (*board.Controller, error) {
	if s.BoardFn != nil {
		return s.BoardFn(ctx, sessionID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin == nil {
		s.admin = board.NewController("store-001", model.Credentials{APIKey: "key"}, s.gateway(), discardLogger(), board.Options{
			PollInterval:   time.Hour,
			LongPressDelay: time.Minute,
		})
	}
	return s.admin, nil
}

// PublicBoard delegates to PublicBoardFn or lazily builds one board over Gateway.
func (s *StorefrontFacadeStub) PublicBoard(ctx context.Context, sessionID string) (*board.PublicBoard, error) {
	if s.PublicBoardFn != nil {
		return s.PublicBoardFn(ctx, sessionID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.public == nil {
		s.public = board.NewPublicBoard("store-001", model.Credentials{APIKey: "key"}, s.gateway(), discardLogger(), time.Hour)
	}
	return s.public, nil
}

// Close stops any boards built by the stub.
func (s *StorefrontFacadeStub) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.admin != nil {
		s.admin.Stop()
	}
	if s.public != nil {
		s.public.Stop()
	}
}
