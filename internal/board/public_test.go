package board

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kakigori/storefront/internal/domain/model"
	testhelpers "github.com/kakigori/storefront/internal/test"
)

func TestPublicBoardHidesCompleted(t *testing.T) {
	gw := &testhelpers.OrderGatewayStub{Orders: sampleOrders()}
	b := NewPublicBoard("store-001", model.Credentials{APIKey: "key"}, gw, testLogger(), time.Hour)
	defer b.Stop()

	if err := b.refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := b.View()
	if len(v.Columns) != 2 {
		t.Fatalf("expected two columns, got %d", len(v.Columns))
	}
	for _, col := range v.Columns {
		if col.Status == model.OrderStatusCompleted {
			t.Fatal("completed must not be shown")
		}
	}
	if got := numbers(v.Columns[0].Orders); len(got) != 3 || got[0] != 2 || got[2] != 9 {
		t.Fatalf("expected pending ascending, got %v", got)
	}
	if v.Columns[1].Label != "呼出中" {
		t.Fatalf("unexpected label %s", v.Columns[1].Label)
	}
}

func TestPublicBoardContinuesAfterFailures(t *testing.T) {
	var calls atomic.Int32
	gw := &testhelpers.OrderGatewayStub{
		ListFn: func(context.Context, string, *model.OrderStatus, model.Credentials) ([]model.Order, error) {
			if calls.Add(1) == 1 {
				return nil, errors.New("network down")
			}
			return sampleOrders(), nil
		},
	}
	b := NewPublicBoard("store-001", model.Credentials{}, gw, testLogger(), 2*time.Millisecond)
	b.Start()
	waitFor(t, func() bool { return b.View().Error == nil && calls.Load() >= 2 && !b.View().Loading })
	b.Stop()

	if calls.Load() < 2 {
		t.Fatal("expected polling to continue after a failure")
	}
}

func TestPublicBoardErrorState(t *testing.T) {
	gw := &testhelpers.OrderGatewayStub{
		ListFn: func(context.Context, string, *model.OrderStatus, model.Credentials) ([]model.Order, error) {
			return nil, errors.New("network down")
		},
	}
	b := NewPublicBoard("store-001", model.Credentials{}, gw, testLogger(), time.Hour)
	defer b.Stop()

	if err := b.refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if v := b.View(); v.Phase != LoadError || v.Error == nil || v.Loading {
		t.Fatalf("expected error view, got %+v", v)
	}
}

func TestPublicBoardIgnoresResultsAfterStop(t *testing.T) {
	gw := &testhelpers.OrderGatewayStub{Orders: sampleOrders()}
	b := NewPublicBoard("store-001", model.Credentials{}, gw, testLogger(), time.Hour)
	b.Stop()

	if err := b.refresh(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected closed error, got %v", err)
	}
	if v := b.View(); len(v.Columns[0].Orders) != 0 || !v.Loading {
		t.Fatalf("expected untouched view, got %+v", v)
	}
	b.Start()
	if gw.Lists() != 0 {
		t.Fatal("stopped board must not restart")
	}
}
