package usecase

import (
	"errors"
	"fmt"
	"testing"
	"time"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
)

func TestFlowStepsAreClamped(t *testing.T) {
	var f Flow
	if f.Current() != StepChat {
		t.Fatalf("expected chat first, got %s", f.Current())
	}
	if f.Back().Current() != StepChat {
		t.Fatal("back on first step must stay")
	}

	f = f.Next()
	if f.Current() != StepConnectionNotice {
		t.Fatalf("expected connection notice, got %s", f.Current())
	}
	f = f.Next().Next().Next()
	if !f.AtMenu() {
		t.Fatalf("expected menu to be last, got %s", f.Current())
	}
}

func TestFlowSelectOnlyOnMenu(t *testing.T) {
	var f Flow
	if _, err := f.Select("m1"); !errors.Is(err, domainErrors.ErrFlowNotReady) {
		t.Fatalf("expected flow not ready, got %v", err)
	}

	f = f.Next().Next()
	f, err := f.Select("m1")
	if err != nil || f.MenuItemID != "m1" {
		t.Fatalf("unexpected select result %+v %v", f, err)
	}

	f = f.Back()
	if f.MenuItemID != "" {
		t.Fatal("leaving the menu must clear the selection")
	}
	if f.Next().MenuItemID != "" {
		t.Fatal("selection must not come back")
	}
}

func TestFlowStoreIsolation(t *testing.T) {
	store := NewFlowStore()
	_, _ = store.Update("s1", "store-001", func(f Flow) (Flow, error) { return f.Next(), nil })

	if store.Get("s1", "store-001").Current() != StepConnectionNotice {
		t.Fatal("expected update to persist")
	}
	if store.Get("s2", "store-001").Current() != StepChat {
		t.Fatal("sessions must be independent")
	}
	if store.Get("s1", "store-002").Current() != StepChat {
		t.Fatal("stores must be independent")
	}

	if _, err := store.Update("s1", "store-001", func(f Flow) (Flow, error) { return f.Select("m1") }); err == nil {
		t.Fatal("expected select error before menu step")
	}
	if store.Get("s1", "store-001").Current() != StepConnectionNotice {
		t.Fatal("failed update must keep the previous flow")
	}

	store.Forget("s1")
	if store.Get("s1", "store-001").Current() != StepChat {
		t.Fatal("expected flow forgotten")
	}
}

func TestFlowStoreSweepDropsIdleFlows(t *testing.T) {
	now := time.Unix(1_000, 0)
	store := NewFlowStoreWithClock(func() time.Time { return now })
	next := func(f Flow) (Flow, error) { return f.Next(), nil }

	_, _ = store.Update("idle", "store-001", next)
	now = now.Add(time.Minute)
	_, _ = store.Update("active", "store-001", next)
	_, _ = store.Update("read", "store-001", next)
	now = now.Add(time.Minute)
	store.Get("read", "store-001")
	store.Get("unknown", "store-001")

	if removed := store.Sweep(now.Add(-90 * time.Second)); removed != 1 {
		t.Fatalf("expected one idle flow removed, got %d", removed)
	}
	if store.Len() != 2 {
		t.Fatalf("expected two flows left, got %d", store.Len())
	}
	if store.Get("idle", "store-001").Current() != StepChat {
		t.Fatal("idle flow must restart")
	}

	if removed := store.Sweep(now.Add(-30 * time.Second)); removed != 1 {
		t.Fatalf("expected only the unread flow removed, got %d", removed)
	}
	if store.Len() != 1 || store.Get("read", "store-001").Current() != StepConnectionNotice {
		t.Fatal("reading a flow must keep it alive")
	}
}

func TestFlowStoreDoesNotGrowOnReads(t *testing.T) {
	store := NewFlowStore()
	for i := 0; i < 100; i++ {
		store.Get(fmt.Sprintf("sess-%d", i), "store-001")
	}
	if store.Len() != 0 {
		t.Fatalf("expected reads to store nothing, got %d", store.Len())
	}
}
