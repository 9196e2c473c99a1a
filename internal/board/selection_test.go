package board

import (
	"reflect"
	"testing"

	"github.com/kakigori/storefront/internal/domain/model"
)

func TestSelectionToggleTwiceIsIdentity(t *testing.T) {
	s := NewSelection()
	s.Toggle(model.OrderStatusPending, "a")
	before := s.Selected(model.OrderStatusPending)

	s.Toggle(model.OrderStatusPending, "b")
	s.Toggle(model.OrderStatusPending, "b")

	if got := s.Selected(model.OrderStatusPending); !reflect.DeepEqual(got, before) {
		t.Fatalf("expected %v after double toggle, got %v", before, got)
	}
}

func TestSelectionIsAllSelectedEmptyList(t *testing.T) {
	s := NewSelection()
	if s.IsAllSelected(model.OrderStatusPending, nil) {
		t.Fatal("empty list must never be all selected")
	}
	s.SelectAll(model.OrderStatusPending, []string{"a"})
	if s.IsAllSelected(model.OrderStatusPending, []model.Order{}) {
		t.Fatal("empty list must never be all selected")
	}
}

func TestSelectionSelectAllReplaces(t *testing.T) {
	s := NewSelection()
	s.Toggle(model.OrderStatusPending, "stale")
	s.SelectAll(model.OrderStatusPending, []string{"b", "a"})

	if got := s.Selected(model.OrderStatusPending); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected selection %v", got)
	}
	orders := []model.Order{{ID: "a"}, {ID: "b"}}
	if !s.IsAllSelected(model.OrderStatusPending, orders) {
		t.Fatal("expected all selected")
	}
	if s.IsAllSelected(model.OrderStatusPending, append(orders, model.Order{ID: "c"})) {
		t.Fatal("expected partial selection")
	}
}

func TestSelectionStatusesAreIndependent(t *testing.T) {
	s := NewSelection()
	s.Toggle(model.OrderStatusPending, "a")
	s.Toggle(model.OrderStatusWaitingPickup, "b")

	s.Clear(model.OrderStatusPending)
	if s.Count(model.OrderStatusPending) != 0 {
		t.Fatal("expected pending cleared")
	}
	if !s.IsSelected(model.OrderStatusWaitingPickup, "b") {
		t.Fatal("expected waiting selection untouched")
	}

	s.ClearAll()
	if s.Count(model.OrderStatusWaitingPickup) != 0 {
		t.Fatal("expected everything cleared")
	}
}

func TestSelectionRetain(t *testing.T) {
	s := NewSelection()
	s.SelectAll(model.OrderStatusPending, []string{"a", "b", "c"})
	s.Retain(model.OrderStatusPending, []string{"b", "c", "d"})

	if got := s.Selected(model.OrderStatusPending); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Fatalf("unexpected selection after retain %v", got)
	}
}
