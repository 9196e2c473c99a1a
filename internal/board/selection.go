package board

import (
	"sort"
	"sync"

	"github.com/kakigori/storefront/internal/domain/model"
)

// Selection tracks selected order ids per status column.
type Selection struct {
	mu   sync.Mutex
	sets map[model.OrderStatus]map[string]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{sets: make(map[model.OrderStatus]map[string]struct{})}
}

// Toggle adds id to the status set, or removes it when already present.
func (s *Selection) Toggle(status model.OrderStatus, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.sets[status]
	if _, ok := set[id]; ok {
		delete(set, id)
		return
	}
	if set == nil {
		set = make(map[string]struct{})
		s.sets[status] = set
	}
	set[id] = struct{}{}
}

// SelectAll replaces the status set with exactly ids.
func (s *Selection) SelectAll(status model.OrderStatus, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.sets[status] = set
}

// Clear empties the status set.
func (s *Selection) Clear(status model.OrderStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, status)
}

// ClearAll empties every set.
func (s *Selection) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets = make(map[model.OrderStatus]map[string]struct{})
}

// IsSelected reports whether id is selected in status.
func (s *Selection) IsSelected(status model.OrderStatus, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sets[status][id]
	return ok
}

// IsAllSelected reports whether every order is selected. It is false for an empty list.
func (s *Selection) IsAllSelected(status model.OrderStatus, orders []model.Order) bool {
	if len(orders) == 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.sets[status]
	for _, o := range orders {
		if _, ok := set[o.ID]; !ok {
			return false
		}
	}
	return true
}

// Selected returns the sorted ids selected in status.
func (s *Selection) Selected(status model.OrderStatus) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.sets[status]))
	for id := range s.sets[status] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of ids selected in status.
func (s *Selection) Count(status model.OrderStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sets[status])
}

// Retain drops selected ids of status that are not in ids.
func (s *Selection) Retain(status model.OrderStatus, ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.sets[status]
	if len(set) == 0 {
		return
	}
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	for id := range set {
		if _, ok := keep[id]; !ok {
			delete(set, id)
		}
	}
}
