package usecase

import (
	"sync"
	"time"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
)

// Step is a screen of the customer ordering flow.
type Step string

const (
	StepChat             Step = "chat"
	StepConnectionNotice Step = "connectionNotice"
	StepMenu             Step = "menu"
)

// Steps lists the flow in order.
var Steps = []Step{StepChat, StepConnectionNotice, StepMenu}

// Flow is the position of one customer in the ordering flow together with
// the menu item chosen on the menu step.
type Flow struct {
	index      int
	MenuItemID string
}

// Current returns the active step.
func (f Flow) Current() Step {
	return Steps[f.index]
}

// AtMenu reports whether the menu step is active.
func (f Flow) AtMenu() bool {
	return f.Current() == StepMenu
}

// Next advances one step, staying on the last one.
func (f Flow) Next() Flow {
	if f.index < len(Steps)-1 {
		f.index++
	}
	return f
}

// Back returns one step, staying on the first one. Leaving the menu step
// drops the selection.
func (f Flow) Back() Flow {
	if f.index == 0 {
		return f
	}
	if f.AtMenu() {
		f.MenuItemID = ""
	}
	f.index--
	return f
}

// Select records the chosen menu item. Only valid on the menu step.
func (f Flow) Select(menuItemID string) (Flow, error) {
	if !f.AtMenu() {
		return f, domainErrors.ErrFlowNotReady
	}
	f.MenuItemID = menuItemID
	return f, nil
}

type flowKey struct {
	session string
	store   string
}

type flowEntry struct {
	flow     Flow
	lastSeen time.Time
}

// FlowStore keeps ordering flows per session and store in memory. Flows
// untouched since a Sweep cutoff are dropped.
type FlowStore struct {
	now func() time.Time

	mu    sync.Mutex
	flows map[flowKey]*flowEntry
}

// NewFlowStore creates an empty store.
func NewFlowStore() *FlowStore {
	return NewFlowStoreWithClock(time.Now)
}

// NewFlowStoreWithClock creates an empty store stamping access with now.
func NewFlowStoreWithClock(now func() time.Time) *FlowStore {
	return &FlowStore{now: now, flows: make(map[flowKey]*flowEntry)}
}

// Get returns the flow of a session, starting at the first step when unknown.
// Unknown flows are not stored.
func (s *FlowStore) Get(sessionID, storeID string) Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.flows[flowKey{session: sessionID, store: storeID}]
	if !ok {
		return Flow{}
	}
	entry.lastSeen = s.now()
	return entry.flow
}

// Update applies fn to the stored flow atomically.
func (s *FlowStore) Update(sessionID, storeID string, fn func(Flow) (Flow, error)) (Flow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := flowKey{session: sessionID, store: storeID}
	var current Flow
	if entry, ok := s.flows[key]; ok {
		current = entry.flow
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	s.flows[key] = &flowEntry{flow: next, lastSeen: s.now()}
	return next, nil
}

// Reset forgets the flow of a session for a store.
func (s *FlowStore) Reset(sessionID, storeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, flowKey{session: sessionID, store: storeID})
}

// Forget removes every flow of a session.
func (s *FlowStore) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.flows {
		if key.session == sessionID {
			delete(s.flows, key)
		}
	}
}

// Sweep removes flows last used before cutoff and returns how many were removed.
func (s *FlowStore) Sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, entry := range s.flows {
		if entry.lastSeen.Before(cutoff) {
			delete(s.flows, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored flows.
func (s *FlowStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.flows)
}
