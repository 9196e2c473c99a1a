package board

import (
	"sync"
	"time"

	"github.com/kakigori/storefront/internal/domain/model"
)

// DefaultLongPressDelay is the hold time before a press becomes a drag.
const DefaultLongPressDelay = 160 * time.Millisecond

// Point is a pointer position in board coordinates.
type Point struct {
	X float64
	Y float64
}

// Size is the extent of a card.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains reports whether p lies inside r. Edges on the top-left are inclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Column is the drop area of one status.
type Column struct {
	Status model.OrderStatus
	Bounds Rect
}

// Layout lists the drop areas currently rendered.
type Layout []Column

// ColumnAt returns the status whose column contains p.
func (l Layout) ColumnAt(p Point) (model.OrderStatus, bool) {
	for _, c := range l {
		if c.Bounds.Contains(p) {
			return c.Status, true
		}
	}
	return "", false
}

// Timer is a cancellable pending callback.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Phase is the recognizer state.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseArmed    Phase = "armed"
	PhaseDragging Phase = "dragging"
)

// DragSession describes the card being dragged.
type DragSession struct {
	OrderID       string
	Origin        model.OrderStatus
	PointerOffset Point
	CardSize      Size
}

// TransitionRequest is emitted when a card is dropped on a legal column.
type TransitionRequest struct {
	OrderID string
	From    model.OrderStatus
	To      model.OrderStatus
}

// DragState is a snapshot for rendering.
type DragState struct {
	Phase        Phase
	Session      *DragSession
	Ghost        *Point
	GhostTopLeft *Point
	Highlight    model.OrderStatus
}

type press struct {
	orderID string
	origin  model.OrderStatus
	at      Point
	card    Rect
}

// Recognizer turns pointer events into long-press drags and drop requests.
type Recognizer struct {
	mu     sync.Mutex
	clock  Clock
	delay  time.Duration
	onDrop func(TransitionRequest)

	layout    Layout
	phase     Phase
	gen       uint64
	timer     Timer
	press     press
	session   *DragSession
	ghost     Point
	highlight model.OrderStatus
	closed    bool
}

// NewRecognizer creates an idle recognizer. onDrop may be nil.
func NewRecognizer(clock Clock, delay time.Duration, onDrop func(TransitionRequest)) *Recognizer {
	if clock == nil {
		clock = SystemClock
	}
	if delay <= 0 {
		delay = DefaultLongPressDelay
	}
	return &Recognizer{clock: clock, delay: delay, onDrop: onDrop, phase: PhaseIdle}
}

// SetLayout replaces the column rectangles used for hit-testing.
func (r *Recognizer) SetLayout(layout Layout) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layout = append(Layout(nil), layout...)
}

// PointerDown arms the long-press timer for a card.
func (r *Recognizer) PointerDown(orderID string, origin model.OrderStatus, at Point, card Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase != PhaseIdle {
		return
	}
	r.gen++
	gen := r.gen
	r.phase = PhaseArmed
	r.press = press{orderID: orderID, origin: origin, at: at, card: card}
	r.timer = r.clock.AfterFunc(r.delay, func() { r.promote(gen) })
}

func (r *Recognizer) promote(gen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase != PhaseArmed || r.gen != gen {
		return
	}
	r.timer = nil
	r.phase = PhaseDragging
	r.session = &DragSession{
		OrderID:       r.press.orderID,
		Origin:        r.press.origin,
		PointerOffset: Point{X: r.press.at.X - r.press.card.X, Y: r.press.at.Y - r.press.card.Y},
		CardSize:      Size{Width: r.press.card.Width, Height: r.press.card.Height},
	}
	r.ghost = r.press.at
}

// PointerMove follows the pointer while dragging and updates the highlight.
func (r *Recognizer) PointerMove(at Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.phase != PhaseDragging {
		return
	}
	r.ghost = at
	r.highlight = ""
	if status, ok := r.layout.ColumnAt(at); ok && model.CanTransition(r.session.Origin, status) {
		r.highlight = status
	}
}

// PointerUp ends the gesture. A release before the long press is a tap and
// emits nothing. A drop on a highlighted column other than the origin
// emits a transition request.
func (r *Recognizer) PointerUp() (TransitionRequest, bool) {
	r.mu.Lock()
	var (
		req     TransitionRequest
		emitted bool
	)
	if !r.closed && r.phase == PhaseDragging && r.highlight != "" && r.highlight != r.session.Origin {
		req = TransitionRequest{OrderID: r.session.OrderID, From: r.session.Origin, To: r.highlight}
		emitted = true
	}
	r.resetLocked()
	onDrop := r.onDrop
	r.mu.Unlock()

	if emitted && onDrop != nil {
		onDrop(req)
	}
	return req, emitted
}

// PointerCancel aborts the gesture without emitting.
func (r *Recognizer) PointerCancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
}

// Close stops pending timers. Later events are ignored.
func (r *Recognizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resetLocked()
	r.closed = true
}

// State returns a snapshot of the gesture.
func (r *Recognizer) State() DragState {
	r.mu.Lock()
	defer r.mu.Unlock()

	state := DragState{Phase: r.phase, Highlight: r.highlight}
	if r.session != nil {
		session := *r.session
		ghost := r.ghost
		topLeft := Point{X: ghost.X - session.PointerOffset.X, Y: ghost.Y - session.PointerOffset.Y}
		state.Session = &session
		state.Ghost = &ghost
		state.GhostTopLeft = &topLeft
	}
	return state
}

func (r *Recognizer) resetLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.gen++
	r.phase = PhaseIdle
	r.press = press{}
	r.session = nil
	r.ghost = Point{}
	r.highlight = ""
}
