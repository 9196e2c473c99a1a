package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/kakigori/storefront/internal/domain/errors"
	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/worker"
)

// ErrClosed is returned by operations on a stopped board.
var ErrClosed = errors.New("board is closed")

// DefaultPollInterval is the admin board refresh period.
const DefaultPollInterval = 4 * time.Second

const bulkConcurrency = 8

// Gateway is the part of the order service the boards depend on.
type Gateway interface {
	ListOrders(ctx context.Context, storeID string, filter *model.OrderStatus, creds model.Credentials) ([]model.Order, error)
	AdvanceToWaitingPickup(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error)
	AdvanceToComplete(ctx context.Context, storeID, orderID string, creds model.Credentials) (*model.Order, error)
}

// LoadPhase is the state of the latest load cycle.
type LoadPhase string

const (
	LoadIdle      LoadPhase = "idle"
	LoadLoading   LoadPhase = "loading"
	LoadPopulated LoadPhase = "populated"
	LoadError     LoadPhase = "error"
)

// Options configure a board.
type Options struct {
	PollInterval   time.Duration
	LongPressDelay time.Duration
	Clock          Clock
	Now            func() time.Time
}

// BulkResult reports the outcome of a bulk transition per order.
type BulkResult struct {
	From      model.OrderStatus
	To        model.OrderStatus
	Succeeded []string
	Failed    map[string]error
}

// ColumnView is one status column of the admin board.
type ColumnView struct {
	Status        model.OrderStatus
	Label         string
	Orders        []model.Order
	Selected      []string
	AllSelected   bool
	BulkTarget    model.OrderStatus
	SelectedCount int
}

// View is a snapshot of the admin board.
type View struct {
	StoreID     string
	Phase       LoadPhase
	Loading     bool
	Error       error
	ActionError error
	Columns     []ColumnView
	Drag        DragState
	UpdatedAt   time.Time
}

// Controller keeps the admin board of one operator session in sync with the
// order service.
type Controller struct {
	storeID string
	creds   model.Credentials
	gateway Gateway
	logger  *slog.Logger
	now     func() time.Time

	selection  *Selection
	recognizer *Recognizer
	poller     *worker.Poller

	ctx    context.Context
	cancel context.CancelFunc
	seq    atomic.Uint64

	mu        sync.Mutex
	applied   uint64
	inflight  int
	phase     LoadPhase
	loaded    bool
	orders    Grouped
	loadErr   error
	actionErr error
	updatedAt time.Time
	closed    bool
}

// NewController creates an admin board for a store. It does not fetch until Start.
func NewController(storeID string, creds model.Credentials, gateway Gateway, logger *slog.Logger, opts Options) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		storeID:   storeID,
		creds:     creds,
		gateway:   gateway,
		logger:    logger.With(slog.String("store", storeID)),
		now:       opts.Now,
		selection: NewSelection(),
		ctx:       ctx,
		cancel:    cancel,
		phase:     LoadIdle,
		orders:    Group(nil),
	}
	c.recognizer = NewRecognizer(opts.Clock, opts.LongPressDelay, c.drop)
	c.poller = worker.NewPoller("admin-board", opts.PollInterval, c.refresh, c.logger)
	return c
}

// StoreID returns the store the board shows.
func (c *Controller) StoreID() string {
	return c.storeID
}

// Start performs the initial load and begins periodic polling.
func (c *Controller) Start() {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return
	}
	c.poller.Start(c.ctx)
	c.poller.Trigger()
}

// Stop cancels polling, pending long-press timers and in-flight requests.
// Responses that complete afterwards are discarded.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.recognizer.Close()
	c.poller.Stop()
}

// Reload fetches the order list now, regardless of the poll schedule.
func (c *Controller) Reload(ctx context.Context) error {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	seq := c.seq.Add(1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.inflight++
	c.mu.Unlock()

	orders, err := c.gateway.ListOrders(ctx, c.storeID, nil, c.creds)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--

	if c.closed {
		return ErrClosed
	}
	if seq <= c.applied {
		c.logger.Debug("discarding stale order list", slog.Uint64("seq", seq), slog.Uint64("applied", c.applied))
		return nil
	}
	c.applied = seq
	c.loaded = true
	if err != nil {
		c.phase = LoadError
		c.loadErr = err
		return err
	}

	c.orders = Group(orders)
	c.phase = LoadPopulated
	c.loadErr = nil
	c.updatedAt = c.now()
	for _, s := range model.Statuses {
		c.selection.Retain(s, c.orders.IDs(s))
	}
	return nil
}

// Transition moves a single order between statuses and reloads on success.
func (c *Controller) Transition(ctx context.Context, orderID string, from, to model.OrderStatus) error {
	if from == to {
		return nil
	}
	if !model.CanTransition(from, to) {
		return domainErrors.ErrInvalidTransition
	}
	if c.isClosed() {
		return ErrClosed
	}

	rctx, cancel := c.requestContext(ctx)
	defer cancel()

	if err := c.advance(rctx, orderID, to); err != nil {
		c.logger.Error("order transition failed",
			slog.String("order", orderID),
			slog.String("from", string(from)),
			slog.String("to", string(to)),
			slog.String("error", err.Error()),
		)
		c.setActionError(err)
		return err
	}
	c.setActionError(nil)
	_ = c.refresh(rctx)
	return nil
}

// Bulk advances every selected order of a column concurrently. It waits for
// all calls to settle, clears the column selection and reloads.
func (c *Controller) Bulk(ctx context.Context, from model.OrderStatus) (BulkResult, error) {
	if !from.Valid() {
		return BulkResult{}, domainErrors.ErrInvalidStatus
	}
	to, ok := from.Next()
	if !ok {
		return BulkResult{}, domainErrors.ErrNoBulkAction
	}
	result := BulkResult{From: from, To: to, Failed: map[string]error{}}
	ids := c.selection.Selected(from)
	if len(ids) == 0 {
		return result, nil
	}
	if c.isClosed() {
		return result, ErrClosed
	}

	rctx, cancel := c.requestContext(ctx)
	defer cancel()

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(bulkConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			err := c.advance(rctx, id, to)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[id] = err
				return nil
			}
			result.Succeeded = append(result.Succeeded, id)
			return nil
		})
	}
	_ = g.Wait()

	c.selection.Clear(from)

	var joined error
	if len(result.Failed) > 0 {
		errs := make([]error, 0, len(result.Failed))
		for _, id := range ids {
			if err, ok := result.Failed[id]; ok {
				errs = append(errs, fmt.Errorf("order %s: %w", id, err))
			}
		}
		joined = errors.Join(errs...)
		c.logger.Error("bulk transition partially failed",
			slog.String("from", string(from)),
			slog.Int("failed", len(result.Failed)),
			slog.Int("total", len(ids)),
		)
	}
	c.setActionError(joined)
	_ = c.refresh(rctx)
	return result, joined
}

func (c *Controller) advance(ctx context.Context, orderID string, to model.OrderStatus) error {
	var err error
	switch to {
	case model.OrderStatusWaitingPickup:
		_, err = c.gateway.AdvanceToWaitingPickup(ctx, c.storeID, orderID, c.creds)
	case model.OrderStatusCompleted:
		_, err = c.gateway.AdvanceToComplete(ctx, c.storeID, orderID, c.creds)
	default:
		err = domainErrors.ErrInvalidTransition
	}
	return err
}

// Toggle flips the selection of one order.
func (c *Controller) Toggle(status model.OrderStatus, orderID string) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	c.selection.Toggle(status, orderID)
	return nil
}

// ToggleAll clears the column selection when every visible order is selected,
// otherwise selects all visible orders.
func (c *Controller) ToggleAll(status model.OrderStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	c.mu.Lock()
	orders := c.orders[status]
	ids := c.orders.IDs(status)
	c.mu.Unlock()

	if c.selection.IsAllSelected(status, orders) {
		c.selection.Clear(status)
		return nil
	}
	c.selection.SelectAll(status, ids)
	return nil
}

// ClearSelection empties one column selection, or all of them when status is empty.
func (c *Controller) ClearSelection(status model.OrderStatus) error {
	if status == "" {
		c.selection.ClearAll()
		return nil
	}
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	c.selection.Clear(status)
	return nil
}

// SetLayout registers the rendered column rectangles for drag hit-testing.
func (c *Controller) SetLayout(layout Layout) {
	c.recognizer.SetLayout(layout)
}

// PointerDown starts a press on a card.
func (c *Controller) PointerDown(orderID string, origin model.OrderStatus, at Point, card Rect) {
	c.recognizer.PointerDown(orderID, origin, at, card)
}

// PointerMove tracks a drag.
func (c *Controller) PointerMove(at Point) {
	c.recognizer.PointerMove(at)
}

// PointerUp releases the press. A legal drop is applied before it returns.
func (c *Controller) PointerUp() (TransitionRequest, bool) {
	return c.recognizer.PointerUp()
}

// PointerCancel aborts a press or drag.
func (c *Controller) PointerCancel() {
	c.recognizer.PointerCancel()
}

func (c *Controller) drop(req TransitionRequest) {
	_ = c.Transition(c.ctx, req.OrderID, req.From, req.To)
}

// View returns a snapshot of the board.
func (c *Controller) View() View {
	c.mu.Lock()
	view := View{
		StoreID:     c.storeID,
		Phase:       c.phase,
		Loading:     !c.loaded,
		Error:       c.loadErr,
		ActionError: c.actionErr,
		UpdatedAt:   c.updatedAt,
	}
	if c.inflight > 0 {
		view.Phase = LoadLoading
	}
	grouped := c.orders
	c.mu.Unlock()

	for _, s := range model.Statuses {
		orders := grouped[s]
		target, _ := s.Next()
		view.Columns = append(view.Columns, ColumnView{
			Status:        s,
			Label:         s.Label(),
			Orders:        orders,
			Selected:      c.selection.Selected(s),
			AllSelected:   c.selection.IsAllSelected(s, orders),
			BulkTarget:    target,
			SelectedCount: c.selection.Count(s),
		})
	}
	view.Drag = c.recognizer.State()
	return view
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Controller) setActionError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.actionErr = err
	}
}

// requestContext derives a context that ends with either parent or the board.
func (c *Controller) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(c.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
