package board

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/worker"
)

// DefaultPublicPollInterval is the "now serving" board refresh period.
const DefaultPublicPollInterval = 10 * time.Second

// PublicView is a snapshot of the "now serving" board.
type PublicView struct {
	StoreID   string
	Phase     LoadPhase
	Loading   bool
	Error     error
	Columns   []ColumnView
	UpdatedAt time.Time
}

// PublicBoard polls a store's orders for the read-only display. Completed
// orders are never shown.
type PublicBoard struct {
	storeID string
	creds   model.Credentials
	gateway Gateway
	logger  *slog.Logger
	now     func() time.Time
	poller  *worker.Poller

	ctx    context.Context
	cancel context.CancelFunc
	seq    atomic.Uint64

	mu        sync.Mutex
	applied   uint64
	inflight  int
	phase     LoadPhase
	loaded    bool
	orders    Grouped
	err       error
	updatedAt time.Time
	closed    bool
}

// NewPublicBoard creates a public board. It does not fetch until Start.
func NewPublicBoard(storeID string, creds model.Credentials, gateway Gateway, logger *slog.Logger, interval time.Duration) *PublicBoard {
	if interval <= 0 {
		interval = DefaultPublicPollInterval
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &PublicBoard{
		storeID: storeID,
		creds:   creds,
		gateway: gateway,
		logger:  logger.With(slog.String("store", storeID)),
		now:     time.Now,
		ctx:     ctx,
		cancel:  cancel,
		phase:   LoadIdle,
		orders:  Group(nil),
	}
	b.poller = worker.NewPoller("public-board", interval, b.refresh, b.logger)
	return b
}

// Start performs the initial load and begins polling.
func (b *PublicBoard) Start() {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}
	b.poller.Start(b.ctx)
	b.poller.Trigger()
}

// Stop ends polling. Responses that complete afterwards are discarded.
func (b *PublicBoard) Stop() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	b.poller.Stop()
}

func (b *PublicBoard) refresh(ctx context.Context) error {
	seq := b.seq.Add(1)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.inflight++
	b.mu.Unlock()

	orders, err := b.gateway.ListOrders(ctx, b.storeID, nil, b.creds)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inflight--

	if b.closed {
		return ErrClosed
	}
	if seq <= b.applied {
		return nil
	}
	b.applied = seq
	b.loaded = true
	if err != nil {
		b.phase = LoadError
		b.err = err
		return err
	}
	b.orders = Group(orders)
	b.phase = LoadPopulated
	b.err = nil
	b.updatedAt = b.now()
	return nil
}

// View returns the pending and waiting columns.
func (b *PublicBoard) View() PublicView {
	b.mu.Lock()
	defer b.mu.Unlock()

	view := PublicView{
		StoreID:   b.storeID,
		Phase:     b.phase,
		Loading:   !b.loaded,
		Error:     b.err,
		UpdatedAt: b.updatedAt,
	}
	if b.inflight > 0 {
		view.Phase = LoadLoading
	}
	for _, s := range model.PublicStatuses {
		view.Columns = append(view.Columns, ColumnView{
			Status: s,
			Label:  s.Label(),
			Orders: b.orders[s],
		})
	}
	return view
}
