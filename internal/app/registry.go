package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/kakigori/storefront/internal/board"
	"github.com/kakigori/storefront/internal/domain/model"
	"github.com/kakigori/storefront/internal/domain/repository"
	"github.com/kakigori/storefront/internal/worker"
)

// ErrRegistryClosed is returned once the registry has shut down.
var ErrRegistryClosed = errors.New("board registry is closed")

// FlowSweeper drops customer ordering flows idle since cutoff.
type FlowSweeper interface {
	Sweep(cutoff time.Time) int
}

// RegistryOptions configure BoardRegistry. Flows, when set, is swept with the
// same idle timeout as the boards.
type RegistryOptions struct {
	Board          board.Options
	PublicInterval time.Duration
	IdleTimeout    time.Duration
	CredentialTTL  time.Duration
	Flows          FlowSweeper
	Now            func() time.Time
}

type boardKey struct {
	storeID string
	apiKey  string
}

type adminEntry struct {
	key      boardKey
	ctrl     *board.Controller
	lastSeen time.Time
}

type publicEntry struct {
	board    *board.PublicBoard
	lastSeen time.Time
}

// BoardRegistry owns the running boards. Each session gets its own admin
// controller; public boards are shared per store and key. Boards start on
// first use and stop on logout, after IdleTimeout without access, or on
// Shutdown.
type BoardRegistry struct {
	gateway board.Gateway
	purger  repository.CredentialPurger
	logger  *slog.Logger
	opts    RegistryOptions
	sweeper *worker.Poller

	mu     sync.Mutex
	admin  map[string]*adminEntry
	public map[boardKey]*publicEntry
	closed bool
}

// NewBoardRegistry creates an empty registry. purger may be nil.
func NewBoardRegistry(gateway board.Gateway, purger repository.CredentialPurger, logger *slog.Logger, opts RegistryOptions) *BoardRegistry {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 10 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := &BoardRegistry{
		gateway: gateway,
		purger:  purger,
		logger:  logger,
		opts:    opts,
		admin:   make(map[string]*adminEntry),
		public:  make(map[boardKey]*publicEntry),
	}
	r.sweeper = worker.NewPoller("board-sweeper", opts.IdleTimeout/2, r.Sweep, logger)
	return r
}

// Start begins periodic eviction of idle boards and flows.
func (r *BoardRegistry) Start(ctx context.Context) {
	r.sweeper.Start(ctx)
}

// Admin returns the running admin board of a session, creating it when the
// session has none or its store credentials changed.
func (r *BoardRegistry) Admin(sessionID string, cfg model.StoreConfig, creds model.Credentials) (*board.Controller, error) {
	key := boardKey{storeID: cfg.StoreID, apiKey: cfg.APIKey}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}
	now := r.opts.Now()
	entry, ok := r.admin[sessionID]
	if ok && entry.key == key {
		entry.lastSeen = now
		r.mu.Unlock()
		return entry.ctrl, nil
	}
	var stale *board.Controller
	if ok {
		stale = entry.ctrl
	}
	ctrl := board.NewController(cfg.StoreID, creds, r.gateway, r.logger, r.opts.Board)
	r.admin[sessionID] = &adminEntry{key: key, ctrl: ctrl, lastSeen: now}
	r.mu.Unlock()

	if stale != nil {
		stale.Stop()
	}
	ctrl.Start()
	r.logger.Info("admin board started", slog.String("session", sessionID), slog.String("store", cfg.StoreID))
	return ctrl, nil
}

// Public returns the shared public board of a store.
func (r *BoardRegistry) Public(cfg model.StoreConfig, creds model.Credentials) (*board.PublicBoard, error) {
	key := boardKey{storeID: cfg.StoreID, apiKey: cfg.APIKey}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRegistryClosed
	}
	now := r.opts.Now()
	if entry, ok := r.public[key]; ok {
		entry.lastSeen = now
		r.mu.Unlock()
		return entry.board, nil
	}
	b := board.NewPublicBoard(cfg.StoreID, creds, r.gateway, r.logger, r.opts.PublicInterval)
	r.public[key] = &publicEntry{board: b, lastSeen: now}
	r.mu.Unlock()

	b.Start()
	r.logger.Info("public board started", slog.String("store", cfg.StoreID))
	return b, nil
}

// Release stops the admin board of a session.
func (r *BoardRegistry) Release(sessionID string) {
	r.mu.Lock()
	entry, ok := r.admin[sessionID]
	delete(r.admin, sessionID)
	r.mu.Unlock()

	if ok {
		entry.ctrl.Stop()
		r.logger.Info("admin board released", slog.String("session", sessionID))
	}
}

// Sweep stops boards and drops ordering flows idle for longer than
// IdleTimeout, then purges stale credentials from stores that cannot expire
// them.
func (r *BoardRegistry) Sweep(ctx context.Context) error {
	now := r.opts.Now()
	cutoff := now.Add(-r.opts.IdleTimeout)

	var (
		admins  []*board.Controller
		publics []*board.PublicBoard
	)
	r.mu.Lock()
	for id, entry := range r.admin {
		if entry.lastSeen.Before(cutoff) {
			admins = append(admins, entry.ctrl)
			delete(r.admin, id)
		}
	}
	for key, entry := range r.public {
		if entry.lastSeen.Before(cutoff) {
			publics = append(publics, entry.board)
			delete(r.public, key)
		}
	}
	r.mu.Unlock()

	for _, c := range admins {
		c.Stop()
	}
	for _, b := range publics {
		b.Stop()
	}
	if n := len(admins) + len(publics); n > 0 {
		r.logger.Info("idle boards evicted", slog.Int("admin", len(admins)), slog.Int("public", len(publics)))
	}
	if r.opts.Flows != nil {
		if n := r.opts.Flows.Sweep(cutoff); n > 0 {
			r.logger.Info("idle ordering flows evicted", slog.Int("flows", n))
		}
	}

	if r.purger == nil || r.opts.CredentialTTL <= 0 {
		return nil
	}
	_, err := r.purger.Purge(ctx, now.Add(-r.opts.CredentialTTL))
	return err
}

// Counts returns the number of running admin and public boards.
func (r *BoardRegistry) Counts() (admin, public int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.admin), len(r.public)
}

// Shutdown stops the sweeper and every board. Later lookups fail with
// ErrRegistryClosed.
func (r *BoardRegistry) Shutdown() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	admin := r.admin
	public := r.public
	r.admin = make(map[string]*adminEntry)
	r.public = make(map[boardKey]*publicEntry)
	r.mu.Unlock()

	r.sweeper.Stop()

	var wg sync.WaitGroup
	for _, entry := range admin {
		wg.Add(1)
		go func(c *board.Controller) {
			defer wg.Done()
			c.Stop()
		}(entry.ctrl)
	}
	for _, entry := range public {
		wg.Add(1)
		go func(b *board.PublicBoard) {
			defer wg.Done()
			b.Stop()
		}(entry.board)
	}
	wg.Wait()
}
