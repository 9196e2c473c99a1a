package worker

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Task is a unit of periodic work.
type Task func(ctx context.Context) error

const defaultInterval = time.Second

// Poller runs a task on a fixed interval. A tick that arrives while the
// previous run is still in flight is skipped, so runs never overlap.
type Poller struct {
	name     string
	interval time.Duration
	task     Task
	logger   *slog.Logger

	jobs    chan struct{}
	busy    atomic.Bool
	skipped atomic.Int64
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.Mutex
}

// NewPoller constructs a poller for task.
func NewPoller(name string, interval time.Duration, task Task, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		name:     name,
		interval: interval,
		task:     task,
		logger:   logger,
		jobs:     make(chan struct{}, 1),
	}
}

// Start launches background polling. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(2)
	go p.worker(runCtx)
	go p.dispatch(runCtx)
}

// Trigger requests an immediate run unless one is already pending or in flight.
func (p *Poller) Trigger() bool {
	if !p.busy.CompareAndSwap(false, true) {
		p.skipped.Add(1)
		p.logger.Debug("poll skipped, previous run in flight", slog.String("poller", p.name))
		return false
	}
	p.jobs <- struct{}{}
	return true
}

// Running reports whether the poller has been started and not stopped.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Stop cancels polling and waits for the in-flight run to return.
func (p *Poller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Poller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Trigger()
		}
	}
}

func (p *Poller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			p.drain()
			return
		case <-p.jobs:
			p.run(ctx)
		}
	}
}

func (p *Poller) run(ctx context.Context) {
	defer p.busy.Store(false)
	if ctx.Err() != nil {
		return
	}
	if err := p.task(ctx); err != nil && ctx.Err() == nil {
		p.logger.Error("poll failed", slog.String("poller", p.name), slog.String("error", err.Error()))
	}
}

// drain releases a pending request so a restarted poller is not stuck busy.
func (p *Poller) drain() {
	select {
	case <-p.jobs:
		p.busy.Store(false)
	default:
	}
}
