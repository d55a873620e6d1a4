// Package refresh runs periodic feed loads and publishes the latest snapshot.
package refresh

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/good-yellow-bee/smartdetect/internal/metrics"
)

// Load triggers, used as metric labels.
const (
	TriggerStart  = "start"
	TriggerTimer  = "timer"
	TriggerManual = "manual"
)

// Config controls a poller.
type Config struct {
	AutoRefresh bool          `yaml:"auto_refresh"`
	Interval    time.Duration `yaml:"interval"`
	MaxItems    int           `yaml:"max_items"`
}

// Loader produces the items of a feed, at most maxItems when maxItems > 0.
type Loader[T any] interface {
	Load(ctx context.Context, maxItems int) ([]T, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc[T any] func(ctx context.Context, maxItems int) ([]T, error)

// Load implements Loader.
func (f LoaderFunc[T]) Load(ctx context.Context, maxItems int) ([]T, error) {
	return f(ctx, maxItems)
}

// Snapshot is the published state of a feed.
type Snapshot[T any] struct {
	Items     []T       `json:"items"`
	Loading   bool      `json:"loading"`
	UpdatedAt time.Time `json:"updated_at"`
	Seq       uint64    `json:"seq"`
}

// Poller loads a feed immediately on Start and then every Interval while
// AutoRefresh is set. Loads carry a sequence number; a load that finishes
// after a later-started load has been applied is discarded.
type Poller[T any] struct {
	name   string
	loader Loader[T]
	log    *zap.Logger

	mu         sync.Mutex
	cfg        Config
	snap       Snapshot[T]
	nextSeq    uint64
	inFlight   int
	subs       map[int]chan Snapshot[T]
	nextSubID  int
	staleCount int

	runMu  sync.Mutex
	parent context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller. It does nothing until Start.
func NewPoller[T any](name string, loader Loader[T], cfg Config, log *zap.Logger) *Poller[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller[T]{
		name:   name,
		loader: loader,
		cfg:    cfg,
		log:    log.With(zap.String("feed", name)),
		subs:   make(map[int]chan Snapshot[T]),
		snap:   Snapshot[T]{Items: []T{}},
	}
}

// Name returns the feed name.
func (p *Poller[T]) Name() string { return p.name }

// Config returns the active configuration.
func (p *Poller[T]) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Start loads once and, if configured, keeps reloading until ctx is done or
// Stop is called. Starting a running poller is a no-op.
func (p *Poller[T]) Start(ctx context.Context) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	if p.done != nil {
		return
	}
	p.parent = ctx
	p.startLocked(true)
}

// Stop cancels the loop and waits for it to exit. No load is started after
// Stop returns.
func (p *Poller[T]) Stop() {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	p.stopLocked()
}

// Reconfigure applies cfg. When the poller is running and any field changed,
// the loop is restarted with an immediate load.
func (p *Poller[T]) Reconfigure(cfg Config) {
	p.runMu.Lock()
	defer p.runMu.Unlock()

	p.mu.Lock()
	changed := p.cfg != cfg
	p.cfg = cfg
	p.mu.Unlock()

	if !changed || p.done == nil {
		return
	}
	p.log.Info("feed reconfigured",
		zap.Bool("auto_refresh", cfg.AutoRefresh),
		zap.Duration("interval", cfg.Interval),
		zap.Int("max_items", cfg.MaxItems))
	p.stopLocked()
	p.startLocked(true)
}

// Refresh performs a load now and returns the resulting snapshot.
func (p *Poller[T]) Refresh(ctx context.Context) (Snapshot[T], error) {
	err := p.load(ctx, TriggerManual)
	return p.Snapshot(), err
}

// Snapshot returns the latest published snapshot.
func (p *Poller[T]) Snapshot() Snapshot[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// Stale returns how many loads were discarded as out of order.
func (p *Poller[T]) Stale() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.staleCount
}

// Subscribe returns a channel receiving each applied snapshot and a function
// that ends the subscription. Slow subscribers only see the latest snapshot.
func (p *Poller[T]) Subscribe() (<-chan Snapshot[T], func()) {
	ch := make(chan Snapshot[T], 1)

	p.mu.Lock()
	id := p.nextSubID
	p.nextSubID++
	p.subs[id] = ch
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

func (p *Poller[T]) startLocked(loadNow bool) {
	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel
	p.done = make(chan struct{})
	go p.run(ctx, p.Config(), loadNow, p.done)
}

func (p *Poller[T]) stopLocked() {
	if p.done == nil {
		return
	}
	p.cancel()
	<-p.done
	p.cancel = nil
	p.done = nil
}

func (p *Poller[T]) run(ctx context.Context, cfg Config, loadNow bool, done chan struct{}) {
	defer close(done)

	if loadNow {
		p.loadLogged(ctx, TriggerStart)
	}
	if !cfg.AutoRefresh || cfg.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.loadLogged(ctx, TriggerTimer)
		}
	}
}

func (p *Poller[T]) loadLogged(ctx context.Context, trigger string) {
	if err := p.load(ctx, trigger); err != nil && !errors.Is(err, context.Canceled) {
		p.log.Warn("feed load failed", zap.String("trigger", trigger), zap.Error(err))
	}
}

func (p *Poller[T]) load(ctx context.Context, trigger string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	p.nextSeq++
	seq := p.nextSeq
	maxItems := p.cfg.MaxItems
	p.inFlight++
	p.snap.Loading = true
	p.mu.Unlock()

	metrics.RefreshLoadsTotal.WithLabelValues(p.name, trigger).Inc()
	start := time.Now()
	items, err := p.loader.Load(ctx, maxItems)
	metrics.RefreshLoadDuration.WithLabelValues(p.name).Observe(time.Since(start).Seconds())

	p.mu.Lock()
	defer p.mu.Unlock()
	p.inFlight--
	p.snap.Loading = p.inFlight > 0

	if err != nil {
		return err
	}
	if seq < p.snap.Seq {
		p.staleCount++
		metrics.RefreshStaleTotal.WithLabelValues(p.name).Inc()
		p.log.Debug("discarded stale load", zap.Uint64("seq", seq), zap.Uint64("applied", p.snap.Seq))
		return nil
	}
	if items == nil {
		items = []T{}
	}
	p.snap.Items = items
	p.snap.UpdatedAt = time.Now()
	p.snap.Seq = seq
	p.publishLocked()
	return nil
}

func (p *Poller[T]) publishLocked() {
	snap := p.snap
	for _, ch := range p.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}
