// Package poll drives the fetch, decode and render cycle on a fixed interval.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/logger"
	"github.com/rileyhilliard/pulse/internal/snapshot"
	"github.com/rileyhilliard/pulse/internal/surface"
)

// DefaultInterval is the time between cycle starts.
const DefaultInterval = 2 * time.Second

// Renderer receives the outcome of each cycle.
type Renderer interface {
	RenderLive(s snapshot.Snapshot)
	RenderOffline()
}

// Options configures a Poller.
type Options struct {
	// Interval between cycle starts. Zero uses DefaultInterval.
	Interval time.Duration
	// Timeout bounds each request. Zero means requests may run forever.
	Timeout time.Duration
	// Overlap decides whether cycles may run concurrently. Empty means skip.
	Overlap OverlapPolicy
	Logger  logger.Logger
	// View, when set, reads the surface back. It is called in the same step
	// as the render so Result.Surface belongs to that cycle even when
	// cycles overlap.
	View func() surface.State
	// OnCycle, when set, is called with every result in completion order.
	// It runs on the cycle's goroutine and must not block for long.
	OnCycle func(Result)
}

// Poller owns the repeating schedule. Each cycle fetches one snapshot and
// hands it, or the failure, to the renderer. Failures never stop the loop.
type Poller struct {
	fetcher  Fetcher
	renderer Renderer
	opts     Options
	log      logger.Logger

	// mu makes a cycle's render and state update a single step, so the
	// surface and the reported state never disagree.
	mu     sync.Mutex
	state  ConnectionState
	last   Result
	cycles uint64

	seq     atomic.Uint64
	busy    atomic.Bool
	skipped atomic.Uint64
	trigger chan struct{}
	wg      sync.WaitGroup
}

// New creates a poller. It does nothing until Run or Cycle is called.
func New(f Fetcher, r Renderer, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Overlap == "" {
		opts.Overlap = OverlapSkip
	}
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}
	return &Poller{
		fetcher:  f,
		renderer: r,
		opts:     opts,
		log:      log,
		state:    Offline,
		trigger:  make(chan struct{}, 1),
	}
}

// Run starts a cycle immediately and then one per interval, regardless of how
// earlier cycles went or how long they took. It returns ctx.Err() once ctx is
// cancelled and every in-flight cycle has returned.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()
	defer p.wg.Wait()

	p.launch(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.launch(ctx)
		case <-p.trigger:
			p.launch(ctx)
		}
	}
}

// Trigger asks a running loop for an extra cycle now. Requests made while one
// is already pending collapse into it.
func (p *Poller) Trigger() {
	select {
	case p.trigger <- struct{}{}:
	default:
	}
}

// launch starts a cycle on its own goroutine so a slow request never holds up
// the ticker.
func (p *Poller) launch(ctx context.Context) {
	serialize := p.opts.Overlap == OverlapSkip
	if serialize && !p.busy.CompareAndSwap(false, true) {
		n := p.skipped.Add(1)
		p.log.Debug("previous cycle still in flight, skipping tick (%d skipped)", n)
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if serialize {
			defer p.busy.Store(false)
		}
		p.Cycle(ctx)
	}()
}

// Cycle runs one fetch and dispatches the outcome. If ctx is cancelled while
// the request is in flight the outcome is discarded: shutdown is not an
// endpoint failure.
func (p *Poller) Cycle(ctx context.Context) Result {
	res := Result{Seq: p.seq.Add(1), Started: time.Now()}

	fetchCtx := ctx
	if p.opts.Timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.opts.Timeout)
		defer cancel()
	}

	snap, err := p.fetcher.Fetch(fetchCtx)
	res.Duration = time.Since(res.Started)

	if ctx.Err() != nil {
		res.Err = ctx.Err()
		res.State = p.State()
		return res
	}

	p.mu.Lock()
	if err != nil {
		p.renderer.RenderOffline()
		p.state = Offline
		res.Err = err
	} else {
		p.renderer.RenderLive(snap)
		p.state = Live
		res.Snapshot = snap
	}
	res.State = p.state
	if p.opts.View != nil {
		res.Surface = p.opts.View()
	}
	p.cycles++
	p.last = res
	p.mu.Unlock()

	if err != nil {
		p.log.Warn("poll #%d failed after %s: %s", res.Seq, res.Duration.Round(time.Millisecond), errors.Summary(err))
	} else {
		p.log.Debug("poll #%d ok in %s", res.Seq, res.Duration.Round(time.Millisecond))
	}

	if p.opts.OnCycle != nil {
		p.opts.OnCycle(res)
	}
	return res
}

// State returns the state left by the latest completed cycle.
func (p *Poller) State() ConnectionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Last returns the latest completed result, and false if none has completed.
func (p *Poller) Last() (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last, p.cycles > 0
}

// Cycles returns the number of completed cycles.
func (p *Poller) Cycles() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cycles
}

// Skipped returns the number of ticks dropped by the skip policy.
func (p *Poller) Skipped() uint64 {
	return p.skipped.Load()
}

// Interval returns the effective interval.
func (p *Poller) Interval() time.Duration {
	return p.opts.Interval
}
