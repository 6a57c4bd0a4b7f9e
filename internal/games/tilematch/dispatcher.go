package tilematch

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilematch/internal/games/tilematch/core"
)

// ErrStopped is returned by Submit once the dispatcher has been stopped.
var ErrStopped = errors.New("tilematch: dispatcher stopped")

// DispatcherConfig holds configuration for the dispatcher.
type DispatcherConfig struct {
	TickInterval time.Duration // Real-time timer period; 0 disables the timer
	QueueSize    int           // Pending intents before Submit blocks
	UpdateBuffer int           // Snapshots buffered for Updates before dropping
}

// DefaultDispatcherConfig returns a one-second timer.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		TickInterval: time.Second,
		QueueSize:    64,
		UpdateBuffer: 16,
	}
}

type request struct {
	intent core.Intent
	reply  chan reply
}

type reply struct {
	snap core.Snapshot
	err  error
}

// Dispatcher owns a Session and applies intents to it one at a time on a
// single goroutine. Timer ticks go through the same loop, so a tick never
// lands in the middle of a cascade. Once a session is handed to a
// Dispatcher it must not be used directly.
type Dispatcher struct {
	session *core.Session
	config  DispatcherConfig
	logger  *log.Logger

	requests chan request
	updates  chan core.Snapshot

	mu   sync.RWMutex
	last core.Snapshot

	startOnce sync.Once
	stopOnce  sync.Once
	started   chan struct{}
	done      chan struct{}
	finished  chan struct{}
}

// NewDispatcher wraps session. A nil logger discards output.
func NewDispatcher(session *core.Session, cfg DispatcherConfig, logger *log.Logger) *Dispatcher {
	if cfg.QueueSize < 1 {
		cfg.QueueSize = DefaultDispatcherConfig().QueueSize
	}
	if cfg.UpdateBuffer < 1 {
		cfg.UpdateBuffer = DefaultDispatcherConfig().UpdateBuffer
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		session:  session,
		config:   cfg,
		logger:   logger,
		requests: make(chan request, cfg.QueueSize),
		updates:  make(chan core.Snapshot, cfg.UpdateBuffer),
		last:     session.Snapshot(),
		started:  make(chan struct{}),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start begins processing intents. Calling it more than once has no effect.
func (d *Dispatcher) Start() {
	d.startOnce.Do(func() {
		close(d.started)
		go d.run()
	})
}

// Stop ends the loop and waits for it to exit. Safe to call multiple times.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
	})
	select {
	case <-d.started:
		<-d.finished
	default:
	}
}

// Submit queues an intent and waits for the snapshot it produced.
// If ctx ends or the dispatcher stops first, the latest known snapshot is
// returned with the corresponding error.
func (d *Dispatcher) Submit(ctx context.Context, in core.Intent) (core.Snapshot, error) {
	req := request{intent: in, reply: make(chan reply, 1)}

	select {
	case <-d.done:
		return d.Snapshot(), ErrStopped
	default:
	}

	select {
	case d.requests <- req:
	case <-d.done:
		return d.Snapshot(), ErrStopped
	case <-ctx.Done():
		return d.Snapshot(), ctx.Err()
	}

	select {
	case r := <-req.reply:
		return r.snap, r.err
	case <-d.finished:
		return d.Snapshot(), ErrStopped
	case <-ctx.Done():
		return d.Snapshot(), ctx.Err()
	}
}

// Snapshot returns the state after the most recently applied intent.
func (d *Dispatcher) Snapshot() core.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.last
}

// Updates delivers a snapshot after every applied intent, timer ticks
// included. When the buffer is full the oldest snapshot is dropped.
func (d *Dispatcher) Updates() <-chan core.Snapshot {
	return d.updates
}

// Done returns a channel that closes when the dispatcher is stopped.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) run() {
	defer close(d.finished)
	d.logger.Debug("dispatcher started", "tick", d.config.TickInterval)
	defer d.logger.Debug("dispatcher stopped")

	var tick <-chan time.Time
	if d.config.TickInterval > 0 {
		ticker := time.NewTicker(d.config.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case req := <-d.requests:
			snap, err := d.apply(req.intent)
			req.reply <- reply{snap: snap, err: err}

		case <-tick:
			// Paused or finished sessions reject ticks; nothing to report.
			d.apply(core.TickTimer()) //nolint:errcheck // See above

		case <-d.done:
			return
		}
	}
}

func (d *Dispatcher) apply(in core.Intent) (core.Snapshot, error) {
	snap, err := d.session.ApplyIntent(in)

	d.mu.Lock()
	d.last = snap
	d.mu.Unlock()

	if !errors.Is(err, core.ErrNoOp) {
		d.publish(snap)
	}
	return snap, err
}

// publish never blocks: a full buffer loses its oldest entry.
func (d *Dispatcher) publish(snap core.Snapshot) {
	select {
	case d.updates <- snap:
		return
	default:
	}

	select {
	case <-d.updates:
	default:
	}

	select {
	case d.updates <- snap:
	default:
	}
}
