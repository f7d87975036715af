// Package countdown implements the countdown timer state machine.
package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultInterval is the tick period of a running countdown.
const DefaultInterval = time.Second

// Engine holds the duration input, the remaining seconds and the run status.
// It owns at most one live tick schedule at a time.
type Engine struct {
	mu        sync.Mutex
	id        string
	interval  time.Duration
	scheduler Scheduler

	input     Duration
	remaining int
	status    Status
	closed    bool

	// gen identifies the live schedule; ticks from older schedules are ignored.
	gen    uint64
	cancel Cancel

	onChange   []func(Snapshot)
	onComplete []func(Snapshot)
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler sets the scheduler that drives ticks.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithInterval overrides the tick period.
func WithInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.interval = d
		}
	}
}

// New creates an idle engine with a zero duration.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:       uuid.NewString(),
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.scheduler == nil {
		e.scheduler = NewTickerScheduler(context.Background())
	}
	return e
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() string { return e.id }

// Interval returns the tick period.
func (e *Engine) Interval() time.Duration { return e.interval }

// OnChange registers fn to be called after every state change.
func (e *Engine) OnChange(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = append(e.onChange, fn)
}

// OnComplete registers fn to be called once each time the countdown reaches zero.
func (e *Engine) OnComplete(fn func(Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onComplete = append(e.onComplete, fn)
}

// SetInput edits the duration input without touching the countdown.
func (e *Engine) SetInput(d Duration) error {
	if err := d.Validate(); err != nil {
		return err
	}
	e.update(func() bool {
		if e.input == d {
			return false
		}
		e.input = d
		return true
	})
	return nil
}

// Input returns the current duration input.
func (e *Engine) Input() Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input
}

// Set loads the current input into the countdown. A zero input is rejected
// and leaves the countdown and status as they are.
func (e *Engine) Set() {
	e.update(func() bool {
		total := e.input.Total()
		if total <= 0 {
			return false
		}
		e.cancelLocked()
		e.remaining = total
		e.status = Idle
		logrus.Debugf("countdown %s set to %s", e.id, FormatTime(total))
		return true
	})
}

// SetDuration updates the input to h:m:s and loads it into the countdown.
func (e *Engine) SetDuration(h, m, s int) error {
	if err := e.SetInput(Duration{Hours: h, Minutes: m, Seconds: s}); err != nil {
		return err
	}
	e.Set()
	return nil
}

// Start begins or resumes counting down. It does nothing when there is no
// time left or the countdown is already running.
func (e *Engine) Start() {
	e.update(func() bool {
		if e.closed || e.remaining <= 0 || e.status == Running {
			return false
		}
		e.status = Running
		e.scheduleLocked()
		return true
	})
}

// Pause freezes a running countdown.
func (e *Engine) Pause() {
	e.update(func() bool {
		if e.status != Running {
			return false
		}
		e.cancelLocked()
		e.status = Paused
		return true
	})
}

// Reset returns to Idle with remaining time taken from the live input.
func (e *Engine) Reset() {
	e.update(func() bool {
		e.cancelLocked()
		e.status = Idle
		e.remaining = e.input.Total()
		return true
	})
}

// Close cancels any pending tick. The engine does not start again afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
	e.closed = true
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Remaining returns the remaining seconds.
func (e *Engine) Remaining() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining
}

// Status returns the run status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// Level grades the remaining time against the current input total.
func (e *Engine) Level() Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ShadowLevel(e.remaining, e.input.Total())
}

// Display returns the remaining time as HH:MM:SS.
func (e *Engine) Display() string {
	return FormatTime(e.Remaining())
}

func (e *Engine) tick(gen uint64) {
	var completed bool
	e.update(func() bool {
		if gen != e.gen || e.status != Running {
			return false
		}
		e.remaining--
		if e.remaining <= 0 {
			e.remaining = 0
			e.cancelLocked()
			e.status = Completed
			completed = true
			logrus.Debugf("countdown %s completed", e.id)
		}
		return true
	})
	if completed {
		e.notifyComplete()
	}
}

// scheduleLocked replaces any live schedule with a new one.
func (e *Engine) scheduleLocked() {
	e.cancelLocked()
	e.gen++
	gen := e.gen
	e.cancel = e.scheduler.Every(e.interval, func() { e.tick(gen) })
}

func (e *Engine) cancelLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.gen++
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		ID:        e.id,
		Input:     e.input,
		Remaining: e.remaining,
		Status:    e.status,
		Level:     ShadowLevel(e.remaining, e.input.Total()),
		Display:   FormatTime(e.remaining),
	}
}

// update applies fn under the lock and notifies listeners outside it.
func (e *Engine) update(fn func() bool) {
	e.mu.Lock()
	changed := fn()
	snap := e.snapshotLocked()
	listeners := e.onChange
	e.mu.Unlock()

	if !changed {
		return
	}
	for _, l := range listeners {
		l(snap)
	}
}

func (e *Engine) notifyComplete() {
	e.mu.Lock()
	snap := e.snapshotLocked()
	listeners := e.onComplete
	e.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}
