// Package status tracks the console's connectivity indicator: a small state
// machine whose visible transitions are rate-limited so rapid busy/online
// flapping during a save does not strobe the UI.
package status

import (
	"sync"
	"time"
)

// State is a connectivity indicator state.
type State int

const (
	Unknown State = iota
	Online
	Offline
	Busy
	Error
)

func (s State) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	case Busy:
		return "busy"
	case Error:
		return "error"
	}
	return "unknown"
}

// DefaultMinDwell is the minimum time a state stays visible before the next
// transition is shown.
const DefaultMinDwell = 500 * time.Millisecond

// Clock abstracts time for tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a stoppable pending callback.
type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Indicator is the debounced indicator state machine. The zero value is not
// usable; construct with NewIndicator.
type Indicator struct {
	mu         sync.Mutex
	clock      Clock
	minDwell   time.Duration
	state      State
	detail     string
	lastSwitch time.Time
	hasSwitch  bool

	pending       State
	pendingDetail string
	hasPending    bool
	timer         Timer

	notify func(State, string)
}

// Option configures an Indicator.
type Option func(*Indicator)

// WithClock injects a test clock.
func WithClock(c Clock) Option {
	return func(i *Indicator) { i.clock = c }
}

// WithMinDwell overrides the minimum visible dwell.
func WithMinDwell(d time.Duration) Option {
	return func(i *Indicator) { i.minDwell = d }
}

// WithNotify registers a callback invoked (without the lock held) whenever a
// transition becomes visible.
func WithNotify(fn func(State, string)) Option {
	return func(i *Indicator) { i.notify = fn }
}

// NewIndicator creates an indicator in the Unknown state.
func NewIndicator(opts ...Option) *Indicator {
	i := &Indicator{
		clock:    realClock{},
		minDwell: DefaultMinDwell,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Current returns the visible state and its detail message.
func (i *Indicator) Current() (State, string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state, i.detail
}

// Set requests a transition. If the current state has been visible for at
// least the minimum dwell the transition applies immediately; otherwise it
// is deferred until the dwell expires. A newer request replaces a deferred
// one, so only the latest state ever becomes visible.
func (i *Indicator) Set(state State, detail string) {
	i.mu.Lock()

	if state == i.state && detail == i.detail && !i.hasPending {
		i.mu.Unlock()
		return
	}

	now := i.clock.Now()
	if !i.hasSwitch || now.Sub(i.lastSwitch) >= i.minDwell {
		i.cancelPendingLocked()
		notify := i.applyLocked(state, detail, now)
		i.mu.Unlock()
		if notify != nil {
			notify(state, detail)
		}
		return
	}

	// Within the dwell window: remember the request, arm the timer once.
	remaining := i.minDwell - now.Sub(i.lastSwitch)
	i.pending, i.pendingDetail = state, detail
	if !i.hasPending {
		i.hasPending = true
		i.timer = i.clock.AfterFunc(remaining, i.flushPending)
	}
	i.mu.Unlock()
}

// flushPending applies the deferred transition when the dwell expires.
func (i *Indicator) flushPending() {
	i.mu.Lock()
	if !i.hasPending {
		i.mu.Unlock()
		return
	}
	state, detail := i.pending, i.pendingDetail
	i.hasPending = false
	i.timer = nil
	notify := i.applyLocked(state, detail, i.clock.Now())
	i.mu.Unlock()
	if notify != nil {
		notify(state, detail)
	}
}

func (i *Indicator) applyLocked(state State, detail string, now time.Time) func(State, string) {
	i.state, i.detail = state, detail
	i.lastSwitch = now
	i.hasSwitch = true
	return i.notify
}

func (i *Indicator) cancelPendingLocked() {
	if i.hasPending {
		i.hasPending = false
		if i.timer != nil {
			i.timer.Stop()
			i.timer = nil
		}
	}
}
