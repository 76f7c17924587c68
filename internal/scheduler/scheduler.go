// Package scheduler runs the background chaos timer: it counts down a fixed
// interval in ticks and, while active, installs a freshly generated mapping
// each time the countdown completes.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marcus/chaoskb/internal/remap"
)

// Defaults
const (
	DefaultInterval = 60 * time.Second
	DefaultTick     = time.Second
)

// ErrAlreadyStarted is returned by Start on a scheduler that has left Idle.
var ErrAlreadyStarted = errors.New("scheduler already started")

// State is the scheduler lifecycle state.
type State int

const (
	Idle State = iota
	Active
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// TickFunc is called before every countdown tick with the time left until
// the next shuffle.
type TickFunc func(remaining time.Duration)

// ShuffleFunc is called after the timer installed a new mapping.
type ShuffleFunc func(m *remap.Mapping)

// Scheduler periodically regenerates the engine's mapping.
type Scheduler struct {
	engine   *remap.Engine
	gen      *remap.Generator
	interval time.Duration
	tick     time.Duration
	onTick   TickFunc
	onFire   ShuffleFunc
	log      *slog.Logger

	mu    sync.Mutex
	state State

	// Mirrors of state for lock-free reads from the loop and the UI.
	active    atomic.Bool
	running   atomic.Bool
	remaining atomic.Int64
	shuffles  atomic.Int64
	// Bumped on every Resume so a countdown begun before a pause is abandoned.
	resumes atomic.Int64

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Option configures a Scheduler in New.
type Option func(*Scheduler)

// WithInterval sets the countdown length.
func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.interval = d }
}

// WithTick sets the countdown granularity and the paused poll interval.
func WithTick(d time.Duration) Option {
	return func(s *Scheduler) { s.tick = d }
}

// WithTickFunc registers a countdown observer.
func WithTickFunc(fn TickFunc) Option {
	return func(s *Scheduler) { s.onTick = fn }
}

// WithShuffleFunc registers an observer for timer-driven shuffles.
func WithShuffleFunc(fn ShuffleFunc) Option {
	return func(s *Scheduler) { s.onFire = fn }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// New returns an Idle scheduler that installs mappings from gen into engine.
func New(engine *remap.Engine, gen *remap.Generator, opts ...Option) *Scheduler {
	s := &Scheduler{
		engine:   engine,
		gen:      gen,
		interval: DefaultInterval,
		tick:     DefaultTick,
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tick <= 0 {
		s.tick = DefaultTick
	}
	if s.interval < s.tick {
		s.interval = s.tick
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	// Mapping state starts active, not running.
	s.active.Store(true)
	s.remaining.Store(int64(s.ticks()))
	return s
}

func (s *Scheduler) ticks() int {
	return int(s.interval / s.tick)
}

// Start moves Idle -> Active and launches the countdown goroutine. The
// goroutine also exits when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Idle {
		return ErrAlreadyStarted
	}
	s.setState(Active)

	s.wg.Add(1)
	go s.loop(ctx)
	return nil
}

// Pause moves Active -> Paused. The goroutine keeps polling but never
// shuffles. Returns false if the scheduler was not Active.
func (s *Scheduler) Pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return false
	}
	s.setState(Paused)
	return true
}

// Resume moves Paused -> Active; the countdown restarts from the full
// interval. Returns false if the scheduler was not Paused.
func (s *Scheduler) Resume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Paused {
		return false
	}
	s.resumes.Add(1)
	s.setState(Active)
	return true
}

// Stop moves any state to Stopped and waits for the goroutine to exit.
// No mapping is installed by the timer once Stop has returned.
func (s *Scheduler) Stop() {
	s.halt()
	s.wg.Wait()
}

func (s *Scheduler) halt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped {
		return
	}
	s.setState(Stopped)
	close(s.stopCh)
}

// setState must be called with mu held.
func (s *Scheduler) setState(next State) {
	prev := s.state
	s.state = next
	switch next {
	case Active:
		s.active.Store(true)
		s.running.Store(true)
	case Paused:
		s.active.Store(false)
		s.running.Store(true)
	case Stopped:
		s.active.Store(false)
		s.running.Store(false)
	}
	s.log.Debug("scheduler: state", "from", prev.String(), "to", next.String())
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Active reports whether timer shuffles are enabled.
func (s *Scheduler) Active() bool { return s.active.Load() }

// Running reports whether the countdown goroutine is expected to be alive.
func (s *Scheduler) Running() bool { return s.running.Load() }

// Remaining returns the time left in the current countdown.
func (s *Scheduler) Remaining() time.Duration {
	return time.Duration(s.remaining.Load()) * s.tick
}

// Interval returns the countdown length.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Shuffles returns how many timer-driven installs have happened.
func (s *Scheduler) Shuffles() int { return int(s.shuffles.Load()) }

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	t := time.NewTicker(s.tick)
	defer t.Stop()

	for s.running.Load() {
		if !s.active.Load() {
			if !s.wait(ctx, t) {
				return
			}
			continue
		}

		epoch := s.resumes.Load()
		completed := true
		for n := s.ticks(); n > 0; n-- {
			if !s.running.Load() || !s.active.Load() || s.resumes.Load() != epoch {
				completed = false
				break
			}
			s.remaining.Store(int64(n))
			if s.onTick != nil {
				s.onTick(time.Duration(n) * s.tick)
			}
			if !s.wait(ctx, t) {
				return
			}
		}
		s.remaining.Store(int64(s.ticks()))
		if completed {
			s.fire(epoch)
		}
	}
}

// wait blocks for one tick. It returns false when the goroutine should exit.
func (s *Scheduler) wait(ctx context.Context, t *time.Ticker) bool {
	select {
	case <-ctx.Done():
		s.halt()
		return false
	case <-s.stopCh:
		return false
	case <-t.C:
		return s.running.Load()
	}
}

// fire installs a new mapping unless the scheduler left Active or was
// resumed since the countdown began.
func (s *Scheduler) fire(epoch int64) {
	s.mu.Lock()
	if s.state != Active || s.resumes.Load() != epoch {
		s.mu.Unlock()
		return
	}
	m := s.engine.Shuffle(s.gen)
	n := s.shuffles.Add(1)
	s.mu.Unlock()

	s.log.Info("scheduler: shuffled", "keys", m.Len(), "dropped", len(m.Dropped()), "count", n)
	if s.onFire != nil {
		s.onFire(m)
	}
}
