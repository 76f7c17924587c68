package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus/chaoskb/internal/remap"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestScheduler(t *testing.T, interval, tick time.Duration, opts ...Option) (*Scheduler, *remap.Engine) {
	t.Helper()
	engine := remap.NewEngine()
	gen := remap.NewGenerator(17)
	engine.Shuffle(gen)
	opts = append([]Option{WithInterval(interval), WithTick(tick), WithLogger(quietLogger())}, opts...)
	s := New(engine, gen, opts...)
	t.Cleanup(s.Stop)
	return s, engine
}

func TestNewIsIdle(t *testing.T) {
	s, _ := newTestScheduler(t, 10*time.Millisecond, time.Millisecond)
	assert.Equal(t, Idle, s.State())
	assert.True(t, s.Active())
	assert.False(t, s.Running())
	assert.Equal(t, 10*time.Millisecond, s.Remaining())
}

func TestNewClampsDurations(t *testing.T) {
	s := New(remap.NewEngine(), remap.NewGenerator(1), WithTick(0), WithInterval(0), WithLogger(quietLogger()))
	assert.Equal(t, DefaultTick, s.tick)
	assert.Equal(t, DefaultTick, s.Interval())
}

func TestStartShufflesAfterInterval(t *testing.T) {
	var mu sync.Mutex
	var fired []*remap.Mapping
	s, engine := newTestScheduler(t, 5*time.Millisecond, time.Millisecond,
		WithShuffleFunc(func(m *remap.Mapping) {
			mu.Lock()
			fired = append(fired, m)
			mu.Unlock()
		}))
	before := engine.Mapping()

	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, Active, s.State())
	assert.True(t, s.Running())

	require.Eventually(t, func() bool { return s.Shuffles() >= 2 }, 2*time.Second, time.Millisecond)
	assert.NotSame(t, before, engine.Mapping())

	s.Stop()
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, fired)
	assert.Same(t, fired[len(fired)-1], engine.Mapping())
}

func TestStartTwice(t *testing.T) {
	s, _ := newTestScheduler(t, 50*time.Millisecond, time.Millisecond)
	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)

	s.Stop()
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyStarted)
}

func TestTickCountsDown(t *testing.T) {
	var mu sync.Mutex
	var seen []time.Duration
	s, _ := newTestScheduler(t, 4*time.Millisecond, time.Millisecond,
		WithTickFunc(func(remaining time.Duration) {
			mu.Lock()
			seen = append(seen, remaining)
			mu.Unlock()
		}))

	require.NoError(t, s.Start(context.Background()))
	require.Eventually(t, func() bool { return s.Shuffles() >= 1 }, 2*time.Second, time.Millisecond)
	s.Stop()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(seen), 4)
	assert.Equal(t, []time.Duration{
		4 * time.Millisecond, 3 * time.Millisecond, 2 * time.Millisecond, time.Millisecond,
	}, seen[:4])
}

func TestPauseSuppressesShuffles(t *testing.T) {
	s, engine := newTestScheduler(t, 50*time.Millisecond, 5*time.Millisecond)
	before := engine.Mapping()

	require.NoError(t, s.Start(context.Background()))
	require.True(t, s.Pause())
	assert.Equal(t, Paused, s.State())
	assert.False(t, s.Active())
	assert.True(t, s.Running())
	assert.False(t, s.Pause(), "pausing twice should be a no-op")

	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, s.Shuffles())
	assert.Same(t, before, engine.Mapping())
}

func TestResumeRestartsCountdown(t *testing.T) {
	s, _ := newTestScheduler(t, 5*time.Millisecond, time.Millisecond)

	assert.False(t, s.Resume(), "resume from idle should be a no-op")
	require.NoError(t, s.Start(context.Background()))
	require.True(t, s.Pause())
	require.True(t, s.Resume())
	assert.Equal(t, Active, s.State())

	require.Eventually(t, func() bool { return s.Shuffles() >= 1 }, 2*time.Second, time.Millisecond)
}

func TestResumeWithinOneTickWaitsFullInterval(t *testing.T) {
	fired := make(chan time.Time, 1)
	s, _ := newTestScheduler(t, 200*time.Millisecond, 50*time.Millisecond,
		WithShuffleFunc(func(*remap.Mapping) {
			select {
			case fired <- time.Now():
			default:
			}
		}))

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(120 * time.Millisecond)
	require.True(t, s.Pause())
	require.True(t, s.Resume())
	resumedAt := time.Now()

	select {
	case at := <-fired:
		// The countdown may only restart at the next tick boundary.
		assert.GreaterOrEqual(t, at.Sub(resumedAt), 150*time.Millisecond,
			"countdown from before the pause carried over")
	case <-time.After(2 * time.Second):
		t.Fatal("no shuffle after resume")
	}
}

func TestStopMidCountdownPreventsInstall(t *testing.T) {
	s, engine := newTestScheduler(t, 40*time.Millisecond, time.Millisecond)
	require.NoError(t, s.Start(context.Background()))

	time.Sleep(10 * time.Millisecond)
	s.Stop()

	assert.Equal(t, Stopped, s.State())
	assert.False(t, s.Running())
	assert.False(t, s.Active())

	installed := engine.Mapping()
	count := s.Shuffles()
	time.Sleep(100 * time.Millisecond)
	assert.Same(t, installed, engine.Mapping())
	assert.Equal(t, count, s.Shuffles())
}

func TestStopRacingTimer(t *testing.T) {
	for i := 0; i < 20; i++ {
		s, engine := newTestScheduler(t, time.Millisecond, time.Millisecond)
		require.NoError(t, s.Start(context.Background()))
		time.Sleep(time.Duration(i%5) * time.Millisecond)
		s.Stop()

		installed := engine.Mapping()
		count := s.Shuffles()
		time.Sleep(5 * time.Millisecond)
		assert.Same(t, installed, engine.Mapping())
		assert.Equal(t, count, s.Shuffles())
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s, _ := newTestScheduler(t, 10*time.Millisecond, time.Millisecond)
	s.Stop()
	s.Stop()
	assert.Equal(t, Stopped, s.State())
	assert.False(t, s.Pause())
	assert.False(t, s.Resume())
}

func TestContextCancelStops(t *testing.T) {
	s, _ := newTestScheduler(t, time.Second, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()
	require.Eventually(t, func() bool { return s.State() == Stopped }, time.Second, time.Millisecond)
	assert.False(t, s.Running())
	s.Stop()
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		Idle:      "idle",
		Active:    "active",
		Paused:    "paused",
		Stopped:   "stopped",
		State(42): "unknown",
	}
	for st, want := range tests {
		assert.Equal(t, want, st.String())
	}
}
