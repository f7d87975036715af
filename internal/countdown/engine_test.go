package countdown

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler records schedules and fires them only when asked.
type manualScheduler struct {
	mu     sync.Mutex
	next   int
	active map[int]func()
	starts int
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{active: make(map[int]func())}
}

func (s *manualScheduler) Every(_ time.Duration, fn func()) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	id := s.next
	s.active[id] = fn
	s.starts++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.active, id)
	}
}

// fire runs every live schedule once.
func (s *manualScheduler) fire(times int) {
	for i := 0; i < times; i++ {
		s.mu.Lock()
		fns := make([]func(), 0, len(s.active))
		for _, fn := range s.active {
			fns = append(fns, fn)
		}
		s.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
	}
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

func newTestEngine(t *testing.T) (*Engine, *manualScheduler) {
	t.Helper()
	sched := newManualScheduler()
	e := New(WithScheduler(sched))
	t.Cleanup(e.Close)
	return e, sched
}

func TestEngine_NewIsIdleAndZero(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	snap := e.Snapshot()
	assert.Equal(t, Idle, snap.Status)
	assert.Equal(t, 0, snap.Remaining)
	assert.Equal(t, "00:00:00", snap.Display)
	assert.NotEmpty(t, snap.ID)
}

func TestEngine_SetDurationZeroIsNoOp(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 0, 10))
	e.Start()
	sched.fire(3)

	require.NoError(t, e.SetDuration(0, 0, 0))
	assert.Equal(t, 7, e.Remaining())
	assert.Equal(t, Running, e.Status())
	assert.Equal(t, 1, sched.live())
}

func TestEngine_SetDurationLoadsTotal(t *testing.T) {
	t.Parallel()

	cases := []Duration{
		{Hours: 0, Minutes: 0, Seconds: 1},
		{Hours: 0, Minutes: 59, Seconds: 59},
		{Hours: 1, Minutes: 1, Seconds: 1},
		{Hours: 23, Minutes: 59, Seconds: 59},
		{Hours: 12, Minutes: 0, Seconds: 0},
	}
	for _, d := range cases {
		e, _ := newTestEngine(t)
		require.NoError(t, e.SetDuration(d.Hours, d.Minutes, d.Seconds))
		assert.Equal(t, d.Hours*3600+d.Minutes*60+d.Seconds, e.Remaining(), d.String())
		assert.Equal(t, Idle, e.Status())
	}
}

func TestEngine_SetDurationCancelsRunningTick(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 1, 0))
	e.Start()
	require.Equal(t, 1, sched.live())

	require.NoError(t, e.SetDuration(0, 0, 30))
	assert.Equal(t, Idle, e.Status())
	assert.Equal(t, 30, e.Remaining())
	assert.Equal(t, 0, sched.live())
}

func TestEngine_SetDurationRejectsOutOfRange(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 0, 5))

	err := e.SetDuration(24, 0, 0)
	require.ErrorIs(t, err, ErrInvalidDuration)
	assert.Equal(t, 5, e.Remaining())
	assert.Equal(t, Duration{Seconds: 5}, e.Input())
}

func TestEngine_StartWithZeroRemaining(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	e.Start()
	assert.Equal(t, Idle, e.Status())
	assert.Equal(t, 0, sched.live())
}

func TestEngine_StartIsIdempotent(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 0, 10))
	e.Start()
	e.Start()
	assert.Equal(t, 1, sched.starts)
	assert.Equal(t, 1, sched.live())
}

func TestEngine_RunsToCompletion(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	var completions int
	e.OnComplete(func(Snapshot) { completions++ })

	require.NoError(t, e.SetDuration(0, 0, 5))
	e.Start()
	sched.fire(5)

	assert.Equal(t, 0, e.Remaining())
	assert.Equal(t, Completed, e.Status())
	assert.Equal(t, 0, sched.live())
	assert.Equal(t, 1, completions)

	// No schedule is left, and a stray tick from the old schedule is ignored.
	sched.fire(3)
	e.tick(e.gen - 1)
	assert.Equal(t, 0, e.Remaining())
	assert.Equal(t, 1, completions)

	e.Start()
	assert.Equal(t, Completed, e.Status())
	e.Pause()
	assert.Equal(t, Completed, e.Status())
}

func TestEngine_PauseAndResume(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 0, 10))
	e.Start()
	sched.fire(4)

	e.Pause()
	assert.Equal(t, Paused, e.Status())
	assert.Equal(t, 0, sched.live())
	sched.fire(2)
	assert.Equal(t, 6, e.Remaining())

	e.Start()
	assert.Equal(t, Running, e.Status())
	sched.fire(1)
	assert.Equal(t, 5, e.Remaining())
}

func TestEngine_PauseWhenNotRunning(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	e.Pause()
	assert.Equal(t, Idle, e.Status())

	require.NoError(t, e.SetDuration(0, 0, 3))
	e.Start()
	e.Pause()
	e.Pause()
	assert.Equal(t, Paused, e.Status())
}

func TestEngine_ResetReadsLiveInput(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 0, 10))
	e.Start()
	sched.fire(2)

	require.NoError(t, e.SetInput(Duration{Minutes: 2}))
	assert.Equal(t, 8, e.Remaining(), "editing input must not touch the countdown")

	e.Reset()
	assert.Equal(t, Idle, e.Status())
	assert.Equal(t, 120, e.Remaining())
	assert.Equal(t, 0, sched.live())
}

func TestEngine_ResetWithZeroInput(t *testing.T) {
	t.Parallel()

	e, _ := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 0, 10))
	require.NoError(t, e.SetInput(Duration{}))
	e.Reset()
	assert.Equal(t, 0, e.Remaining())
	assert.Equal(t, Idle, e.Status())
}

func TestEngine_LevelFollowsLiveInput(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 0, 10))
	assert.Equal(t, LevelOK, e.Level())

	e.Start()
	sched.fire(5)
	assert.Equal(t, LevelWarning, e.Level())

	require.NoError(t, e.SetInput(Duration{}))
	assert.Equal(t, LevelCritical, e.Level())
}

func TestEngine_OnChange(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	var seen []Status
	e.OnChange(func(s Snapshot) { seen = append(seen, s.Status) })

	require.NoError(t, e.SetDuration(0, 0, 2))
	e.Start()
	e.Start()
	sched.fire(2)

	// input, set, start, tick, tick (completion)
	assert.Equal(t, []Status{Idle, Idle, Running, Running, Completed}, seen)
}

func TestEngine_CloseCancels(t *testing.T) {
	t.Parallel()

	e, sched := newTestEngine(t)
	require.NoError(t, e.SetDuration(0, 0, 10))
	e.Start()
	e.Close()
	assert.Equal(t, 0, sched.live())

	e.Pause()
	e.Start()
	assert.Equal(t, 0, sched.live())
}

func TestEngine_TickerScheduler(t *testing.T) {
	t.Parallel()

	e := New(WithInterval(5 * time.Millisecond))
	t.Cleanup(e.Close)

	done := make(chan Snapshot, 1)
	e.OnComplete(func(s Snapshot) { done <- s })

	require.NoError(t, e.SetDuration(0, 0, 3))
	e.Start()

	select {
	case snap := <-done:
		assert.Equal(t, Completed, snap.Status)
		assert.Equal(t, 0, snap.Remaining)
	case <-time.After(2 * time.Second):
		t.Fatal("countdown did not complete")
	}
}
