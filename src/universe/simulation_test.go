package universe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//recorder keeps every status the simulation emitted
type recorder struct {
	states    []Status
	onRefresh func(st Status)
}

func (r *recorder) Refresh(st Status) {
	r.states = append(r.states, st)
	if r.onRefresh != nil {
		r.onRefresh(st)
	}
}

func (r *recorder) last() Status {
	return r.states[len(r.states)-1]
}

func TestNewSimulation(t *testing.T) {
	for _, name := range Engines() {
		s := newTestSimulation(t, 30, name)
		st := s.State()
		assert.Equal(t, RunStateReady, st.RunState)
		assert.Equal(t, "Ready", st.Message())
		assert.Equal(t, 0, st.Generations)
		assert.Equal(t, 0, st.Alive)
		assert.False(t, st.Running)
		assert.Equal(t, name, st.Engine)
		assert.Equal(t, 30, s.Size())
		assert.Equal(t, 0, s.Snapshot().Count())
	}

	_, err := New(0, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)

	s, err := New(4, nil)
	require.NoError(t, err)
	assert.Equal(t, "sparse", s.Engine().Name())
}

func TestToggleRoundTrip(t *testing.T) {
	for _, name := range Engines() {
		rec := &recorder{}
		s := newTestSimulation(t, 5, name, WithViewer(rec))
		p := Position{2, 3}

		require.NoError(t, s.Toggle(p))
		assert.True(t, s.Snapshot().Alive(p))
		assert.Equal(t, 1, s.State().Alive)
		assert.Equal(t, 1, rec.last().Alive)

		require.NoError(t, s.Toggle(p))
		assert.False(t, s.Snapshot().Alive(p))
		assert.Equal(t, 0, s.State().Alive)
		assert.Equal(t, 0, rec.last().Alive)
		assert.Len(t, rec.states, 2)
	}
}

func TestToggleInvalid(t *testing.T) {
	s := newTestSimulation(t, 5, "sparse")
	for _, p := range []Position{{-1, 0}, {0, 5}, {5, 5}} {
		err := s.Toggle(p)
		assert.ErrorIs(t, err, ErrInvalidPosition)
	}
	assert.Equal(t, 0, s.Engine().(*SparseEngine).Watch().Len())

	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Toggle(Position{1, 1}), ErrInvalidStateTransition)
	assert.Equal(t, 0, s.State().Alive)
	assert.ErrorIs(t, s.Start(), ErrInvalidStateTransition)

	s.Stop()
	assert.Equal(t, RunStatePaused, s.State().RunState)
	assert.NoError(t, s.Toggle(Position{1, 1}))
}

func TestPopulationInvariant(t *testing.T) {
	for _, name := range Engines() {
		s := newTestSimulation(t, 20, name)
		require.NoError(t, s.SettleWithRandomData(3, 0.4))
		assert.Equal(t, s.Snapshot().Count(), s.State().Alive)
		for _, p := range []Position{{0, 0}, {19, 19}, {10, 4}, {0, 0}} {
			require.NoError(t, s.Toggle(p))
			assert.Equal(t, s.Snapshot().Count(), s.State().Alive)
		}
		for g := 0; g < 30; g++ {
			s.Step()
			assert.Equal(t, s.Snapshot().Count(), s.State().Alive, "%s generation %d", name, g)
		}
	}
}

func TestSingleCellExtinction(t *testing.T) {
	for _, name := range Engines() {
		s := newTestSimulation(t, 9, name)
		require.NoError(t, s.Toggle(Position{4, 4}))
		require.NoError(t, s.Run(context.Background()))

		st := s.State()
		assert.Equal(t, RunStateExtinction, st.RunState, name)
		assert.Equal(t, 1, st.Generations, name)
		assert.Equal(t, 0, st.Alive, name)
		assert.False(t, st.Running, name)
	}
}

func TestBlockStasis(t *testing.T) {
	for _, name := range Engines() {
		s := newTestSimulation(t, 9, name)
		require.NoError(t, s.SettleTemplate("block"))
		require.NoError(t, s.Run(context.Background()))

		st := s.State()
		assert.Equal(t, RunStateStasis, st.RunState, name)
		assert.Equal(t, 0, st.Generations, name)
		assert.Equal(t, 4, st.Alive, name)
	}
}

func TestBlinkerNeverTerminal(t *testing.T) {
	for _, name := range Engines() {
		rec := &recorder{}
		s := newTestSimulation(t, 5, name, WithViewer(rec), WithMaxSteps(10))
		require.NoError(t, s.SettleTemplate("blinker"))
		horizontal := s.Snapshot()
		assert.Equal(t, ".....\n.....\n.###.\n.....\n.....", horizontal.String())

		s.Step()
		assert.Equal(t, ".....\n..#..\n..#..\n..#..\n.....", s.Snapshot().String())
		s.Step()
		assert.True(t, horizontal.Equal(s.Snapshot()))

		require.NoError(t, s.Run(context.Background()))
		for _, st := range rec.states {
			assert.NotEqual(t, RunStateStasis, st.RunState)
			assert.NotEqual(t, RunStateExtinction, st.RunState)
		}
		assert.Equal(t, RunStatePaused, s.State().RunState)
		assert.Equal(t, 10, s.State().Generations)
		assert.Equal(t, 3, s.State().Alive)
	}
}

func TestStopFromViewer(t *testing.T) {
	var s *Simulation
	rec := &recorder{}
	rec.onRefresh = func(st Status) {
		if st.Running && st.Generations == 3 {
			s.Stop()
		}
	}
	s = newTestSimulation(t, 8, "sparse", WithViewer(rec))
	require.NoError(t, s.SettleTemplate("blinker"))

	require.NoError(t, s.Run(context.Background()))
	st := s.State()
	assert.Equal(t, RunStatePaused, st.RunState)
	assert.Equal(t, 3, st.Generations)
	assert.False(t, st.Running)
	assert.Equal(t, "Paused", rec.last().Message())
}

func TestRunCancelled(t *testing.T) {
	s := newTestSimulation(t, 8, "full", WithInterval(time.Hour))
	require.NoError(t, s.SettleTemplate("blinker"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	//the step in progress is finished before the cancellation is observed
	assert.Equal(t, 1, s.State().Generations)
	assert.Equal(t, RunStatePaused, s.State().RunState)
}

func TestRunWaitsInterval(t *testing.T) {
	s := newTestSimulation(t, 8, "sparse", WithInterval(5*time.Millisecond), WithMaxSteps(4))
	require.NoError(t, s.SettleTemplate("blinker"))
	start := time.Now()
	require.NoError(t, s.Run(context.Background()))
	//three waits between four generations
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	assert.Equal(t, 4, s.State().Generations)
}

func TestClear(t *testing.T) {
	for _, name := range Engines() {
		rec := &recorder{}
		s := newTestSimulation(t, 10, name, WithViewer(rec))
		require.NoError(t, s.SettleWithRandomData(11, 0.5))
		s.Step()
		s.Step()
		require.NotZero(t, s.State().Alive)

		s.Clear()
		st := s.State()
		assert.Equal(t, RunStateCleared, st.RunState)
		assert.Equal(t, "Cleared", rec.last().Message())
		assert.Equal(t, 0, st.Generations)
		assert.Equal(t, 0, st.Alive)
		assert.Equal(t, 0, s.Snapshot().Count())

		s.Clear()
		assert.Equal(t, st, s.State())

		//the board is usable again
		require.NoError(t, s.SettleTemplate("block"))
		s.Step()
		assert.Equal(t, RunStateStasis, s.State().RunState)
	}
}

func TestClearStopsRun(t *testing.T) {
	var s *Simulation
	rec := &recorder{}
	rec.onRefresh = func(st Status) {
		if st.Running && st.Generations == 2 {
			s.Clear()
		}
	}
	s = newTestSimulation(t, 8, "sparse", WithViewer(rec))
	require.NoError(t, s.SettleTemplate("blinker"))
	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, RunStateCleared, s.State().RunState)
	assert.Equal(t, 0, s.State().Alive)
}

func TestRunStateString(t *testing.T) {
	assert.Equal(t, "Extinction", RunStateExtinction.String())
	assert.Equal(t, "Stasis", RunStateStasis.String())
	assert.Equal(t, "RunState(42)", RunState(42).String())
}
