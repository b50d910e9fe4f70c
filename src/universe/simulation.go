package universe

import (
	"context"
	"fmt"
	"time"
)

//RunState is the simulation status shown to the user
type RunState int

const (
	RunStateReady RunState = iota
	RunStateRunning
	RunStatePaused
	RunStateCleared
	RunStateStasis
	RunStateExtinction
)

var runStateNames = map[RunState]string{
	RunStateReady:      "Ready",
	RunStateRunning:    "Running",
	RunStatePaused:     "Paused",
	RunStateCleared:    "Cleared",
	RunStateStasis:     "Stasis",
	RunStateExtinction: "Extinction",
}

func (rs RunState) String() string {
	if n, ok := runStateNames[rs]; ok {
		return n
	}
	return fmt.Sprintf("RunState(%d)", int(rs))
}

//Status represents the status of the simulation at concrete moment
type Status struct {
	Generations   int
	Alive         int
	Running       bool
	RunState      RunState
	Engine        string
	IterationTime time.Duration
	Details       map[string]interface{} //engine specific details
}

//Message is the status line for display
func (s Status) Message() string {
	return s.RunState.String()
}

//Viewer is the interface to any display - it is called every time the simulation status changes
type Viewer interface {
	Refresh(st Status)
}

//Option configures a Simulation
type Option func(*Simulation)

//WithInterval sets the delay Run waits between generations
func WithInterval(d time.Duration) Option {
	return func(s *Simulation) {
		s.interval = d
	}
}

//WithMaxSteps pauses Run once the generation counter reaches n, 0 means no limit
func WithMaxSteps(n int) Option {
	return func(s *Simulation) {
		s.maxSteps = n
	}
}

//WithViewer registers v at construction
func WithViewer(v Viewer) Option {
	return func(s *Simulation) {
		s.views = append(s.views, v)
	}
}

//Simulation owns the grid, the engine and the counters
//it is not safe for concurrent use, hosts with their own goroutines should go through Loop
type Simulation struct {
	grid          *Grid
	engine        Engine
	interval      time.Duration
	maxSteps      int
	generations   int
	alive         int
	running       bool
	runState      RunState
	iterationTime time.Duration
	views         []Viewer
	templates     map[string]Template
}

//New creates the simulation with an empty size x size grid in the Ready state
func New(size int, engine Engine, opts ...Option) (*Simulation, error) {
	g, err := NewGrid(size)
	if err != nil {
		return nil, err
	}
	if engine == nil {
		engine = NewSparseEngine()
	}
	s := Simulation{
		grid:      g,
		engine:    engine,
		runState:  RunStateReady,
		templates: map[string]Template{},
	}
	for _, t := range DefaultTemplates {
		s.AddTemplate(t)
	}
	for _, o := range opts {
		o(&s)
	}
	return &s, nil
}

//RegisterViewer registers the viewer - the simulation will call it when the status is changed
func (s *Simulation) RegisterViewer(v Viewer) {
	s.views = append(s.views, v)
}

//Size returns the grid dimension
func (s *Simulation) Size() int {
	return s.grid.Size
}

//Engine returns the active engine
func (s *Simulation) Engine() Engine {
	return s.engine
}

//Running reports whether the run cycle is active
func (s *Simulation) Running() bool {
	return s.running
}

//State returns current simulation status
func (s *Simulation) State() Status {
	return Status{
		Generations:   s.generations,
		Alive:         s.alive,
		Running:       s.running,
		RunState:      s.runState,
		Engine:        s.engine.Name(),
		IterationTime: s.iterationTime,
		Details:       s.engine.Details(),
	}
}

//Snapshot returns a read-only copy of the board
func (s *Simulation) Snapshot() Snapshot {
	return s.grid.Snapshot()
}

//Toggle flips the cell at p, rejected while the simulation is running
func (s *Simulation) Toggle(p Position) error {
	if s.running {
		return fmt.Errorf("%w: toggle %v while running", ErrInvalidStateTransition, p)
	}
	if !s.grid.Contains(p) {
		return fmt.Errorf("%w: %v on %dx%d grid", ErrInvalidPosition, p, s.grid.Size, s.grid.Size)
	}
	s.toggle(p)
	s.refreshView()
	return nil
}

//Start switches to Running, the caller drives the generations with Step
//Run is the usual way to start the simulation
func (s *Simulation) Start() error {
	if s.running {
		return fmt.Errorf("%w: already running", ErrInvalidStateTransition)
	}
	s.running = true
	s.runState = RunStateRunning
	s.refreshView()
	return nil
}

//Run starts the simulation and steps it until it stops
//after every step it yields: viewers are refreshed and the interval is waited,
//a Stop issued there is observed before the next step
func (s *Simulation) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	for s.running {
		s.Step()
		if s.limitReached() {
			s.Stop()
		}
		if !s.running {
			break
		}
		if err := s.yield(ctx); err != nil {
			s.Stop()
			return err
		}
	}
	return nil
}

//Stop pauses the run cycle, safe to call at any time
func (s *Simulation) Stop() {
	s.running = false
	s.runState = RunStatePaused
	s.refreshView()
}

//Step computes one generation
//when nothing changes the run cycle ends in Stasis or Extinction
func (s *Simulation) Step() {
	start := time.Now()
	changes := s.engine.Changes(s.grid)
	for _, p := range changes {
		s.toggle(p)
	}
	s.iterationTime = time.Since(start)
	if len(changes) > 0 {
		s.generations++
	} else {
		s.running = false
		if s.alive == 0 {
			s.runState = RunStateExtinction
		} else {
			s.runState = RunStateStasis
		}
	}
	s.refreshView()
}

//Clear kills all cells and resets the counters
func (s *Simulation) Clear() {
	s.running = false
	s.generations = 0
	s.runState = RunStateCleared
	//toggling changes the board, collect the live cells first
	for _, p := range s.grid.Snapshot().Live() {
		s.toggle(p)
	}
	s.engine.Reset()
	s.refreshView()
}

//limitReached reports whether a running simulation hit the configured maximum of generations
func (s *Simulation) limitReached() bool {
	return s.running && s.maxSteps != 0 && s.generations >= s.maxSteps
}

//toggle is the only path that changes a cell state
func (s *Simulation) toggle(p Position) {
	c := &s.grid.Cells[p.Row][p.Col]
	c.Alive = !c.Alive
	if c.Alive {
		s.alive++
	} else {
		s.alive--
	}
	s.engine.Toggled(s.grid, p, c.Alive)
}

//yield is the suspension point between two generations
func (s *Simulation) yield(ctx context.Context) error {
	if s.interval <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

//refreshView calls Refresh for all registered views
func (s *Simulation) refreshView() {
	if len(s.views) == 0 {
		return
	}
	st := s.State()
	for _, v := range s.views {
		v.Refresh(st)
	}
}
