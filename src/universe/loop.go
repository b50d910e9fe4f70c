package universe

import (
	"fmt"
	"time"
)

//Loop owns a Simulation and runs every operation on one goroutine
//commands are executed in the order they were posted, a running simulation
//computes one generation per command and schedules the next one after the interval,
//so commands posted in between are processed before the next generation
type Loop struct {
	sim       *Simulation
	interval  time.Duration
	controlCh chan func()
	closeCh   chan struct{}
	doneCh    chan struct{}
	errCh     chan error
	runs      int //run cycle counter, ticks of a previous run cycle are dropped
}

//NewLoop starts the loop goroutine
//errors of asynchronous commands are written to the errors channel, if nobody reads them they are dropped
func NewLoop(sim *Simulation, interval time.Duration) *Loop {
	l := Loop{
		sim:       sim,
		interval:  interval,
		controlCh: make(chan func(), 16),
		closeCh:   make(chan struct{}),
		doneCh:    make(chan struct{}),
		errCh:     make(chan error, 1),
	}
	go l.mainLoop()
	return &l
}

//Errors returns the channel with errors of asynchronous commands
func (l *Loop) Errors() <-chan error {
	return l.errCh
}

//Toggle flips the cell at p, returns immediately
func (l *Loop) Toggle(p Position) {
	l.post(func() { l.report(l.sim.Toggle(p)) })
}

//Run starts the simulation, returns immediately
func (l *Loop) Run() {
	l.post(func() {
		if err := l.sim.Start(); err != nil {
			l.report(err)
			return
		}
		l.runs++
		l.tick(l.runs)
	})
}

//Stop stops the simulation, returns immediately
func (l *Loop) Stop() {
	l.post(l.sim.Stop)
}

//Step does one generation, returns immediately
func (l *Loop) Step() {
	l.post(l.sim.Step)
}

//Clear clears the board, returns immediately
func (l *Loop) Clear() {
	l.post(l.sim.Clear)
}

//SettleWithRandomData clears the board and settles it with random data, returns immediately
func (l *Loop) SettleWithRandomData(seed int64, density float64) {
	l.post(func() {
		if l.sim.Running() {
			l.report(fmt.Errorf("%w: settle while running", ErrInvalidStateTransition))
			return
		}
		l.sim.Clear()
		l.report(l.sim.SettleWithRandomData(seed, density))
	})
}

//Do runs f on the loop goroutine and waits for it
//returns false if the loop is closed
func (l *Loop) Do(f func(s *Simulation)) bool {
	done := make(chan struct{})
	if !l.post(func() {
		f(l.sim)
		close(done)
	}) {
		return false
	}
	select {
	case <-done:
		return true
	case <-l.doneCh:
		return false
	}
}

//Snapshot returns the board and the status taken at the same moment
func (l *Loop) Snapshot() (snap Snapshot, st Status) {
	l.Do(func(s *Simulation) {
		snap = s.Snapshot()
		st = s.State()
	})
	return
}

//Close stops the main loop, returns immediately
func (l *Loop) Close() {
	select {
	case <-l.closeCh:
	default:
		close(l.closeCh)
	}
}

//Done is closed when the main loop has finished
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}

//mainLoop - the main cycle, waits for command and executes
func (l *Loop) mainLoop() {
	defer close(l.doneCh)
	for {
		select {
		case cmd := <-l.controlCh:
			cmd()
		case <-l.closeCh:
			return
		}
	}
}

//post queues the command, returns false if the loop is closed
func (l *Loop) post(cmd func()) bool {
	select {
	case l.controlCh <- cmd:
		return true
	case <-l.closeCh:
		return false
	}
}

//tick does one generation of a running simulation and schedules the next one
func (l *Loop) tick(run int) {
	if run != l.runs || !l.sim.Running() {
		return
	}
	l.sim.Step()
	if l.sim.limitReached() {
		l.sim.Stop()
	}
	if !l.sim.Running() {
		return
	}
	time.AfterFunc(l.interval, func() { l.post(func() { l.tick(run) }) })
}

func (l *Loop) report(err error) {
	if err == nil {
		return
	}
	select {
	case l.errCh <- err:
	default:
	}
}
