package universe

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

/*
	Cross-check of the engines
	Every engine runs its own simulation from the same seed in its own goroutine,
	nothing is shared between them. The boards are compared generation by generation afterwards.
*/

//Seeder populates a freshly created simulation
type Seeder func(s *Simulation) error

//Report is the result of Compare
type Report struct {
	Size        int
	Generations int
	DivergedAt  int //first generation where the boards differ, -1 if they never do
	Results     []EngineResult
}

//EngineResult describes the run of one engine
type EngineResult struct {
	Engine    string
	Final     Status
	TotalTime time.Duration
	snapshots []Snapshot
}

//Equivalent reports whether all engines produced the same boards
func (r Report) Equivalent() bool {
	return r.DivergedAt < 0
}

//Compare runs every registered engine for the given number of generations from the same seed
func Compare(ctx context.Context, size int, seed Seeder, generations int) (Report, error) {
	if generations < 0 {
		return Report{}, fmt.Errorf("%w: %d", ErrInvalidGenerations, generations)
	}
	names := Engines()
	report := Report{Size: size, Generations: generations, DivergedAt: -1, Results: make([]EngineResult, len(names))}
	eg, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		res := &report.Results[i]
		res.Engine = name
		eg.Go(func() error {
			return res.record(ctx, size, seed, generations)
		})
	}
	if err := eg.Wait(); err != nil {
		return report, err
	}

	base := report.Results[0].snapshots
	for g := range base {
		for _, res := range report.Results[1:] {
			if !base[g].Equal(res.snapshots[g]) {
				report.DivergedAt = g
				return report, nil
			}
		}
	}
	return report, nil
}

//record runs the simulation and stores the board after every generation
func (res *EngineResult) record(ctx context.Context, size int, seed Seeder, generations int) error {
	e, err := NewEngine(res.Engine)
	if err != nil {
		return err
	}
	s, err := New(size, e)
	if err != nil {
		return err
	}
	if err := seed(s); err != nil {
		return fmt.Errorf("seed %s: %w", res.Engine, err)
	}
	start := time.Now()
	res.snapshots = make([]Snapshot, 0, generations+1)
	res.snapshots = append(res.snapshots, s.Snapshot())
	for g := 0; g < generations; g++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.Step()
		res.snapshots = append(res.snapshots, s.Snapshot())
	}
	res.TotalTime = time.Since(start)
	res.Final = s.State()
	return nil
}
