package universe

/*
	Full scan engine
	Every cell is evaluated on every generation, the cost does not depend on the population.
	This is the baseline the other engines are checked against.
*/

type FullEngine struct {
	scanned int
}

func NewFullEngine() *FullEngine {
	return &FullEngine{}
}

//ComputeNextFull evaluates every cell of the grid and returns the changing positions in row-major order
func ComputeNextFull(g *Grid) []Position {
	var changes []Position
	g.walk(func(p Position, _ *Cell) {
		if changed, _ := evaluate(g, p); changed {
			changes = append(changes, p)
		}
	})
	return changes
}

func (fe *FullEngine) Name() string {
	return "full"
}

func (fe *FullEngine) Changes(g *Grid) []Position {
	fe.scanned = g.Size * g.Size
	return ComputeNextFull(g)
}

//Toggled is a no-op, the full scan keeps no bookkeeping
func (fe *FullEngine) Toggled(*Grid, Position, bool) {}

func (fe *FullEngine) Reset() {
	fe.scanned = 0
}

func (fe *FullEngine) Details() map[string]interface{} {
	return map[string]interface{}{
		"engine":        fe.Name(),
		"Cells scanned": fe.scanned,
	}
}
