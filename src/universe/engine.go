package universe

import (
	"fmt"
	"sort"
)

//Engine computes which cells change in the next generation
//implementations may keep their own bookkeeping, fed by Toggled
type Engine interface {
	//Name returns the engine identifier
	Name() string
	//Changes stages the next state of the evaluated cells and returns the positions whose state will change
	Changes(g *Grid) []Position
	//Toggled is called after every cell flip, both from user toggles and from generation application
	Toggled(g *Grid, p Position, alive bool)
	//Reset drops the engine bookkeeping
	Reset()
	//Details returns engine specific details for display
	Details() map[string]interface{}
}

var engines = map[string]func() Engine{
	"full":   func() Engine { return NewFullEngine() },
	"sparse": func() Engine { return NewSparseEngine() },
}

//Engines returns the registered engine names, sorted
func Engines() []string {
	names := make([]string, 0, len(engines))
	for k := range engines {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

//NewEngine creates the engine registered under name
func NewEngine(name string) (Engine, error) {
	f, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return f(), nil
}

//evaluate stages the next state of the cell at p and reports whether it changes
//and how many live neighbours it has
func evaluate(g *Grid, p Position) (changes bool, liveNeighbours int) {
	c := &g.Cells[p.Row][p.Col]
	liveNeighbours = g.liveNeighbours(p)
	c.next = NextState(c.Alive, liveNeighbours)
	return c.next != c.Alive, liveNeighbours
}
