package universe

import (
	"fmt"
	"strings"
)

//Position identifies a cell by its row and column
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

//less orders positions row-major
func (p Position) less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

//Cell is one automaton unit
//next is only meaningful while a generation is being computed
type Cell struct {
	Alive     bool
	next      bool
	Neighbors []Position
}

//Grid is the size x size field where cells are living
type Grid struct {
	Size  int
	Cells [][]Cell
}

//NewGrid allocates the grid and caches the neighbours of every cell
func NewGrid(size int) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	g := Grid{Size: size, Cells: make([][]Cell, size)}
	b := make([]Cell, size*size)
	for r := range g.Cells {
		start := size * r
		g.Cells[r] = b[start : start+size : start+size]
		for c := range g.Cells[r] {
			// position is always in range here
			g.Cells[r][c].Neighbors, _ = Neighbours(size, Position{r, c})
		}
	}
	return &g, nil
}

//Contains reports whether p lies inside the grid
func (g *Grid) Contains(p Position) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < g.Size && p.Col < g.Size
}

//Cell returns the cell at p
func (g *Grid) Cell(p Position) (*Cell, error) {
	if !g.Contains(p) {
		return nil, fmt.Errorf("%w: %v on %dx%d grid", ErrInvalidPosition, p, g.Size, g.Size)
	}
	return &g.Cells[p.Row][p.Col], nil
}

//liveNeighbours counts the live neighbours of p using the current states
//p must be inside the grid
func (g *Grid) liveNeighbours(p Position) int {
	n := 0
	for _, np := range g.Cells[p.Row][p.Col].Neighbors {
		if g.Cells[np.Row][np.Col].Alive {
			n++
		}
	}
	return n
}

//walk calls cb for each cell in row-major order
func (g *Grid) walk(cb func(p Position, c *Cell)) {
	for r := range g.Cells {
		for c := range g.Cells[r] {
			cb(Position{r, c}, &g.Cells[r][c])
		}
	}
}

//Snapshot copies the current cell states
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{Size: g.Size, cells: make([]bool, g.Size*g.Size)}
	g.walk(func(p Position, c *Cell) {
		s.cells[p.Row*g.Size+p.Col] = c.Alive
	})
	return s
}

//Snapshot is a read-only view of the board used for rendering and comparison
type Snapshot struct {
	Size  int
	cells []bool
}

//Alive reports the state of p, positions outside the board are dead
func (s Snapshot) Alive(p Position) bool {
	if p.Row < 0 || p.Col < 0 || p.Row >= s.Size || p.Col >= s.Size {
		return false
	}
	return s.cells[p.Row*s.Size+p.Col]
}

//Live returns live positions in row-major order
func (s Snapshot) Live() []Position {
	var live []Position
	for i, alive := range s.cells {
		if alive {
			live = append(live, Position{i / s.Size, i % s.Size})
		}
	}
	return live
}

//Count returns the number of live cells
func (s Snapshot) Count() int {
	n := 0
	for _, alive := range s.cells {
		if alive {
			n++
		}
	}
	return n
}

func (s Snapshot) Equal(o Snapshot) bool {
	if s.Size != o.Size {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

//String renders the board with '#' for live and '.' for dead cells
func (s Snapshot) String() string {
	var b strings.Builder
	for r := 0; r < s.Size; r++ {
		if r != 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < s.Size; c++ {
			if s.cells[r*s.Size+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
