package universe

import (
	"fmt"
	"math/rand/v2"
)

//Template represent the seeding template which can used to settle the board with predefined data
type Template struct {
	Name  string     //template name
	Descr string     //template descr
	Cells []Position //live cells, relative to the pattern's top left corner
}

//DefaultTemplates are registered on every new Simulation
var DefaultTemplates = []Template{
	{"blinker", "period 2 oscillator", []Position{{0, 0}, {0, 1}, {0, 2}}},
	{"block", "2x2 still life", []Position{{0, 0}, {0, 1}, {1, 0}, {1, 1}}},
	{"glider", "diagonal spaceship", []Position{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
	{"beacon", "period 2 oscillator made of two blocks", []Position{{0, 0}, {0, 1}, {1, 0}, {2, 3}, {3, 2}, {3, 3}}},
	{"sample", "the test sample, settles into a block", []Position{
		{1, 1}, {2, 1},
		{1, 2}, {2, 2},
		{3, 3},
		{2, 4},
		{3, 4},
		{3, 5},
	}},
}

//bounds returns the pattern height and width
func (t Template) bounds() (h int, w int) {
	for _, p := range t.Cells {
		if p.Row+1 > h {
			h = p.Row + 1
		}
		if p.Col+1 > w {
			w = p.Col + 1
		}
	}
	return
}

//Centered returns the template cells moved to the middle of a size x size board
func (t Template) Centered(size int) []Position {
	h, w := t.bounds()
	dr := (size - h) / 2
	dc := (size - w) / 2
	ps := make([]Position, len(t.Cells))
	for i, p := range t.Cells {
		ps[i] = Position{p.Row + dr, p.Col + dc}
	}
	return ps
}

//AddTemplate adds the seeding template to the internal storage
//the board can be populated with this template by call SettleTemplate
func (s *Simulation) AddTemplate(t Template) {
	s.templates[t.Name] = t
}

//Templates returns a copy of the registered templates by name
func (s *Simulation) Templates() map[string]Template {
	templates := make(map[string]Template, len(s.templates))
	for k, t := range s.templates {
		templates[k] = t
	}
	return templates
}

//Settle turns the given cells alive, cells already alive are left as is
//all positions are checked before the board is touched
func (s *Simulation) Settle(cells []Position) error {
	if s.running {
		return fmt.Errorf("%w: settle while running", ErrInvalidStateTransition)
	}
	for _, p := range cells {
		if !s.grid.Contains(p) {
			return fmt.Errorf("%w: %v on %dx%d grid", ErrInvalidPosition, p, s.grid.Size, s.grid.Size)
		}
	}
	for _, p := range cells {
		if !s.grid.Cells[p.Row][p.Col].Alive {
			s.toggle(p)
		}
	}
	s.refreshView()
	return nil
}

//SettleTemplate populates the middle of the board with the named template
func (s *Simulation) SettleTemplate(name string) error {
	t, ok := s.templates[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return s.Settle(t.Centered(s.grid.Size))
}

//SettleWithRandomData turns on every cell with the given probability
//the same seed always produces the same board
func (s *Simulation) SettleWithRandomData(seed int64, density float64) error {
	r := rand.New(rand.NewPCG(uint64(seed), 0))
	var cells []Position
	s.grid.walk(func(p Position, _ *Cell) {
		if r.Float64() < density {
			cells = append(cells, p)
		}
	})
	return s.Settle(cells)
}
