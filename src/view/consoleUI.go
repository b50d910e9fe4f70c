package view

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"lifewatch/src/universe"
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

//ConsoleUI is the interactive terminal display
//it is registered as a viewer of the simulation owned by the loop, so Refresh runs on the loop goroutine
type ConsoleUI struct {
	l          *universe.Loop
	sim        *universe.Simulation
	g          *gocui.Gui
	k          []keyBindings
	seed       int64
	density    float64
	interval   time.Duration
	liveFiller string
	deadFiller string

	mu      sync.Mutex
	snap    universe.Snapshot
	st      universe.Status
	message string //last rejected command
}

var (
	runStateDescr = map[universe.RunState]string{
		universe.RunStateReady:      aurora.Colorize("Ready", aurora.BlueFg).String(),
		universe.RunStateRunning:    aurora.Colorize("Running", aurora.CyanFg).String(),
		universe.RunStatePaused:     aurora.Colorize("Paused", aurora.BlueFg).String(),
		universe.RunStateCleared:    aurora.Colorize("Cleared", aurora.BlueFg).String(),
		universe.RunStateStasis:     aurora.Colorize("Stasis", aurora.RedFg).String(),
		universe.RunStateExtinction: aurora.Colorize("Extinction", aurora.RedFg).String(),
	}
)

//NewViewTerminal creates the terminal UI for the simulation
//sim must be the one owned by l, its board is read only from Refresh
func NewViewTerminal(l *universe.Loop, sim *universe.Simulation, interval time.Duration, seed int64, density float64) *ConsoleUI {

	var err error
	t := ConsoleUI{
		l:          l,
		sim:        sim,
		seed:       seed,
		density:    density,
		interval:   interval,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln(err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC,
			"^C",
			"Exit",
			t.cmdQuit,
			""},
		{'n',
			"N",
			"Next generation",
			t.cmdNextRound,
			""},
		{'r',
			"R",
			"Run",
			t.cmdRun,
			""},
		{'s',
			"S",
			"Stop",
			t.cmdStop,
			""},
		{'c',
			"C",
			"Reset",
			t.cmdClear,
			""},
		{'w',
			"W",
			"Settle with random",
			t.cmdSettleWithRandom,
			""},
		{gocui.MouseLeft,
			"MOUSE",
			"Toggle the cell",
			t.cmdMouseClick,
			"board"},
	}
	t.g.SetManagerFunc(t.layout)

	t.initKeyBindings(t.k)

	return &t
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) {
	for _, kb := range k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(gui *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			log.Panicln(err)
		}
	}
}

//Start runs the terminal main loop until the user quits
func (t *ConsoleUI) Start() {
	go t.watchErrors()
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

//Refresh stores the new board and status and redraws
func (t *ConsoleUI) Refresh(st universe.Status) {
	snap := t.sim.Snapshot()
	t.mu.Lock()
	t.snap = snap
	t.st = st
	t.message = ""
	t.mu.Unlock()
	t.redraw()
}

func (t *ConsoleUI) redraw() {
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField()
		t.renderStatus()
		return nil
	})
}

//watchErrors shows the commands rejected by the simulation
func (t *ConsoleUI) watchErrors() {
	for {
		select {
		case err := <-t.l.Errors():
			t.mu.Lock()
			t.message = err.Error()
			t.mu.Unlock()
			t.redraw()
		case <-t.l.Done():
			return
		}
	}
}

func (t *ConsoleUI) renderField() {
	v, e := t.g.View("board")
	if e != nil {
		return
	}
	t.mu.Lock()
	a := t.snap
	t.mu.Unlock()
	//the entire field is redrawing at once
	v.Clear()

	crop := false
	maxW, maxH := v.Size()
	if a.Size > maxW || a.Size > maxH {
		crop = true
	}

	var b bytes.Buffer

	for r := 0; r < a.Size; r++ {
		//discard the data outside the view area
		if r >= maxH {
			break
		}
		//line feed char
		if r != 0 {
			b.WriteByte(10)
		}
		if crop && r == (maxH-1) {
			b.WriteString(aurora.Red("The board is larger than the viewing area").BgBlack().String())
			break
		}
		for c := 0; c < a.Size; c++ {
			if c >= maxW {
				break
			}
			if a.Alive(universe.Position{Row: r, Col: c}) {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus() {
	v, e := t.g.View("status")
	if e != nil {
		return
	}
	t.mu.Lock()
	s := t.st
	msg := t.message
	t.mu.Unlock()
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Generations", "%v", s.Generations))
	_, _ = fmt.Fprintln(v, t.renderProp("Population", "%v", s.Alive))
	_, _ = fmt.Fprintln(v, t.renderProp("Status", "%v", runStateDescr[s.RunState]))
	_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", s.Engine))
	_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
	for _, k := range []string{"Cells scanned", "Watched cells"} {
		if d, ok := s.Details[k]; ok {
			_, _ = fmt.Fprintln(v, t.renderProp(k, "%v", d))
		}
	}
	if msg != "" {
		_, _ = fmt.Fprintln(v, aurora.Red(msg).String())
	}
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View) {
	v.Clear()
	_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", t.sim.Size(), t.sim.Size()))
	_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", t.interval))
	_, _ = fmt.Fprintln(v, t.renderProp("Seed", "%v", t.seed))
	_, _ = fmt.Fprintln(v, t.renderProp("Density", "%v", t.density))
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 20

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("board")
		return nil

	} else {
		if _, err := t.headerLayout(g, 3, "Game of Life"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(v)
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		t.renderStatus()
	}

	if v, err := g.SetView("board", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Board"
		v.Frame = true
	}
	t.renderField()

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		b := bytes.Buffer{}
		b.WriteString("KEYBINDINGS: ")
		for i, k := range t.k {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(v, b.String())
	}

	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		if maxX < len(text) {
			panic(fmt.Sprintf("Terminal width is too small: %v", maxX))
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", (maxX-len(text))/2)+text)
	}
	return
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdNextRound(_ *gocui.View) error {
	t.l.Step()
	return nil
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	t.l.Run()
	return nil
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.l.Stop()
	return nil
}

func (t *ConsoleUI) cmdClear(_ *gocui.View) error {
	t.l.Clear()
	return nil
}

func (t *ConsoleUI) cmdSettleWithRandom(_ *gocui.View) error {
	t.seed++
	t.l.SettleWithRandomData(t.seed, t.density)
	return nil
}

//cmdMouseClick toggles the cell under the cursor, one character per cell
func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	t.l.Toggle(universe.Position{Row: cy, Col: cx})
	return nil
}
