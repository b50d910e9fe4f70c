package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"
	"lifewatch/src/universe"
)

//ConsoleOut prints the headless run progress
type ConsoleOut struct {
	w         io.Writer
	au        aurora.Aurora
	startTime time.Time
	every     int
}

//NewConsoleOut creates the printer, colors are used only if colors is true
func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors), every: 10}
}

//Refresh prints the progress every 10 generations and the final report when the run cycle ends
func (c *ConsoleOut) Refresh(st universe.Status) {
	switch st.RunState {
	case universe.RunStateStasis, universe.RunStateExtinction, universe.RunStatePaused:
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Generations": st.Generations,
			"Total time":  totalTime,
			"Population":  st.Alive,
			"Status":      st.Message(),
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	case universe.RunStateRunning:
		if st.Generations > 0 && st.Generations%c.every == 0 {
			fmt.Fprintf(c.w, "  Generations done: %v, population: %v\n", st.Generations, st.Alive)
		}
	}
}

//Configuration prints the running configuration
func (c *ConsoleOut) Configuration(size int, interval time.Duration, maxSteps int, details map[string]interface{}) {
	fmt.Fprintln(c.w, c.au.Cyan("Running configuration:"))
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", size, size)
	fmt.Fprintf(c.w, "  Interval: %v\n", interval)
	fmt.Fprintf(c.w, "  Max generations: %v steps\n", maxSteps)
	c.printHashData(details)
}

//Start marks the beginning of the run
func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, "\nSimulation started...")
}

//Compare prints the engines cross-check report
func (c *ConsoleOut) Compare(r universe.Report) {
	fmt.Fprintf(c.w, "Compared %v generations on %v x %v\n", r.Generations, r.Size, r.Size)
	for _, res := range r.Results {
		fmt.Fprintf(c.w, "  %s: population %v, generations %v, status %s, time %v\n",
			res.Engine, res.Final.Alive, res.Final.Generations, res.Final.Message(), res.TotalTime.Round(time.Microsecond))
	}
	if r.Equivalent() {
		fmt.Fprintln(c.w, c.au.Green("Engines are equivalent"))
	} else {
		fmt.Fprintln(c.w, c.au.Red(fmt.Sprintf("Engines diverged at generation %d", r.DivergedAt)))
	}
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
