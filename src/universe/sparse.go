package universe

import "sort"

/*
	Sparse watch engine
	Only the cells in the watch set are evaluated. The set holds every live cell and every
	neighbour of a live cell, so a cell outside of it is dead with no live neighbours and cannot change.
	Cells left with no live neighbours are dropped after each scan which keeps the set close
	to the frontier of activity instead of the whole board.
*/

//WatchSet is the set of cells eligible to change in the next generation
type WatchSet map[Position]struct{}

func (w WatchSet) Add(p Position) {
	w[p] = struct{}{}
}

func (w WatchSet) Remove(p Position) {
	delete(w, p)
}

func (w WatchSet) Has(p Position) bool {
	_, ok := w[p]
	return ok
}

func (w WatchSet) Len() int {
	return len(w)
}

//Positions returns the watched positions in row-major order
func (w WatchSet) Positions() []Position {
	ps := make([]Position, 0, len(w))
	for p := range w {
		ps = append(ps, p)
	}
	sort.Slice(ps, func(i, j int) bool { return ps[i].less(ps[j]) })
	return ps
}

//ComputeNextSparse evaluates the watched cells and returns the changing positions in row-major order
//watched cells without live neighbours are removed from watch once the scan is done,
//positions outside the grid are never evaluated and are removed as well
func ComputeNextSparse(g *Grid, watch WatchSet) ([]Position, WatchSet) {
	var changes []Position
	var isolated []Position
	for _, p := range watch.Positions() {
		if !g.Contains(p) {
			isolated = append(isolated, p)
			continue
		}
		changed, n := evaluate(g, p)
		if changed {
			changes = append(changes, p)
		}
		if n == 0 {
			isolated = append(isolated, p)
		}
	}
	for _, p := range isolated {
		watch.Remove(p)
	}
	return changes, watch
}

type SparseEngine struct {
	watch   WatchSet
	scanned int
}

func NewSparseEngine() *SparseEngine {
	return &SparseEngine{watch: WatchSet{}}
}

func (se *SparseEngine) Name() string {
	return "sparse"
}

func (se *SparseEngine) Changes(g *Grid) (changes []Position) {
	se.scanned = se.watch.Len()
	changes, se.watch = ComputeNextSparse(g, se.watch)
	return
}

//Toggled adds a cell turning alive and all of its neighbours to the watch set
func (se *SparseEngine) Toggled(g *Grid, p Position, alive bool) {
	if !alive {
		return
	}
	se.watch.Add(p)
	for _, n := range g.Cells[p.Row][p.Col].Neighbors {
		se.watch.Add(n)
	}
}

func (se *SparseEngine) Reset() {
	se.watch = WatchSet{}
	se.scanned = 0
}

//Watch exposes the current watch set
func (se *SparseEngine) Watch() WatchSet {
	return se.watch
}

func (se *SparseEngine) Details() map[string]interface{} {
	return map[string]interface{}{
		"engine":        se.Name(),
		"Cells scanned": se.scanned,
		"Watched cells": se.watch.Len(),
	}
}
