package universe

//NextState applies the B3/S23 rule to a cell with the given live neighbour count
func NextState(alive bool, liveNeighbours int) bool {
	if liveNeighbours == 3 {
		return true
	} else if liveNeighbours == 2 && alive {
		return true
	}
	return false
}
