package universe

import "fmt"

//offsets of the Moore neighbourhood, row-major, self excluded
var mooreOffsets = [8]Position{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

//Neighbours returns the valid neighbour positions of p on a size x size board
//offsets falling outside the board are skipped, there is no wraparound
func Neighbours(size int, p Position) ([]Position, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if p.Row < 0 || p.Col < 0 || p.Row >= size || p.Col >= size {
		return nil, fmt.Errorf("%w: %v on %dx%d grid", ErrInvalidPosition, p, size, size)
	}
	neighbours := make([]Position, 0, len(mooreOffsets))
	for _, o := range mooreOffsets {
		nr := p.Row + o.Row
		nc := p.Col + o.Col
		//skip coordinates outside the area
		if nr < 0 || nc < 0 || nr >= size || nc >= size {
			continue
		}
		neighbours = append(neighbours, Position{nr, nc})
	}
	return neighbours, nil
}
