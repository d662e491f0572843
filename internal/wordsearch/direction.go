package wordsearch

// Direction represents a word placement direction
type Direction int

const (
	Horizontal    Direction = iota // left to right
	Vertical                       // top to bottom
	DiagonalRight                  // down and right
	DiagonalLeft                   // down and left
)

// Delta returns the per-letter step for the direction
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Horizontal:
		return 1, 0
	case Vertical:
		return 0, 1
	case DiagonalRight:
		return 1, 1
	case DiagonalLeft:
		return -1, 1
	}
	return 0, 0
}

func (d Direction) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalRight:
		return "diagonal-right"
	case DiagonalLeft:
		return "diagonal-left"
	}
	return "unknown"
}

// AllDirections returns all four placement directions
func AllDirections() []Direction {
	return []Direction{Horizontal, Vertical, DiagonalRight, DiagonalLeft}
}
