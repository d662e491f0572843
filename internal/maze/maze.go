// Package maze generates perfect mazes on a rectangular cell grid using
// randomized depth-first backtracking. A perfect maze is fully connected
// and acyclic: exactly one path exists between any two cells.
package maze

import (
	"errors"
	"math/rand"
	"time"
)

var ErrInvalidSize = errors.New("maze: invalid grid size")

// Cell represents a single cell in the maze grid
type Cell struct {
	X, Y    int
	Visited bool               // set during carving
	Walls   map[Direction]bool // true = wall exists
}

// Maze is a generated maze. Grid is indexed Grid[y][x]. The top wall of
// (0,0) and the bottom wall of (Cols-1, Rows-1) are removed to form the
// entrance and exit. Walls are shared: a cell's wall on a side always
// matches its neighbor's wall on the opposite side.
type Maze struct {
	Cols, Rows int
	Grid       [][]*Cell
}

// Generator generates mazes of a fixed size from an injected random source.
type Generator struct {
	Cols, Rows int
	rng        *rand.Rand
}

// NewGenerator creates a maze generator. A nil rng falls back to a
// time-seeded source, so repeated generations differ; pass a seeded rng
// for reproducible output.
func NewGenerator(cols, rows int, rng *rand.Rand) (*Generator, error) {
	if cols <= 0 || rows <= 0 {
		return nil, ErrInvalidSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		Cols: cols,
		Rows: rows,
		rng:  rng,
	}, nil
}

// Generate creates a maze in one call.
func Generate(cols, rows int, rng *rand.Rand) (*Maze, error) {
	g, err := NewGenerator(cols, rows, rng)
	if err != nil {
		return nil, err
	}
	return g.Generate(), nil
}

type point struct {
	x, y int
}

// Generate runs the DFS backtracker and returns a fresh maze. Each call
// allocates a new grid; prior mazes are never mutated.
func (g *Generator) Generate() *Maze {
	grid := g.newGrid()

	// Iterative DFS with an explicit stack.
	cur := point{0, 0}
	grid[0][0].Visited = true
	stack := []point{cur}

	for len(stack) > 0 {
		dirs := g.unvisitedNeighbors(grid, cur.x, cur.y)
		if len(dirs) > 0 {
			dir := dirs[g.rng.Intn(len(dirs))]
			nx, ny := neighbor(cur.x, cur.y, dir)

			// Remove wall between current cell and neighbor
			grid[cur.y][cur.x].Walls[dir] = false
			grid[ny][nx].Walls[dir.Opposite()] = false

			grid[ny][nx].Visited = true
			stack = append(stack, cur)
			cur = point{nx, ny}
		} else {
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}

	// Entrance at the top-left, exit at the bottom-right
	grid[0][0].Walls[North] = false
	grid[g.Rows-1][g.Cols-1].Walls[South] = false

	return &Maze{
		Cols: g.Cols,
		Rows: g.Rows,
		Grid: grid,
	}
}

// newGrid allocates a grid with all walls present
func (g *Generator) newGrid() [][]*Cell {
	grid := make([][]*Cell, g.Rows)
	for y := 0; y < g.Rows; y++ {
		grid[y] = make([]*Cell, g.Cols)
		for x := 0; x < g.Cols; x++ {
			grid[y][x] = &Cell{
				X:       x,
				Y:       y,
				Visited: false,
				Walls: map[Direction]bool{
					North: true,
					South: true,
					East:  true,
					West:  true,
				},
			}
		}
	}
	return grid
}

// unvisitedNeighbors returns the directions of in-bounds unvisited neighbors
func (g *Generator) unvisitedNeighbors(grid [][]*Cell, x, y int) []Direction {
	var dirs []Direction
	for _, dir := range AllDirections() {
		nx, ny := neighbor(x, y, dir)
		if g.inBounds(nx, ny) && !grid[ny][nx].Visited {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// neighbor returns the coordinates of the neighbor in the given direction
func neighbor(x, y int, dir Direction) (int, int) {
	switch dir {
	case North:
		return x, y - 1
	case South:
		return x, y + 1
	case East:
		return x + 1, y
	case West:
		return x - 1, y
	}
	return x, y
}

// inBounds checks if coordinates are within the grid
func (g *Generator) inBounds(x, y int) bool {
	return x >= 0 && x < g.Cols && y >= 0 && y < g.Rows
}

// PassageCount returns the number of carved internal passages. A perfect
// maze of c*r cells always has exactly c*r-1.
func (m *Maze) PassageCount() int {
	count := 0
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			if x+1 < m.Cols && !m.Grid[y][x].Walls[East] {
				count++
			}
			if y+1 < m.Rows && !m.Grid[y][x].Walls[South] {
				count++
			}
		}
	}
	return count
}
