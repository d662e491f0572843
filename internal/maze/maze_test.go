package maze

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator(10, 8, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}

	if g.Cols != 10 {
		t.Errorf("Cols = %d, want 10", g.Cols)
	}
	if g.Rows != 8 {
		t.Errorf("Rows = %d, want 8", g.Rows)
	}
	if g.rng == nil {
		t.Fatal("rng should not be nil")
	}
}

func TestNewGeneratorNilRand(t *testing.T) {
	g, err := NewGenerator(5, 5, nil)
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}
	if g.rng == nil {
		t.Error("nil rng should fall back to a time-seeded source")
	}
}

func TestNewGeneratorInvalidSize(t *testing.T) {
	tests := []struct {
		cols, rows int
	}{
		{0, 5},
		{5, 0},
		{0, 0},
		{-1, 5},
		{5, -3},
	}

	for _, tc := range tests {
		_, err := NewGenerator(tc.cols, tc.rows, nil)
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGenerator(%d, %d) error = %v, want ErrInvalidSize", tc.cols, tc.rows, err)
		}
	}
}

func TestGenerateGridShape(t *testing.T) {
	m, err := Generate(12, 7, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if len(m.Grid) != 7 {
		t.Errorf("Grid height = %d, want 7", len(m.Grid))
	}
	if len(m.Grid[0]) != 12 {
		t.Errorf("Grid width = %d, want 12", len(m.Grid[0]))
	}
	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			cell := m.Grid[y][x]
			if cell.X != x || cell.Y != y {
				t.Fatalf("cell at (%d,%d) has coordinates (%d,%d)", x, y, cell.X, cell.Y)
			}
		}
	}
}

// TestGenerateConnectivity verifies every cell is reachable from (0,0).
func TestGenerateConnectivity(t *testing.T) {
	seeds := []int64{1, 42, 100, 255, 1000, 5000, 9999}

	for _, seed := range seeds {
		m, err := Generate(15, 10, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("Seed %d: Generate() failed: %v", seed, err)
		}

		visited := bfsCells(m)
		if visited != m.Cols*m.Rows {
			t.Errorf("Seed %d: BFS reached %d cells, want %d", seed, visited, m.Cols*m.Rows)
		}
	}
}

// TestGenerateSpanningTree verifies the carved passage count is exactly
// cols*rows-1, which together with connectivity rules out cycles.
func TestGenerateSpanningTree(t *testing.T) {
	tests := []struct {
		cols, rows int
	}{
		{1, 1},
		{2, 2},
		{5, 5},
		{15, 10},
		{30, 20},
	}

	for _, tc := range tests {
		m, err := Generate(tc.cols, tc.rows, rand.New(rand.NewSource(7)))
		if err != nil {
			t.Fatalf("Generate(%d, %d) failed: %v", tc.cols, tc.rows, err)
		}

		want := tc.cols*tc.rows - 1
		if got := m.PassageCount(); got != want {
			t.Errorf("PassageCount() for %dx%d = %d, want %d", tc.cols, tc.rows, got, want)
		}
	}
}

func TestGenerateEntranceAndExit(t *testing.T) {
	sizes := []struct {
		cols, rows int
	}{
		{1, 1},
		{2, 3},
		{10, 10},
		{25, 12},
	}

	for _, tc := range sizes {
		m, err := Generate(tc.cols, tc.rows, rand.New(rand.NewSource(99)))
		if err != nil {
			t.Fatalf("Generate(%d, %d) failed: %v", tc.cols, tc.rows, err)
		}

		if m.Grid[0][0].Walls[North] {
			t.Errorf("%dx%d: entrance wall still present at (0,0) north", tc.cols, tc.rows)
		}
		if m.Grid[tc.rows-1][tc.cols-1].Walls[South] {
			t.Errorf("%dx%d: exit wall still present at (%d,%d) south", tc.cols, tc.rows, tc.cols-1, tc.rows-1)
		}
	}
}

// TestGenerateWallConsistency verifies walls are shared: a cell's wall on a
// side always matches its neighbor's wall on the opposite side.
func TestGenerateWallConsistency(t *testing.T) {
	m, err := Generate(20, 15, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			for _, dir := range AllDirections() {
				nx, ny := neighbor(x, y, dir)
				if nx < 0 || nx >= m.Cols || ny < 0 || ny >= m.Rows {
					continue
				}
				got := m.Grid[y][x].Walls[dir]
				mirror := m.Grid[ny][nx].Walls[dir.Opposite()]
				if got != mirror {
					t.Fatalf("wall mismatch at (%d,%d) %s: %v vs neighbor %v", x, y, dir, got, mirror)
				}
			}
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a, err := Generate(12, 12, rand.New(rand.NewSource(777)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	b, err := Generate(12, 12, rand.New(rand.NewSource(777)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if !sameWalls(a, b) {
		t.Error("same seed should produce identical mazes")
	}
}

// TestGenerateVariability checks that unseeded generations are not all
// identical. Statistical property: five identical 10x10 mazes in a row
// will not happen by chance.
func TestGenerateVariability(t *testing.T) {
	g, err := NewGenerator(10, 10, nil)
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}

	first := g.Generate()
	allSame := true
	for i := 0; i < 4; i++ {
		if !sameWalls(first, g.Generate()) {
			allSame = false
			break
		}
	}

	if allSame {
		t.Error("repeated unseeded generations produced identical mazes")
	}
}

func TestGenerateFreshGridPerCall(t *testing.T) {
	g, err := NewGenerator(6, 6, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}

	a := g.Generate()
	b := g.Generate()

	if a.Grid[0][0] == b.Grid[0][0] {
		t.Error("successive generations should not share cells")
	}
}

func TestGenerateSingleCell(t *testing.T) {
	m, err := Generate(1, 1, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("Generate(1, 1) failed: %v", err)
	}

	cell := m.Grid[0][0]
	if cell.Walls[North] {
		t.Error("1x1 maze should have its entrance breached")
	}
	if cell.Walls[South] {
		t.Error("1x1 maze should have its exit breached")
	}
	if !cell.Walls[East] || !cell.Walls[West] {
		t.Error("1x1 maze should keep its side walls")
	}
	if got := m.PassageCount(); got != 0 {
		t.Errorf("PassageCount() = %d, want 0", got)
	}
}

func TestDirectionOpposite(t *testing.T) {
	tests := []struct {
		dir  Direction
		want Direction
	}{
		{North, South},
		{South, North},
		{East, West},
		{West, East},
	}

	for _, tc := range tests {
		if got := tc.dir.Opposite(); got != tc.want {
			t.Errorf("%s.Opposite() = %s, want %s", tc.dir, got, tc.want)
		}
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		dir  Direction
		want string
	}{
		{North, "north"},
		{South, "south"},
		{East, "east"},
		{West, "west"},
	}

	for _, tc := range tests {
		if got := tc.dir.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

// bfsCells walks the maze from (0,0) through carved passages and returns
// the number of reachable cells.
func bfsCells(m *Maze) int {
	visited := make(map[point]bool)
	queue := []point{{0, 0}}
	visited[point{0, 0}] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range AllDirections() {
			if m.Grid[current.y][current.x].Walls[dir] {
				continue
			}

			nx, ny := neighbor(current.x, current.y, dir)
			if nx < 0 || nx >= m.Cols || ny < 0 || ny >= m.Rows {
				continue
			}

			next := point{nx, ny}
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}

	return len(visited)
}

// sameWalls reports whether two mazes have identical wall layouts.
func sameWalls(a, b *Maze) bool {
	if a.Cols != b.Cols || a.Rows != b.Rows {
		return false
	}
	for y := 0; y < a.Rows; y++ {
		for x := 0; x < a.Cols; x++ {
			for _, dir := range AllDirections() {
				if a.Grid[y][x].Walls[dir] != b.Grid[y][x].Walls[dir] {
					return false
				}
			}
		}
	}
	return true
}
