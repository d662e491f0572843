package wordsearch

import (
	"errors"
	"math/rand"
	"strings"
	"time"
	"unicode"
)

var ErrInvalidSize = errors.New("wordsearch: invalid grid size")

// maxPlacementAttempts bounds the random placements tried per word.
// A word that conflicts with prior placements on every attempt is
// dropped from the output rather than failing the whole grid.
const maxPlacementAttempts = 50

// Point is a grid coordinate
type Point struct {
	X, Y int
}

// PlacedWord records where a word landed in the grid. Path holds the
// coordinates of each letter in word order.
type PlacedWord struct {
	Word      string
	Path      []Point
	Direction Direction
}

// Grid is a generated word-search puzzle. Letters is indexed
// Letters[y][x] and every cell holds an uppercase letter: either part
// of a placed word or random filler.
type Grid struct {
	Size    int
	Letters [][]byte
	Placed  []PlacedWord
}

// Generator generates word-search grids of a fixed size from an
// injected random source.
type Generator struct {
	Size int
	rng  *rand.Rand
}

// NewGenerator creates a word-search generator. A nil rng falls back
// to a time-seeded source.
func NewGenerator(size int, rng *rand.Rand) (*Generator, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{
		Size: size,
		rng:  rng,
	}, nil
}

// Generate creates a word-search grid in one call.
func Generate(words []string, size int, rng *rand.Rand) (*Grid, error) {
	g, err := NewGenerator(size, rng)
	if err != nil {
		return nil, err
	}
	return g.Generate(words), nil
}

// Generate fills a fresh grid with random filler letters and then places
// the given words in input order. Placement is best-effort: a word that
// is longer than the grid or that cannot be placed within the attempt
// budget is silently left out. Callers detect omissions by comparing
// their input against Placed.
func (g *Generator) Generate(words []string) *Grid {
	letters := g.fillLetters()

	// Occupancy is tracked apart from the letters so filler never
	// blocks a placement.
	occupied := make(map[Point]byte)

	placed := make([]PlacedWord, 0, len(words))
	for _, raw := range words {
		word := normalize(raw)
		if word == "" || len(word) > g.Size {
			continue
		}
		if pw, ok := g.tryPlace(letters, occupied, word); ok {
			placed = append(placed, pw)
		}
	}

	return &Grid{
		Size:    g.Size,
		Letters: letters,
		Placed:  placed,
	}
}

// fillLetters allocates a grid of independently random uppercase letters
func (g *Generator) fillLetters() [][]byte {
	letters := make([][]byte, g.Size)
	for y := 0; y < g.Size; y++ {
		letters[y] = make([]byte, g.Size)
		for x := 0; x < g.Size; x++ {
			letters[y][x] = byte('A' + g.rng.Intn(26))
		}
	}
	return letters
}

// tryPlace attempts random positions for the word until one fits or the
// attempt budget is spent.
func (g *Generator) tryPlace(letters [][]byte, occupied map[Point]byte, word string) (PlacedWord, bool) {
	dirs := AllDirections()

	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		dir := dirs[g.rng.Intn(len(dirs))]
		path := g.randomPath(word, dir)

		if !g.pathFits(occupied, word, path) {
			continue
		}

		for i, p := range path {
			letters[p.Y][p.X] = word[i]
			occupied[p] = word[i]
		}
		return PlacedWord{Word: word, Path: path, Direction: dir}, true
	}

	return PlacedWord{}, false
}

// randomPath picks a random anchor such that the word fits fully within
// bounds for the direction, and returns the cells it would cover.
func (g *Generator) randomPath(word string, dir Direction) []Point {
	dx, dy := dir.Delta()
	span := len(word) - 1

	// Anchor ranges shrink along each axis the word extends across.
	var x, y int
	switch dir {
	case Horizontal:
		x = g.rng.Intn(g.Size - span)
		y = g.rng.Intn(g.Size)
	case Vertical:
		x = g.rng.Intn(g.Size)
		y = g.rng.Intn(g.Size - span)
	case DiagonalRight:
		x = g.rng.Intn(g.Size - span)
		y = g.rng.Intn(g.Size - span)
	case DiagonalLeft:
		x = span + g.rng.Intn(g.Size-span)
		y = g.rng.Intn(g.Size - span)
	}

	path := make([]Point, len(word))
	for i := range word {
		path[i] = Point{X: x + i*dx, Y: y + i*dy}
	}
	return path
}

// pathFits reports whether the word can occupy the path: every covered
// cell must be unoccupied or already hold the same letter.
func (g *Generator) pathFits(occupied map[Point]byte, word string, path []Point) bool {
	for i, p := range path {
		if existing, ok := occupied[p]; ok && existing != word[i] {
			return false
		}
	}
	return true
}

// normalize uppercases a word and strips all whitespace
func normalize(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, word)
}
