// Package crossword builds sparse crossword grids with numbered clues.
// The first word is seeded horizontally at the center and each later
// word is woven in by greedy first-fit intersection against the words
// already placed. Placement is deterministic: the same input always
// yields the same puzzle.
package crossword

import (
	"strings"
	"unicode"

	"github.com/sundaypages/puzzlegen/internal/clues"
)

const (
	// DefaultSize is the standard printable sheet, 15x15.
	DefaultSize = 15

	// DefaultMaxWords caps how many words one puzzle tries to weave
	// together. Dense grids beyond this rarely fit by first-fit
	// intersection alone.
	DefaultMaxWords = 8
)

// Orientation of a placed entry
type Orientation int

const (
	Across Orientation = iota
	Down
)

func (o Orientation) String() string {
	switch o {
	case Across:
		return "across"
	case Down:
		return "down"
	}
	return "unknown"
}

// delta returns the per-letter step for the orientation
func (o Orientation) delta() (dr, dc int) {
	if o == Across {
		return 0, 1
	}
	return 1, 0
}

// Cell is one square of the grid. Letter 0 marks a black (unused)
// square. Number is the clue number anchored at the cell, 0 when
// unnumbered.
type Cell struct {
	Letter byte
	Number int
}

// ClueEntry is one line of the across or down clue list.
type ClueEntry struct {
	Number int
	Word   string
	Clue   string
}

// PlacedEntry records where a word landed.
type PlacedEntry struct {
	Word        string
	Row, Col    int
	Orientation Orientation
	Number      int
}

// Puzzle is a generated crossword. Grid is indexed Grid[row][col] and
// is empty (zero rows) when no word could be placed. Entries preserves
// placement order.
type Puzzle struct {
	Size    int
	Grid    [][]Cell
	Across  []ClueEntry
	Down    []ClueEntry
	Entries []PlacedEntry
}

// Generator builds crosswords of a fixed size. Words beyond MaxWords
// and words that cannot intersect anything already placed are dropped;
// callers detect omissions by comparing their input against Entries.
type Generator struct {
	Size     int
	MaxWords int
	Clues    clues.Provider
}

// NewGenerator creates a crossword generator with the standard grid
// size and word cap. A nil provider falls back to the builtin clue
// dictionary with generated clues for unknown words.
func NewGenerator(provider clues.Provider) *Generator {
	if provider == nil {
		provider = clues.Default()
	}
	return &Generator{
		Size:     DefaultSize,
		MaxWords: DefaultMaxWords,
		Clues:    provider,
	}
}

// Generate creates a crossword with the default generator.
func Generate(words []string) *Puzzle {
	return NewGenerator(nil).Generate(words)
}

// Generate places the words and assigns clue numbers. An empty word
// list (or one with no usable word) yields the empty puzzle shape:
// zero-row grid and empty clue lists.
func (g *Generator) Generate(words []string) *Puzzle {
	puzzle := &Puzzle{
		Size:    g.Size,
		Grid:    [][]Cell{},
		Across:  []ClueEntry{},
		Down:    []ClueEntry{},
		Entries: []PlacedEntry{},
	}

	usable := g.usableWords(words)
	if len(usable) == 0 {
		return puzzle
	}

	letters := make([][]byte, g.Size)
	for r := range letters {
		letters[r] = make([]byte, g.Size)
	}

	// Seed the first word horizontally, centered.
	seed := usable[0]
	entries := []PlacedEntry{{
		Word:        seed,
		Row:         g.Size / 2,
		Col:         (g.Size - len(seed)) / 2,
		Orientation: Across,
	}}
	writeWord(letters, entries[0])

	for _, word := range usable[1:] {
		entry, ok := g.findPlacement(letters, entries, word)
		if !ok {
			continue
		}
		writeWord(letters, entry)
		entries = append(entries, entry)
	}

	g.buildGrid(puzzle, letters)
	g.assignClues(puzzle, entries)
	return puzzle
}

// usableWords normalizes the input, drops words that cannot fit the
// grid, and applies the word cap.
func (g *Generator) usableWords(words []string) []string {
	usable := make([]string, 0, g.MaxWords)
	for _, raw := range words {
		word := normalize(raw)
		if word == "" || len(word) > g.Size {
			continue
		}
		usable = append(usable, word)
		if len(usable) == g.MaxWords {
			break
		}
	}
	return usable
}

// findPlacement scans for the first valid intersection: candidate
// letters first to last, then placed entries in placement order, then
// the placed word's letters. The first fit wins; no alternative
// placements are weighed against it.
func (g *Generator) findPlacement(letters [][]byte, entries []PlacedEntry, word string) (PlacedEntry, bool) {
	for i := 0; i < len(word); i++ {
		for _, placed := range entries {
			for j := 0; j < len(placed.Word); j++ {
				if placed.Word[j] != word[i] {
					continue
				}

				candidate, ok := g.anchorAt(word, i, placed, j)
				if !ok {
					continue
				}
				if g.clearanceOK(letters, candidate, i) {
					return candidate, true
				}
			}
		}
	}
	return PlacedEntry{}, false
}

// anchorAt computes the candidate placement perpendicular to a placed
// word such that candidate letter i and placed letter j share a cell.
// Returns ok = false when the word would run out of bounds.
func (g *Generator) anchorAt(word string, i int, placed PlacedEntry, j int) (PlacedEntry, bool) {
	var entry PlacedEntry
	entry.Word = word

	if placed.Orientation == Across {
		entry.Orientation = Down
		entry.Row = placed.Row - i
		entry.Col = placed.Col + j
		if entry.Row < 0 || entry.Row+len(word) > g.Size {
			return entry, false
		}
	} else {
		entry.Orientation = Across
		entry.Row = placed.Row + j
		entry.Col = placed.Col - i
		if entry.Col < 0 || entry.Col+len(word) > g.Size {
			return entry, false
		}
	}
	return entry, true
}

// clearanceOK runs the adjacency-clearance check for a candidate
// placement whose letter at index share sits on the matched cell:
//   - the cells just before and after the word's span must be empty
//   - the shared cell must already hold the candidate's letter there
//   - every other covered cell must be empty, with both of its
//     perpendicular neighbors empty, so placing the word cannot merge
//     into a neighboring entry and form an unintended run
func (g *Generator) clearanceOK(letters [][]byte, e PlacedEntry, share int) bool {
	dr, dc := e.Orientation.delta()

	if br, bc := e.Row-dr, e.Col-dc; g.inBounds(br, bc) && letters[br][bc] != 0 {
		return false
	}
	if ar, ac := e.Row+dr*len(e.Word), e.Col+dc*len(e.Word); g.inBounds(ar, ac) && letters[ar][ac] != 0 {
		return false
	}

	for k := 0; k < len(e.Word); k++ {
		r := e.Row + dr*k
		c := e.Col + dc*k

		if k == share {
			if letters[r][c] != e.Word[k] {
				return false
			}
			continue
		}
		if letters[r][c] != 0 {
			return false
		}
		if pr, pc := r+dc, c+dr; g.inBounds(pr, pc) && letters[pr][pc] != 0 {
			return false
		}
		if pr, pc := r-dc, c-dr; g.inBounds(pr, pc) && letters[pr][pc] != 0 {
			return false
		}
	}
	return true
}

func (g *Generator) inBounds(r, c int) bool {
	return r >= 0 && r < g.Size && c >= 0 && c < g.Size
}

// writeWord copies the entry's letters into the working grid
func writeWord(letters [][]byte, e PlacedEntry) {
	dr, dc := e.Orientation.delta()
	for k := 0; k < len(e.Word); k++ {
		letters[e.Row+dr*k][e.Col+dc*k] = e.Word[k]
	}
}

// buildGrid converts the working letters into the puzzle's cell grid
func (g *Generator) buildGrid(puzzle *Puzzle, letters [][]byte) {
	puzzle.Grid = make([][]Cell, g.Size)
	for r := 0; r < g.Size; r++ {
		puzzle.Grid[r] = make([]Cell, g.Size)
		for c := 0; c < g.Size; c++ {
			puzzle.Grid[r][c].Letter = letters[r][c]
		}
	}
}

// assignClues numbers the entries in placement order with a single
// counter shared by across and down. An entry anchored at a cell that
// an earlier entry already numbered reuses that number.
func (g *Generator) assignClues(puzzle *Puzzle, entries []PlacedEntry) {
	counter := 1
	for _, e := range entries {
		anchor := &puzzle.Grid[e.Row][e.Col]
		if anchor.Number == 0 {
			anchor.Number = counter
			counter++
		}
		e.Number = anchor.Number

		clue, _ := g.Clues.Clue(e.Word)
		item := ClueEntry{Number: e.Number, Word: e.Word, Clue: clue}
		if e.Orientation == Across {
			puzzle.Across = append(puzzle.Across, item)
		} else {
			puzzle.Down = append(puzzle.Down, item)
		}

		puzzle.Entries = append(puzzle.Entries, e)
	}
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
