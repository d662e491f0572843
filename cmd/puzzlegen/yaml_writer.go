package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sundaypages/puzzlegen/internal/crossword"
	"github.com/sundaypages/puzzlegen/internal/maze"
	"github.com/sundaypages/puzzlegen/internal/wordsearch"
	"gopkg.in/yaml.v3"
)

// puzzleFileYAML is the exported document. Field order is output order.
type puzzleFileYAML struct {
	Seed       int64           `yaml:"seed"`
	Theme      string          `yaml:"theme,omitempty"`
	Words      []string        `yaml:"words,omitempty"`
	Maze       *mazeYAML       `yaml:"maze,omitempty"`
	WordSearch *wordSearchYAML `yaml:"wordsearch,omitempty"`
	Crossword  *crosswordYAML  `yaml:"crossword,omitempty"`
}

// mazeYAML represents the maze in YAML. Cells is an ordered mapping
// from cell ID to the directions open from that cell.
type mazeYAML struct {
	Cols     int       `yaml:"cols"`
	Rows     int       `yaml:"rows"`
	Entrance string    `yaml:"entrance"`
	Exit     string    `yaml:"exit"`
	Cells    yaml.Node `yaml:"cells"`
}

// wordSearchYAML represents the word search in YAML
type wordSearchYAML struct {
	Size  int              `yaml:"size"`
	Grid  []string         `yaml:"grid"`
	Words []placedWordYAML `yaml:"words"`
}

// placedWordYAML records a placed word by its starting cell
type placedWordYAML struct {
	Word      string `yaml:"word"`
	Row       int    `yaml:"row"`
	Col       int    `yaml:"col"`
	Direction string `yaml:"direction"`
}

// crosswordYAML represents the crossword in YAML
type crosswordYAML struct {
	Size    int             `yaml:"size"`
	Grid    []string        `yaml:"grid"`
	Entries []entryYAML     `yaml:"entries"`
	Across  []clueEntryYAML `yaml:"across"`
	Down    []clueEntryYAML `yaml:"down"`
}

// entryYAML records a placed crossword word
type entryYAML struct {
	Word        string `yaml:"word"`
	Row         int    `yaml:"row"`
	Col         int    `yaml:"col"`
	Orientation string `yaml:"orientation"`
	Number      int    `yaml:"number"`
}

// clueEntryYAML is one line of a clue list
type clueEntryYAML struct {
	Number int    `yaml:"number"`
	Word   string `yaml:"word"`
	Clue   string `yaml:"clue"`
}

// writeYAML writes the generated puzzles to a YAML file with nice
// formatting.
func writeYAML(path string, result *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	// Write header comment
	fmt.Fprintf(f, "# Generated by puzzlegen\n")
	fmt.Fprintf(f, "# Seed: %d\n", result.Seed)
	fmt.Fprintf(f, "# Created: %s\n\n", time.Now().UTC().Format(time.RFC3339))

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)

	file := &puzzleFileYAML{
		Seed:  result.Seed,
		Theme: result.Theme,
		Words: result.Words,
	}
	if result.Maze != nil {
		file.Maze = mazeToYAML(result.Maze)
	}
	if result.WordSearch != nil {
		file.WordSearch = wordSearchToYAML(result.WordSearch)
	}
	if result.Crossword != nil {
		file.Crossword = crosswordToYAML(result.Crossword)
	}

	if err := encoder.Encode(file); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// mazeToYAML converts the maze to its YAML form. Cells are emitted in
// grid order, row by row, so output is deterministic for a given maze.
func mazeToYAML(m *maze.Maze) *mazeYAML {
	cells := yaml.Node{
		Kind: yaml.MappingNode,
	}

	for y := 0; y < m.Rows; y++ {
		for x := 0; x < m.Cols; x++ {
			cell := m.Grid[y][x]

			open := yaml.Node{Kind: yaml.SequenceNode}
			for _, dir := range maze.AllDirections() {
				if !cell.Walls[dir] {
					open.Content = append(open.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: dir.String()})
				}
			}

			cells.Content = append(cells.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: cellID(x, y)},
				&open,
			)
		}
	}

	return &mazeYAML{
		Cols:     m.Cols,
		Rows:     m.Rows,
		Entrance: cellID(0, 0),
		Exit:     cellID(m.Cols-1, m.Rows-1),
		Cells:    cells,
	}
}

// cellID generates a cell ID from coordinates
func cellID(x, y int) string {
	return fmt.Sprintf("cell_%d_%d", x, y)
}

// wordSearchToYAML converts the word search to its YAML form. Each
// placed word is recorded by its starting cell and direction.
func wordSearchToYAML(g *wordsearch.Grid) *wordSearchYAML {
	grid := make([]string, g.Size)
	for y := 0; y < g.Size; y++ {
		grid[y] = string(g.Letters[y])
	}

	words := make([]placedWordYAML, 0, len(g.Placed))
	for _, placed := range g.Placed {
		start := placed.Path[0]
		words = append(words, placedWordYAML{
			Word:      placed.Word,
			Row:       start.Y,
			Col:       start.X,
			Direction: placed.Direction.String(),
		})
	}

	return &wordSearchYAML{
		Size:  g.Size,
		Grid:  grid,
		Words: words,
	}
}

// crosswordToYAML converts the crossword to its YAML form. Grid rows
// use '.' for black cells.
func crosswordToYAML(p *crossword.Puzzle) *crosswordYAML {
	grid := make([]string, 0, len(p.Grid))
	for _, row := range p.Grid {
		line := make([]byte, len(row))
		for x, cell := range row {
			if cell.Letter == 0 {
				line[x] = '.'
			} else {
				line[x] = cell.Letter
			}
		}
		grid = append(grid, string(line))
	}

	entries := make([]entryYAML, 0, len(p.Entries))
	for _, entry := range p.Entries {
		entries = append(entries, entryYAML{
			Word:        entry.Word,
			Row:         entry.Row,
			Col:         entry.Col,
			Orientation: entry.Orientation.String(),
			Number:      entry.Number,
		})
	}

	return &crosswordYAML{
		Size:    p.Size,
		Grid:    grid,
		Entries: entries,
		Across:  clueEntriesToYAML(p.Across),
		Down:    clueEntriesToYAML(p.Down),
	}
}

// clueEntriesToYAML converts a clue list for export
func clueEntriesToYAML(entries []crossword.ClueEntry) []clueEntryYAML {
	out := make([]clueEntryYAML, 0, len(entries))
	for _, entry := range entries {
		out = append(out, clueEntryYAML{
			Number: entry.Number,
			Word:   entry.Word,
			Clue:   entry.Clue,
		})
	}
	return out
}
