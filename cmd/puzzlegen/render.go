package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sundaypages/puzzlegen/internal/crossword"
	"github.com/sundaypages/puzzlegen/internal/maze"
	"github.com/sundaypages/puzzlegen/internal/wordsearch"
)

// printPreviews writes ASCII previews of everything generated.
func printPreviews(result *Result) {
	if result.Maze != nil {
		fmt.Printf("\nMaze %dx%d:\n\n", result.Maze.Cols, result.Maze.Rows)
		fmt.Print(renderMaze(result.Maze))
	}
	if result.WordSearch != nil {
		fmt.Printf("\nWord search %dx%d:\n\n", result.WordSearch.Size, result.WordSearch.Size)
		fmt.Print(renderWordSearch(result.WordSearch))
	}
	if result.Crossword != nil {
		fmt.Printf("\nCrossword %dx%d:\n\n", result.Crossword.Size, result.Crossword.Size)
		fmt.Print(renderCrossword(result.Crossword))
	}
}

// renderMaze draws the maze walls. Every cell is three characters wide;
// passages are gaps in the wall rows. Boundary walls are checked like
// interior ones so the entrance and exit breaches show as openings.
func renderMaze(m *maze.Maze) string {
	var sb strings.Builder

	// Top border
	for x := 0; x < m.Cols; x++ {
		if m.Grid[0][x].Walls[maze.North] {
			sb.WriteString("+---")
		} else {
			sb.WriteString("+   ")
		}
	}
	sb.WriteString("+\n")

	for y := 0; y < m.Rows; y++ {
		// Cell row: west walls, then the east border
		for x := 0; x < m.Cols; x++ {
			if m.Grid[y][x].Walls[maze.West] {
				sb.WriteByte('|')
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteString("   ")
		}
		if m.Grid[y][m.Cols-1].Walls[maze.East] {
			sb.WriteByte('|')
		}
		sb.WriteByte('\n')

		// Wall row: south walls
		for x := 0; x < m.Cols; x++ {
			if m.Grid[y][x].Walls[maze.South] {
				sb.WriteString("+---")
			} else {
				sb.WriteString("+   ")
			}
		}
		sb.WriteString("+\n")
	}

	return sb.String()
}

// renderWordSearch draws the letter matrix and the word list to find.
func renderWordSearch(g *wordsearch.Grid) string {
	var sb strings.Builder

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(g.Letters[y][x])
		}
		sb.WriteByte('\n')
	}

	if len(g.Placed) > 0 {
		words := make([]string, 0, len(g.Placed))
		for _, placed := range g.Placed {
			words = append(words, placed.Word)
		}
		sort.Strings(words)

		sb.WriteString("\nFind these words:\n")
		for _, word := range words {
			sb.WriteString("  " + word + "\n")
		}
	}

	return sb.String()
}

// renderCrossword draws the solution grid with '.' for black cells,
// followed by the numbered clue lists.
func renderCrossword(p *crossword.Puzzle) string {
	if len(p.Grid) == 0 {
		return "(no words placed)\n"
	}

	var sb strings.Builder

	for _, row := range p.Grid {
		for x, cell := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			if cell.Letter == 0 {
				sb.WriteByte('.')
			} else {
				sb.WriteByte(cell.Letter)
			}
		}
		sb.WriteByte('\n')
	}

	if len(p.Across) > 0 {
		sb.WriteString("\nAcross:\n")
		for _, entry := range p.Across {
			sb.WriteString(fmt.Sprintf("  %2d. %s\n", entry.Number, entry.Clue))
		}
	}
	if len(p.Down) > 0 {
		sb.WriteString("\nDown:\n")
		for _, entry := range p.Down {
			sb.WriteString(fmt.Sprintf("  %2d. %s\n", entry.Number, entry.Clue))
		}
	}

	return sb.String()
}
