package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sundaypages/puzzlegen/internal/archive"
	"github.com/sundaypages/puzzlegen/internal/clues"
	"github.com/sundaypages/puzzlegen/internal/config"
	"github.com/sundaypages/puzzlegen/internal/crossword"
	"github.com/sundaypages/puzzlegen/internal/logger"
	"github.com/sundaypages/puzzlegen/internal/maze"
	"github.com/sundaypages/puzzlegen/internal/wordlist"
	"github.com/sundaypages/puzzlegen/internal/wordsearch"
)

// Result collects everything one invocation generated, for previews,
// YAML export, and archive recording.
type Result struct {
	Seed       int64
	Theme      string
	Words      []string
	Maze       *maze.Maze
	WordSearch *wordsearch.Grid
	Crossword  *crossword.Puzzle
}

func main() {
	// Parse command-line flags
	kind := flag.String("type", "all", "Puzzle type to generate (maze, wordsearch, crossword, all)")
	cols := flag.Int("cols", 0, "Maze columns (0 = use config)")
	rows := flag.Int("rows", 0, "Maze rows (0 = use config)")
	size := flag.Int("size", 0, "Word search and crossword grid size (0 = use config)")
	themeFlag := flag.String("theme", "", "Theme name or theme YAML file (default: first available theme)")
	wordsFlag := flag.String("words", "", "Comma-separated word list (overrides theme)")
	seed := flag.Int64("seed", 0, "Generation seed (default: random based on current time)")
	output := flag.String("output", "", "Output YAML file (default: preview only)")
	configFile := flag.String("config", "data/puzzlegen.yaml", "Path to config YAML file")
	preview := flag.Bool("preview", true, "Print puzzle previews to stdout")
	record := flag.Bool("archive", false, "Record the generation run in the archive database")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*configFile)
	logger.Initialize(logConfig)

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		logger.Warning("Failed to load config, using defaults", "path", *configFile, "error", err)
	}

	// Flags override config values
	if *cols != 0 {
		cfg.Maze.Cols = *cols
	}
	if *rows != 0 {
		cfg.Maze.Rows = *rows
	}
	if *size != 0 {
		cfg.WordSearch.Size = *size
		cfg.Crossword.Size = *size
	}

	wantMaze, wantSearch, wantCrossword, err := resolveKinds(*kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if msg := validate(cfg, wantMaze, wantSearch, wantCrossword); msg != "" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
		os.Exit(1)
	}

	// Use provided seed or generate from time
	genSeed := *seed
	if genSeed == 0 {
		genSeed = time.Now().UnixNano()
		logger.Info("Generation seed selected", "seed", genSeed, "random", true)
	} else {
		logger.Info("Generation seed selected", "seed", genSeed, "random", false)
	}
	rng := rand.New(rand.NewSource(genSeed))

	result := &Result{Seed: genSeed}

	if wantSearch || wantCrossword {
		theme, words, err := resolveWords(cfg, *themeFlag, *wordsFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		result.Theme = theme
		result.Words = words
	}

	fmt.Printf("Generating puzzles (seed: %d)\n", genSeed)
	if result.Theme != "" {
		fmt.Printf("Theme: %s (%d words)\n", result.Theme, len(result.Words))
	} else if len(result.Words) > 0 {
		fmt.Printf("Words: %d custom\n", len(result.Words))
	}
	fmt.Println()

	if wantMaze {
		fmt.Print("Generating maze structure... ")
		m, err := maze.Generate(cfg.Maze.Cols, cfg.Maze.Rows, rng)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("OK")
		result.Maze = m
	}

	if wantSearch {
		requested := searchWords(cfg, result.Words)
		fmt.Print("Generating word search... ")
		grid, err := wordsearch.Generate(requested, cfg.WordSearch.Size, rng)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK (%d/%d words placed)\n", len(grid.Placed), len(requested))
		result.WordSearch = grid
	}

	if wantCrossword {
		provider, err := clues.Load(cfg.Paths.ClueFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print("Generating crossword... ")
		gen := crossword.NewGenerator(clues.WithFallback(provider))
		gen.Size = cfg.Crossword.Size
		gen.MaxWords = cfg.Crossword.MaxWords
		puzzle := gen.Generate(result.Words)
		fmt.Printf("OK (%d words placed)\n", len(puzzle.Entries))
		result.Crossword = puzzle
	}

	if *output != "" {
		// Bare filenames land in the configured output directory;
		// explicit paths are used as given.
		outPath := *output
		if filepath.Dir(outPath) == "." {
			outPath = cfg.Paths.OutputFile(outPath)
		}
		if dir := filepath.Dir(outPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to create output directory: %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Printf("Writing %s... ", outPath)
		if err := writeYAML(outPath, result); err != nil {
			fmt.Printf("FAILED: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("OK")
	}

	if *record || cfg.Archive.Enabled {
		fmt.Print("Recording generation run... ")
		n, err := recordRuns(cfg, result)
		if err != nil {
			fmt.Printf("FAILED: %v\n", err)
			logger.Warning("Failed to record generation run", "error", err)
		} else {
			fmt.Printf("OK (%d runs)\n", n)
		}
	}

	if *preview {
		printPreviews(result)
	}

	// Print summary
	fmt.Printf("\nPuzzles generated successfully!\n")
	fmt.Printf("  - Seed: %d\n", genSeed)
	if result.Theme != "" {
		fmt.Printf("  - Theme: %s\n", result.Theme)
	}
	if result.Maze != nil {
		fmt.Printf("  - Maze: %dx%d, %d passages\n", result.Maze.Cols, result.Maze.Rows, result.Maze.PassageCount())
	}
	if result.WordSearch != nil {
		fmt.Printf("  - Word search: %dx%d, %d words placed\n", result.WordSearch.Size, result.WordSearch.Size, len(result.WordSearch.Placed))
	}
	if result.Crossword != nil {
		fmt.Printf("  - Crossword: %dx%d, %d across, %d down\n", result.Crossword.Size, result.Crossword.Size, len(result.Crossword.Across), len(result.Crossword.Down))
	}
}

// resolveKinds parses the -type flag into the set of puzzles to build.
func resolveKinds(kind string) (wantMaze, wantSearch, wantCrossword bool, err error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "all", "":
		return true, true, true, nil
	case "maze":
		return true, false, false, nil
	case "wordsearch":
		return false, true, false, nil
	case "crossword":
		return false, false, true, nil
	default:
		return false, false, false, fmt.Errorf("unknown puzzle type %q (want maze, wordsearch, crossword, or all)", kind)
	}
}

// validate runs the config checks for the requested puzzle types and
// returns the first problem found, or "" when everything is usable.
func validate(cfg *config.Config, wantMaze, wantSearch, wantCrossword bool) string {
	if wantMaze {
		if msg := cfg.Maze.Validate(); msg != "" {
			return msg
		}
	}
	if wantSearch {
		if msg := cfg.WordSearch.Validate(); msg != "" {
			return msg
		}
	}
	if wantCrossword {
		if msg := cfg.Crossword.Validate(); msg != "" {
			return msg
		}
	}
	return ""
}

// resolveWords picks the word list for the letter puzzles. An explicit
// -words list wins and carries no theme name. Otherwise the theme flag
// names either a theme YAML file (by .yaml/.yml suffix) or a theme in
// the configured theme file; empty means the first available theme.
func resolveWords(cfg *config.Config, themeFlag, wordsFlag string) (string, []string, error) {
	if wordsFlag != "" {
		words := wordlist.Sanitize(strings.Split(wordsFlag, ","))
		if len(words) == 0 {
			return "", nil, fmt.Errorf("no valid words in -words (want %d-%d letter words)", wordlist.MinWordLength, wordlist.MaxWordLength)
		}
		return "", words, nil
	}

	if strings.HasSuffix(themeFlag, ".yaml") || strings.HasSuffix(themeFlag, ".yml") {
		themes, err := wordlist.LoadThemes(themeFlag)
		if err != nil {
			return "", nil, err
		}
		return themeWords(themes[0])
	}

	themes, err := wordlist.LoadThemes(cfg.Paths.ThemeFile)
	if err != nil {
		logger.Warning("Failed to load themes, using builtin", "path", cfg.Paths.ThemeFile, "error", err)
		themes = wordlist.Builtin()
	}

	if themeFlag == "" {
		return themeWords(themes[0])
	}

	theme, ok := wordlist.FindTheme(themes, themeFlag)
	if !ok {
		names := make([]string, 0, len(themes))
		for _, t := range themes {
			names = append(names, t.Name)
		}
		return "", nil, fmt.Errorf("unknown theme %q (available: %s)", themeFlag, strings.Join(names, ", "))
	}
	return themeWords(theme)
}

// themeWords sanitizes a theme's word list.
func themeWords(theme wordlist.Theme) (string, []string, error) {
	words := wordlist.Sanitize(theme.Words)
	if len(words) == 0 {
		return "", nil, fmt.Errorf("theme %q has no valid words", theme.Name)
	}
	return theme.Name, words, nil
}

// searchWords applies the configured word cap for the word search.
// Zero means place every word.
func searchWords(cfg *config.Config, words []string) []string {
	if cfg.WordSearch.Words > 0 && cfg.WordSearch.Words < len(words) {
		return words[:cfg.WordSearch.Words]
	}
	return words
}

// recordRuns opens the archive and records one run per generated
// puzzle. Returns how many runs were written.
func recordRuns(cfg *config.Config, result *Result) (int, error) {
	arc, err := openArchive(&cfg.Archive)
	if err != nil {
		return 0, err
	}
	defer arc.Close()

	runs := make([]archive.Run, 0, 3)
	if result.Maze != nil {
		runs = append(runs, archive.Run{
			Kind: "maze",
			Seed: result.Seed,
			Cols: result.Maze.Cols,
			Rows: result.Maze.Rows,
		})
	}
	if result.WordSearch != nil {
		requested := searchWords(cfg, result.Words)
		runs = append(runs, archive.Run{
			Kind:           "wordsearch",
			Theme:          result.Theme,
			Seed:           result.Seed,
			Cols:           result.WordSearch.Size,
			Rows:           result.WordSearch.Size,
			WordsRequested: len(requested),
			WordsPlaced:    len(result.WordSearch.Placed),
		})
	}
	if result.Crossword != nil {
		runs = append(runs, archive.Run{
			Kind:           "crossword",
			Theme:          result.Theme,
			Seed:           result.Seed,
			Cols:           result.Crossword.Size,
			Rows:           result.Crossword.Size,
			WordsRequested: len(result.Words),
			WordsPlaced:    len(result.Crossword.Entries),
		})
	}

	for _, run := range runs {
		if _, err := arc.RecordRun(run); err != nil {
			return 0, err
		}
	}
	return len(runs), nil
}

// openArchive maps the app config onto an archive connection.
func openArchive(cfg *config.ArchiveConfig) (*archive.Archive, error) {
	arcCfg := archive.DefaultConfig(cfg.Path)
	arcCfg.Driver = cfg.DriverName()
	if arcCfg.Driver == "postgres" {
		pg := archive.DefaultPostgresConfig()
		pg.Host = cfg.Postgres.Host
		pg.Port = cfg.Postgres.Port
		pg.User = cfg.Postgres.User
		pg.Password = cfg.Postgres.Password
		pg.Database = cfg.Postgres.Database
		pg.SSLMode = cfg.Postgres.SSLMode
		arcCfg.Postgres = pg
	}
	return archive.OpenWithConfig(arcCfg)
}
