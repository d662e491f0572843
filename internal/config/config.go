package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxGridSize caps puzzle grid dimensions accepted from flags and config files.
const MaxGridSize = 100

// Config holds generator-wide configuration settings.
type Config struct {
	Maze       MazeConfig       `yaml:"maze"`
	WordSearch WordSearchConfig `yaml:"word_search"`
	Crossword  CrosswordConfig  `yaml:"crossword"`
	Paths      PathsConfig      `yaml:"paths"`
	Archive    ArchiveConfig    `yaml:"archive"`
}

// MazeConfig holds default maze dimensions.
type MazeConfig struct {
	// Cols is the maze width in cells.
	Cols int `yaml:"cols"`

	// Rows is the maze height in cells.
	Rows int `yaml:"rows"`
}

// WordSearchConfig holds default word search settings.
type WordSearchConfig struct {
	// Size is the square grid dimension.
	Size int `yaml:"size"`

	// Words is how many theme words to pull per puzzle.
	// 0 means use every word the theme provides.
	Words int `yaml:"words"`
}

// CrosswordConfig holds default crossword settings.
type CrosswordConfig struct {
	// Size is the square grid dimension.
	Size int `yaml:"size"`

	// MaxWords caps how many words a single crossword uses (default: 8).
	MaxWords int `yaml:"max_words"`
}

// PathsConfig holds file locations the generator reads and writes.
type PathsConfig struct {
	// ClueFile is a YAML clue dictionary merged over the builtin clues.
	ClueFile string `yaml:"clue_file"`

	// ThemeFile is a YAML theme list used instead of the builtin themes.
	ThemeFile string `yaml:"theme_file"`

	// OutputDir is where exported puzzle files land. Empty means the
	// current directory.
	OutputDir string `yaml:"output_dir"`
}

// ArchiveConfig holds generation-run archive settings.
type ArchiveConfig struct {
	// Enabled turns on run recording without the -archive flag.
	Enabled bool `yaml:"enabled"`

	// Driver specifies which database to use: "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// Path is the SQLite database file.
	Path string `yaml:"path"`

	// PostgreSQL connection settings, used when Driver is "postgres".
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings for the archive.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// DefaultConfig returns a Config with usable defaults for all puzzle types.
func DefaultConfig() *Config {
	return &Config{
		Maze: MazeConfig{
			Cols: 10,
			Rows: 10,
		},
		WordSearch: WordSearchConfig{
			Size:  12,
			Words: 8,
		},
		Crossword: CrosswordConfig{
			Size:     15,
			MaxWords: 8,
		},
		Paths: PathsConfig{
			ClueFile:  "data/clues.yaml",
			ThemeFile: "data/themes.yaml",
			OutputDir: "puzzles",
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Driver:  "sqlite",
			Path:    "data/puzzlegen.db",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
	}
}

// LoadConfig loads generator configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// Validate checks maze dimensions.
// Returns a message describing what's wrong, or empty string if valid.
func (c *MazeConfig) Validate() string {
	if c.Cols < 1 || c.Rows < 1 {
		return "Maze dimensions must be at least 1x1."
	}
	if c.Cols > MaxGridSize || c.Rows > MaxGridSize {
		return "Maze dimensions must be at most " + itoa(MaxGridSize) + "x" + itoa(MaxGridSize) + "."
	}
	return ""
}

// Validate checks word search settings.
// Returns a message describing what's wrong, or empty string if valid.
func (c *WordSearchConfig) Validate() string {
	if c.Size < 1 {
		return "Word search grid must be at least 1x1."
	}
	if c.Size > MaxGridSize {
		return "Word search grid must be at most " + itoa(MaxGridSize) + "x" + itoa(MaxGridSize) + "."
	}
	if c.Words < 0 {
		return "Word count cannot be negative."
	}
	return ""
}

// Validate checks crossword settings.
// Returns a message describing what's wrong, or empty string if valid.
func (c *CrosswordConfig) Validate() string {
	if c.Size < 1 {
		return "Crossword grid must be at least 1x1."
	}
	if c.Size > MaxGridSize {
		return "Crossword grid must be at most " + itoa(MaxGridSize) + "x" + itoa(MaxGridSize) + "."
	}
	if c.MaxWords < 0 {
		return "Max words cannot be negative."
	}
	return ""
}

// OutputFile returns the path for an exported puzzle file,
// placed under OutputDir when one is configured.
func (c *PathsConfig) OutputFile(name string) string {
	if c.OutputDir == "" {
		return name
	}
	return filepath.Join(c.OutputDir, name)
}

// DriverName returns the configured archive driver, defaulting to SQLite.
func (c *ArchiveConfig) DriverName() string {
	driver := strings.ToLower(strings.TrimSpace(c.Driver))
	if driver == "" {
		return "sqlite"
	}
	return driver
}

// itoa converts an int to a string without importing strconv.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
