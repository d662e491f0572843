// Package wordlist normalizes and validates puzzle theme word lists.
package wordlist

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Valid puzzle words are short uppercase A-Z strings. Anything longer
// stops fitting printable grids; anything shorter makes no clue.
const (
	MinWordLength = 3
	MaxWordLength = 10
)

// Theme is a named word list.
type Theme struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

// themesFile represents the structure of a theme YAML file.
type themesFile struct {
	Themes []Theme `yaml:"themes"`
}

// Normalize uppercases a word and strips all whitespace.
func Normalize(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, word)
}

// Valid reports whether a word belongs in a puzzle: after
// normalization it must be MinWordLength to MaxWordLength characters,
// all A-Z.
func Valid(word string) bool {
	w := Normalize(word)
	if len(w) < MinWordLength || len(w) > MaxWordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}

// Sanitize normalizes the words, drops invalid ones, and deduplicates,
// preserving first-occurrence order. The result is what the generators
// expect as input.
func Sanitize(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))

	for _, raw := range words {
		if !Valid(raw) {
			continue
		}
		word := Normalize(raw)
		if seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
	}
	return out
}

// Builtin returns the packaged theme lists.
func Builtin() []Theme {
	return []Theme{
		{
			Name:  "Noah's Ark",
			Words: []string{"NOAH", "ARK", "FLOOD", "RAINBOW", "DOVE", "ANIMALS", "RAIN", "WATER"},
		},
		{
			Name:  "Creation",
			Words: []string{"CREATION", "LIGHT", "GARDEN", "EDEN", "ADAM", "EVE", "STARS", "REST"},
		},
		{
			Name:  "Moses",
			Words: []string{"MOSES", "EGYPT", "MANNA", "EXODUS", "PHARAOH", "SINAI", "DESERT", "STAFF"},
		},
	}
}

// LoadThemes reads a theme YAML file of the form:
//
//	themes:
//	  - name: Noah's Ark
//	    words: [NOAH, ARK, FLOOD]
//
// A missing file is not an error; the builtin themes are returned.
func LoadThemes(path string) ([]Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Builtin(), nil
		}
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	var file themesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	if len(file.Themes) == 0 {
		return Builtin(), nil
	}
	return file.Themes, nil
}

// FindTheme looks a theme up by name, case-insensitively.
func FindTheme(themes []Theme, name string) (Theme, bool) {
	for _, theme := range themes {
		if strings.EqualFold(theme.Name, name) {
			return theme, true
		}
	}
	return Theme{}, false
}
