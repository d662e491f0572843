// Package clues provides clue text lookup for crossword entries.
package clues

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Provider supplies clue text for a word. Implementations return
// ok = false when they have no clue for the word.
type Provider interface {
	Clue(word string) (string, bool)
}

// dictionaryFile represents the structure of a clue dictionary YAML file.
type dictionaryFile struct {
	Clues map[string]string `yaml:"clues"`
}

// Dictionary is a fixed word-to-clue mapping keyed by uppercase word.
type Dictionary struct {
	clues map[string]string
}

// builtinClues covers the packaged puzzle themes. A dictionary file
// loaded over these wins on conflict.
var builtinClues = map[string]string{
	"NOAH":    "He built the ark",
	"ARK":     "Boat that carried two of every animal",
	"FLOOD":   "Forty days of rain brought it",
	"RAINBOW": "God's promise in the sky",
	"DOVE":    "Bird that brought back an olive leaf",
	"ANIMALS": "They came aboard two by two",
	"RAIN":    "It fell for forty days and nights",

	"CREATION": "The work of the first six days",
	"LIGHT":    "God made it on the first day",
	"GARDEN":   "Adam and Eve's first home",
	"EDEN":     "Garden where the serpent appeared",
	"ADAM":     "The first man",
	"EVE":      "The first woman",

	"MOSES":   "He parted the Red Sea",
	"EGYPT":   "Land the Israelites fled",
	"MANNA":   "Bread from heaven",
	"EXODUS":  "The journey out of Egypt",
	"PHARAOH": "Ruler who would not let the people go",
	"SINAI":   "Mountain where Moses received the law",

	"DAVID":   "Shepherd boy who became king",
	"GOLIATH": "Giant felled by a single stone",
	"JONAH":   "Swallowed by a great fish",
	"FAITH":   "Trust in things unseen",
	"GRACE":   "Unmerited favor",
}

// Builtin returns a dictionary holding only the packaged clues.
func Builtin() *Dictionary {
	d := &Dictionary{clues: make(map[string]string, len(builtinClues))}
	for word, clue := range builtinClues {
		d.clues[word] = clue
	}
	return d
}

// Load returns the builtin dictionary merged with entries from a YAML
// file of the form:
//
//	clues:
//	  NOAH: He built the ark
//
// File entries override builtin ones. A missing file is not an error;
// the builtin dictionary is returned unchanged.
func Load(path string) (*Dictionary, error) {
	d := Builtin()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, fmt.Errorf("failed to read clue file: %w", err)
	}

	var file dictionaryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse clue file: %w", err)
	}

	for word, clue := range file.Clues {
		d.clues[normalizeWord(word)] = strings.TrimSpace(clue)
	}
	return d, nil
}

// Clue returns the clue for a word. Lookup is case-insensitive.
func (d *Dictionary) Clue(word string) (string, bool) {
	clue, ok := d.clues[normalizeWord(word)]
	return clue, ok
}

// Len returns the number of clues in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.clues)
}

// Fallback wraps a Provider so every word gets a clue: on a miss it
// generates one of the form "NOAH (starts with N)".
type Fallback struct {
	next Provider
}

// WithFallback decorates a provider with generated clues for misses.
func WithFallback(p Provider) *Fallback {
	return &Fallback{next: p}
}

// Clue returns the wrapped provider's clue, or a generated one. The
// only miss is an empty word.
func (f *Fallback) Clue(word string) (string, bool) {
	if clue, ok := f.next.Clue(word); ok {
		return clue, true
	}

	normalized := normalizeWord(word)
	if normalized == "" {
		return "", false
	}
	return fmt.Sprintf("%s (starts with %c)", normalized, normalized[0]), true
}

// Default returns the builtin dictionary wrapped in the fallback.
func Default() Provider {
	return WithFallback(Builtin())
}

// normalizeWord uppercases a word and strips all whitespace
func normalizeWord(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, word)
}
