// Package dictionary looks up short definitions for vocabulary words.
package dictionary

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/metcalfc/lrr/internal/annotation"
)

// Lookup returns a definition for word, if one is known.
type Lookup interface {
	Lookup(word string) (string, bool)
}

// Map is a Lookup backed by a map of normalized words.
type Map map[string]string

func (m Map) Lookup(word string) (string, bool) {
	def, ok := m[annotation.NormalizeWord(word)]
	return def, ok
}

// Stub is a small built-in word list used when no glossary is configured.
func Stub() Map {
	return Map{
		"hello":    "used as a greeting",
		"world":    "the earth, together with all of its countries and peoples",
		"example":  "a thing characteristic of its kind or illustrating a general rule",
		"listen":   "give one's attention to a sound",
		"sentence": "a set of words that is complete in itself",
		"subtitle": "captions displayed at the bottom of a screen that translate or transcribe the dialogue",
	}
}

// LoadGlossary reads a YAML mapping of word to definition.
func LoadGlossary(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary %s: %w", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse glossary %s: %w", path, err)
	}

	m := make(Map, len(raw))
	for word, def := range raw {
		key := annotation.NormalizeWord(word)
		if key == "" {
			continue
		}
		m[key] = strings.TrimSpace(def)
	}
	return m, nil
}

// Chain tries each Lookup in order.
type Chain []Lookup

func (c Chain) Lookup(word string) (string, bool) {
	for _, l := range c {
		if def, ok := l.Lookup(word); ok {
			return def, true
		}
	}
	return "", false
}
