// Package annotation tracks bookmarked sentences and saved vocabulary words.
package annotation

import (
	"errors"
	"slices"
	"strings"
	"unicode"

	"github.com/metcalfc/lrr/internal/subtitle"
)

// ErrEmptyExport is returned when an export has nothing to write.
var ErrEmptyExport = errors.New("nothing to export")

// Store holds the bookmark and saved-word sets for one subtitle file.
type Store struct {
	bookmarks map[subtitle.ID]struct{}
	words     map[string]struct{}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		bookmarks: make(map[subtitle.ID]struct{}),
		words:     make(map[string]struct{}),
	}
}

// NormalizeWord lowercases word and drops every non-letter rune.
func NormalizeWord(word string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, word)
}

// ToggleBookmark flips membership of id and reports whether it is now bookmarked.
func (s *Store) ToggleBookmark(id subtitle.ID) bool {
	if _, ok := s.bookmarks[id]; ok {
		delete(s.bookmarks, id)
		return false
	}
	s.bookmarks[id] = struct{}{}
	return true
}

// ToggleSavedWord flips membership of the normalized word and reports
// whether it is now saved. Words with no letters are ignored.
func (s *Store) ToggleSavedWord(word string) bool {
	w := NormalizeWord(word)
	if w == "" {
		return false
	}
	if _, ok := s.words[w]; ok {
		delete(s.words, w)
		return false
	}
	s.words[w] = struct{}{}
	return true
}

// IsBookmarked reports whether id is bookmarked.
func (s *Store) IsBookmarked(id subtitle.ID) bool {
	_, ok := s.bookmarks[id]
	return ok
}

// IsSavedWord reports whether word, once normalized, is saved.
func (s *Store) IsSavedWord(word string) bool {
	_, ok := s.words[NormalizeWord(word)]
	return ok
}

// FilterBookmarked returns the bookmarked cues in their input order.
func (s *Store) FilterBookmarked(cues []subtitle.Cue) []subtitle.Cue {
	var out []subtitle.Cue
	for _, c := range cues {
		if s.IsBookmarked(c.ID) {
			out = append(out, c)
		}
	}
	return out
}

// Bookmarks returns the bookmarked IDs in ID order.
func (s *Store) Bookmarks() []subtitle.ID {
	out := make([]subtitle.ID, 0, len(s.bookmarks))
	for id := range s.bookmarks {
		out = append(out, id)
	}
	slices.SortFunc(out, subtitle.ID.Compare)
	return out
}

// SavedWords returns the saved words sorted lexicographically.
func (s *Store) SavedWords() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Counts returns the number of bookmarks and saved words.
func (s *Store) Counts() (bookmarks, words int) {
	return len(s.bookmarks), len(s.words)
}

// Reset empties both sets.
func (s *Store) Reset() {
	clear(s.bookmarks)
	clear(s.words)
}

// Restore replaces the store contents with persisted values. Bookmark
// strings that are not valid IDs are dropped and counted in the result.
func (s *Store) Restore(bookmarks, words []string) (dropped int) {
	s.Reset()
	for _, b := range bookmarks {
		id, err := subtitle.ParseID(b)
		if err != nil {
			dropped++
			continue
		}
		s.bookmarks[id] = struct{}{}
	}
	for _, w := range words {
		if n := NormalizeWord(w); n != "" {
			s.words[n] = struct{}{}
		}
	}
	return dropped
}
