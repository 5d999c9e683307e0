package annotation

import (
	"slices"
	"strings"

	"github.com/metcalfc/lrr/internal/subtitle"
)

// ExportBookmarkedText joins the text of the bookmarked cues in ID order,
// separated by a blank line.
func (s *Store) ExportBookmarkedText(cues []subtitle.Cue) (string, error) {
	marked := s.FilterBookmarked(cues)
	if len(marked) == 0 {
		return "", ErrEmptyExport
	}
	slices.SortStableFunc(marked, func(a, b subtitle.Cue) int {
		return a.ID.Compare(b.ID)
	})

	texts := make([]string, len(marked))
	for i, c := range marked {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n\n"), nil
}

// ExportSavedWords lists the saved words one per line, sorted.
func (s *Store) ExportSavedWords() (string, error) {
	words := s.SavedWords()
	if len(words) == 0 {
		return "", ErrEmptyExport
	}
	return strings.Join(words, "\n"), nil
}
