// Package export writes bookmark and vocabulary exports.
package export

import (
	"errors"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/metcalfc/lrr/internal/fsutil"
)

const (
	BookmarksFileName = "bookmarked_sentences.txt"
	WordsFileName     = "saved_words.txt"
)

var errEmptyText = errors.New("nothing to write")

// Writer saves export artifacts into Dir.
type Writer struct {
	Dir string
}

// Bookmarks writes text to bookmarked_sentences.txt and returns the path.
func (w Writer) Bookmarks(text string) (string, error) {
	return w.write(BookmarksFileName, text)
}

// Words writes text to saved_words.txt and returns the path.
func (w Writer) Words(text string) (string, error) {
	return w.write(WordsFileName, text)
}

func (w Writer) write(name, text string) (string, error) {
	if text == "" {
		return "", errEmptyText
	}
	dir := w.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, name)
	if err := fsutil.WriteFileAtomic(path, []byte(text+"\n"), 0o644); err != nil {
		return "", err
	}
	return filepath.Abs(path)
}

// Clipboard copies export text to the system clipboard.
type Clipboard struct{}

// Copy writes text to the clipboard.
func (Clipboard) Copy(text string) error {
	if text == "" {
		return errEmptyText
	}
	if clipboard.Unsupported {
		return errors.New("clipboard not supported on this system")
	}
	return clipboard.WriteAll(text)
}
