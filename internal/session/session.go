// Package session ties a parsed subtitle file to its annotations, playback
// clock and persisted snapshot.
package session

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/metcalfc/lrr/internal/annotation"
	"github.com/metcalfc/lrr/internal/dictionary"
	"github.com/metcalfc/lrr/internal/logging"
	"github.com/metcalfc/lrr/internal/media"
	"github.com/metcalfc/lrr/internal/playback"
	"github.com/metcalfc/lrr/internal/state"
	"github.com/metcalfc/lrr/internal/subtitle"
)

// prevGrace lets PrevCue step past the cue that just started.
const prevGrace = time.Second

// Options configure Open.
type Options struct {
	AudioPath  string
	Fresh      bool // ignore any saved snapshot
	ProbeAudio bool
	PlayAudio  bool         // play AudioPath through ffmpeg in step with the clock
	Store      *state.Store // nil disables persistence
	Dictionary dictionary.Lookup
	Logger     *logging.Logger
}

// Session is the state of one loaded subtitle file.
type Session struct {
	Path        string
	Identity    string
	AudioPath   string
	Cues        []subtitle.Cue
	Skipped     []*subtitle.BlockError
	Timeline    *subtitle.Timeline
	Annotations *annotation.Store
	Clock       *playback.Clock
	Restored    bool

	store *state.Store
	dict  dictionary.Lookup
	log   *logging.Logger
}

// Open loads and parses subtitlePath, then restores the saved snapshot for
// the same file unless opts.Fresh is set.
func Open(subtitlePath string, opts Options) (*Session, error) {
	f, err := subtitle.LoadFile(subtitlePath)
	if err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	for _, skipped := range f.Skipped {
		log.Warnw("Skipping subtitle block", "file", subtitlePath, "block", skipped.Block,
			"line", skipped.Line, "error", skipped.Err)
	}

	s := &Session{
		Path:        subtitlePath,
		Identity:    state.HashBytes(f.Data),
		AudioPath:   opts.AudioPath,
		Cues:        f.Cues,
		Skipped:     f.Skipped,
		Timeline:    subtitle.NewTimeline(f.Cues),
		Annotations: annotation.NewStore(),
		store:       opts.Store,
		dict:        opts.Dictionary,
		log:         log,
	}

	var resume time.Duration
	if !opts.Fresh {
		resume = s.restore()
	}
	s.Clock = playback.NewClock(s.duration(opts.ProbeAudio))
	s.Clock.Seek(resume)
	if opts.PlayAudio && s.AudioPath != "" {
		s.attachPlayer()
	}

	log.Infow("Opened session", "file", subtitlePath, "identity", s.Identity,
		"cues", len(s.Cues), "skipped", len(s.Skipped), "restored", s.Restored)
	return s, nil
}

// restore applies a matching snapshot and returns the saved position.
func (s *Session) restore() time.Duration {
	snap, err := s.store.Read(s.Identity)
	switch {
	case err == nil:
	case errors.Is(err, state.ErrNoSnapshot),
		errors.Is(err, state.ErrSnapshotMismatch),
		errors.Is(err, state.ErrStorageUnavailable):
		s.log.Debugw("No snapshot to restore", "reason", err)
		return 0
	default:
		s.log.Warnw("Ignoring saved session", "error", err)
		return 0
	}

	if dropped := s.Annotations.Restore(snap.Bookmarks, snap.SavedWords); dropped > 0 {
		s.log.Warnw("Dropped invalid bookmark ids", "count", dropped)
	}
	if s.AudioPath == "" {
		s.AudioPath = snap.AudioFile
	}
	s.Restored = true
	return snap.Position()
}

func (s *Session) attachPlayer() {
	player, err := media.NewPlayer(s.AudioPath)
	if err != nil {
		s.log.Warnw("Audio playback unavailable", "file", s.AudioPath, "error", err)
		return
	}
	s.Clock.Attach(player, func(err error) {
		s.log.Warnw("Audio playback failed", "file", s.AudioPath, "error", err)
	})
}

// Close stops audio playback.
func (s *Session) Close() {
	s.Clock.Detach()
}

// duration prefers the probed audio length and falls back to the end of
// the last cue.
func (s *Session) duration(probe bool) time.Duration {
	if probe && s.AudioPath != "" {
		info, err := media.Probe(s.AudioPath)
		if err == nil {
			return info.Duration
		}
		s.log.Warnw("Could not probe audio", "file", s.AudioPath, "error", err)
	}

	var end time.Duration
	for _, c := range s.Cues {
		end = max(end, c.End)
	}
	return end
}

// Name returns the subtitle file's base name.
func (s *Session) Name() string {
	return filepath.Base(s.Path)
}

// ActiveIndex returns the index of the cue active at the clock position, or -1.
func (s *Session) ActiveIndex() int {
	i, _ := s.Timeline.Active(s.Clock.Position)
	return i
}

// Active returns the cue active at the clock position.
func (s *Session) Active() (subtitle.Cue, bool) {
	i, ok := s.Timeline.Active(s.Clock.Position)
	if !ok {
		return subtitle.Cue{}, false
	}
	return s.Cues[i], true
}

// ToggleBookmark flips the bookmark on cue i.
func (s *Session) ToggleBookmark(i int) bool {
	if i < 0 || i >= len(s.Cues) {
		return false
	}
	return s.Annotations.ToggleBookmark(s.Cues[i].ID)
}

// ToggleWord flips word in the saved-word set.
func (s *Session) ToggleWord(word string) bool {
	return s.Annotations.ToggleSavedWord(word)
}

// Words splits cue i into the tokens a user can pick as vocabulary.
func (s *Session) Words(i int) []string {
	if i < 0 || i >= len(s.Cues) {
		return nil
	}
	return strings.Fields(s.Cues[i].Text)
}

// Define looks word up in the configured dictionary.
func (s *Session) Define(word string) (string, bool) {
	if s.dict == nil {
		return "", false
	}
	return s.dict.Lookup(word)
}

// SeekToCue moves the clock to the start of cue i.
func (s *Session) SeekToCue(i int) {
	if i >= 0 && i < len(s.Cues) {
		s.Clock.Seek(s.Cues[i].Start)
	}
}

// NextCue moves to the next cue that starts after the current position.
func (s *Session) NextCue() {
	for _, c := range s.Cues {
		if c.Start > s.Clock.Position {
			s.Clock.Seek(c.Start)
			return
		}
	}
}

// PrevCue moves to the start of the previous cue.
func (s *Session) PrevCue() {
	for i := len(s.Cues) - 1; i >= 0; i-- {
		if s.Cues[i].Start < s.Clock.Position-prevGrace {
			s.Clock.Seek(s.Cues[i].Start)
			return
		}
	}
	s.Clock.Seek(0)
}

// ExportBookmarks returns the bookmarked sentences as export text.
func (s *Session) ExportBookmarks() (string, error) {
	return s.Annotations.ExportBookmarkedText(s.Cues)
}

// ExportWords returns the saved words as export text.
func (s *Session) ExportWords() (string, error) {
	return s.Annotations.ExportSavedWords()
}

// Snapshot captures the state to persist.
func (s *Session) Snapshot() state.Snapshot {
	ids := s.Annotations.Bookmarks()
	bookmarks := make([]string, len(ids))
	for i, id := range ids {
		bookmarks[i] = id.String()
	}

	audio := s.AudioPath
	if abs, err := filepath.Abs(audio); err == nil && audio != "" {
		audio = abs
	}

	return state.Snapshot{
		SubtitleFile:    s.Identity,
		SubtitleName:    s.Name(),
		AudioFile:       audio,
		Bookmarks:       bookmarks,
		SavedWords:      s.Annotations.SavedWords(),
		PositionSeconds: s.Clock.Position.Seconds(),
	}
}

// Save persists the snapshot, overwriting the previous one.
func (s *Session) Save() error {
	if err := s.store.Save(s.Snapshot()); err != nil {
		s.log.Warnw("Failed to save session", "error", err)
		return err
	}
	s.log.Infow("Saved session", "file", s.Path)
	return nil
}

// Forget clears the annotations and the persisted snapshot.
func (s *Session) Forget() error {
	s.Annotations.Reset()
	s.Restored = false
	return s.store.Clear()
}
