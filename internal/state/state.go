// Package state persists the annotation state of the last session.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/metcalfc/lrr/internal/fsutil"
)

const (
	snapshotFileName = "session.json"
	snapshotVersion  = 1
)

var (
	ErrNoSnapshot         = errors.New("no saved session")
	ErrSnapshotMismatch   = errors.New("saved session belongs to a different subtitle file")
	ErrStorageUnavailable = errors.New("session storage unavailable")
	ErrCorruptSnapshot    = errors.New("saved session is corrupt")
)

// Snapshot is the persisted state of one session. Only the most recent
// snapshot is kept.
type Snapshot struct {
	Version         int       `json:"version"`
	SubtitleFile    string    `json:"subtitle_file"`
	SubtitleName    string    `json:"subtitle_name,omitempty"`
	AudioFile       string    `json:"audio_file,omitempty"`
	Bookmarks       []string  `json:"bookmarks"`
	SavedWords      []string  `json:"saved_words"`
	PositionSeconds float64   `json:"position_seconds"`
	SavedAt         time.Time `json:"saved_at"`
}

// Position returns the saved playback position.
func (s Snapshot) Position() time.Duration {
	return time.Duration(s.PositionSeconds * float64(time.Second))
}

// Store manages the single snapshot slot.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore uses dir, or XDG_STATE_HOME/lrr/ when dir is empty.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = StateDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return &Store{path: filepath.Join(dir, snapshotFileName)}, nil
}

// StateDir returns XDG_STATE_HOME/lrr or ~/.local/state/lrr
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "lrr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "lrr")
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// ComputeHash generates content hash for file identity. The whole file is
// hashed, so edited copies of a subtitle file never share an identity.
func ComputeHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return encodeHash(h.Sum(nil)), nil
}

// HashBytes is ComputeHash for content already in memory.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return encodeHash(sum[:])
}

func encodeHash(sum []byte) string {
	return hex.EncodeToString(sum[:16]) // First 16 bytes = 32 hex chars
}

// Save overwrites the slot with snap.
func (s *Store) Save(snap Snapshot) error {
	if s == nil {
		return ErrStorageUnavailable
	}
	snap.Version = snapshotVersion
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fsutil.WriteFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Read returns the stored snapshot if it belongs to identity.
func (s *Store) Read(identity string) (Snapshot, error) {
	snap, err := s.Peek()
	if err != nil {
		return Snapshot{}, err
	}
	if snap.SubtitleFile != identity {
		return Snapshot{}, ErrSnapshotMismatch
	}
	return snap, nil
}

// Peek returns the stored snapshot whichever file it belongs to.
func (s *Store) Peek() (Snapshot, error) {
	if s == nil {
		return Snapshot{}, ErrStorageUnavailable
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path)
	s.mu.RUnlock()
	if errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.SubtitleFile == "" || snap.Version > snapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: unsupported contents", ErrCorruptSnapshot)
	}
	return snap, nil
}

// Load is Read for callers that treat every failure as "nothing saved".
func (s *Store) Load(identity string) (Snapshot, bool) {
	snap, err := s.Read(identity)
	if err != nil {
		return Snapshot{}, false
	}
	return snap, true
}

// Clear removes the saved snapshot.
func (s *Store) Clear() error {
	if s == nil {
		return ErrStorageUnavailable
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
