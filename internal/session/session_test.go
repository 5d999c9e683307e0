package session

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/metcalfc/lrr/internal/dictionary"
	"github.com/metcalfc/lrr/internal/logging"
	"github.com/metcalfc/lrr/internal/state"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:02,000
Hello world.

2
00:00:03,000 --> 00:00:04,000
Foo. Bar!

3
00:00:06,000 --> 00:00:08,500
The end
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func openSample(t *testing.T, store *state.Store, fresh bool) *Session {
	t.Helper()
	path := writeFile(t, t.TempDir(), "sample.srt", sampleSRT)
	s, err := Open(path, Options{Store: store, Fresh: fresh, Dictionary: dictionary.Stub()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func TestOpen(t *testing.T) {
	s := openSample(t, nil, false)

	if len(s.Cues) != 4 {
		t.Fatalf("expected 4 cues, got %d", len(s.Cues))
	}
	if s.Clock.Duration != 8500*time.Millisecond {
		t.Errorf("Duration = %v, want last cue end 8.5s", s.Clock.Duration)
	}
	if s.Restored {
		t.Error("nothing should be restored without a store")
	}
	if s.Name() != "sample.srt" {
		t.Errorf("Name() = %q", s.Name())
	}
	if len(s.Identity) != 32 {
		t.Errorf("Identity = %q", s.Identity)
	}
}

func TestOpenMissingFile(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.srt"), Options{}); err == nil {
		t.Error("expected error")
	}
}

func TestActiveFollowsClock(t *testing.T) {
	s := openSample(t, nil, false)

	tests := []struct {
		at   time.Duration
		want string
	}{
		{500 * time.Millisecond, ""},
		{1500 * time.Millisecond, "1"},
		{3500 * time.Millisecond, "2"},
		{5 * time.Second, ""},
		{7 * time.Second, "3"},
	}
	for _, tt := range tests {
		s.Clock.Seek(tt.at)
		c, ok := s.Active()
		got := ""
		if ok {
			got = c.ID.String()
		}
		if got != tt.want {
			t.Errorf("Active() at %v = %q, want %q", tt.at, got, tt.want)
		}
		if (s.ActiveIndex() >= 0) != ok {
			t.Errorf("ActiveIndex() disagrees with Active() at %v", tt.at)
		}
	}
}

func TestNextPrevCue(t *testing.T) {
	s := openSample(t, nil, false)

	s.NextCue()
	if s.Clock.Position != time.Second {
		t.Fatalf("NextCue from 0 = %v, want 1s", s.Clock.Position)
	}
	s.NextCue()
	if s.Clock.Position != 3*time.Second {
		t.Fatalf("NextCue = %v, want 3s (sentences sharing a start are skipped)", s.Clock.Position)
	}
	s.NextCue()
	s.NextCue()
	if s.Clock.Position != 6*time.Second {
		t.Fatalf("NextCue past the last cue = %v, want 6s", s.Clock.Position)
	}

	s.Clock.Seek(6500 * time.Millisecond)
	s.PrevCue()
	if s.Clock.Position != 3*time.Second {
		t.Errorf("PrevCue = %v, want 3s", s.Clock.Position)
	}
	s.PrevCue()
	s.PrevCue()
	if s.Clock.Position != 0 {
		t.Errorf("PrevCue at start = %v, want 0", s.Clock.Position)
	}

	s.SeekToCue(2)
	if s.Clock.Position != 3*time.Second {
		t.Errorf("SeekToCue(2) = %v, want 3s", s.Clock.Position)
	}
}

func TestSaveAndRestore(t *testing.T) {
	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "sample.srt", sampleSRT)

	s1, err := Open(path, Options{Store: store, AudioPath: "sample.mp3"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s1.ToggleBookmark(0)
	s1.ToggleBookmark(2)
	s1.ToggleWord("World!")
	s1.Clock.Seek(3500 * time.Millisecond)
	if err := s1.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s2, err := Open(path, Options{Store: store})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !s2.Restored {
		t.Fatal("expected session to be restored")
	}
	if got := s2.Snapshot().Bookmarks; !slices.Equal(got, []string{"1", "2.01"}) {
		t.Errorf("restored bookmarks = %v", got)
	}
	if !s2.Annotations.IsSavedWord("world") {
		t.Error("restored words missing 'world'")
	}
	if s2.Clock.Position != 3500*time.Millisecond {
		t.Errorf("restored position = %v, want 3.5s", s2.Clock.Position)
	}
	if filepath.Base(s2.AudioPath) != "sample.mp3" {
		t.Errorf("restored audio = %q", s2.AudioPath)
	}

	// Fresh start ignores the snapshot.
	s3, err := Open(path, Options{Store: store, Fresh: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s3.Restored || s3.Clock.Position != 0 {
		t.Errorf("fresh session restored state: %+v", s3.Snapshot())
	}

	// A different subtitle file never picks up the snapshot.
	other := writeFile(t, dir, "other.srt", "1\n00:00:01,000 --> 00:00:02,000\nDifferent.")
	s4, err := Open(other, Options{Store: store})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s4.Restored {
		t.Error("snapshot leaked onto a different subtitle file")
	}
	if b, w := s4.Annotations.Counts(); b != 0 || w != 0 {
		t.Errorf("annotations = %d bookmarks, %d words; want empty", b, w)
	}
}

func TestSnapshotNotAppliedToEditedFile(t *testing.T) {
	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	// Both files share well over 8 KiB before their last cue differs.
	var prefix strings.Builder
	for i := 1; prefix.Len() < 12*1024; i++ {
		fmt.Fprintf(&prefix, "%d\n00:00:%02d,000 --> 00:00:%02d,500\nLine number %d.\n\n", i, i%60, i%60, i)
	}
	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.srt", prefix.String()+"9999\n02:00:00,000 --> 02:00:01,000\nThe end.\n")
	pathB := writeFile(t, dir, "b.srt", prefix.String()+"9999\n02:00:00,000 --> 02:00:01,000\nA new ending.\n")

	a, err := Open(pathA, Options{Store: store})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	a.ToggleWord("secret")
	a.ToggleBookmark(0)
	if err := a.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b, err := Open(pathB, Options{Store: store})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if b.Identity == a.Identity {
		t.Fatalf("files with different tails share identity %s", a.Identity)
	}
	if b.Restored {
		t.Errorf("snapshot for a.srt was applied to b.srt: words %v", b.Annotations.SavedWords())
	}
}

func TestNoStoreDoesNotWarn(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logging.Logger{SugaredLogger: zap.New(core).Sugar()}

	path := writeFile(t, t.TempDir(), "sample.srt", sampleSRT)
	if _, err := Open(path, Options{Logger: log}); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if n := logs.FilterLevelExact(zapcore.WarnLevel).Len(); n != 0 {
		t.Errorf("got %d warnings without a store: %v", n, logs.All())
	}
	if logs.FilterMessage("No snapshot to restore").Len() != 1 {
		t.Error("missing store should be logged at debug level")
	}
}

func TestPlayAudioWithoutFfmpeg(t *testing.T) {
	t.Setenv("PATH", "")
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logging.Logger{SugaredLogger: zap.New(core).Sugar()}

	path := writeFile(t, t.TempDir(), "sample.srt", sampleSRT)
	s, err := Open(path, Options{AudioPath: "sample.mp3", PlayAudio: true, Logger: log})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if logs.FilterMessage("Audio playback unavailable").Len() != 1 {
		t.Errorf("expected playback warning, got %v", logs.All())
	}
	s.Clock.TogglePause()
	s.Clock.Tick(time.Second)
	if s.Clock.Position != time.Second {
		t.Errorf("silent clock position = %v, want 1s", s.Clock.Position)
	}
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	os.WriteFile(store.Path(), []byte("{garbage"), 0644)

	s := openSample(t, store, false)
	if s.Restored {
		t.Error("corrupt snapshot should not restore")
	}
	if b, w := s.Annotations.Counts(); b != 0 || w != 0 {
		t.Error("annotations should be empty")
	}
}

func TestForget(t *testing.T) {
	store, err := state.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	s := openSample(t, store, false)
	s.ToggleBookmark(1)
	s.Save()

	if err := s.Forget(); err != nil {
		t.Fatalf("Forget: %v", err)
	}
	if _, ok := store.Load(s.Identity); ok {
		t.Error("snapshot still present after Forget")
	}
	if b, _ := s.Annotations.Counts(); b != 0 {
		t.Error("bookmarks still present after Forget")
	}
}

func TestWordsAndDefine(t *testing.T) {
	s := openSample(t, nil, false)

	words := s.Words(0)
	if !slices.Equal(words, []string{"Hello", "world."}) {
		t.Errorf("Words(0) = %v", words)
	}
	if s.Words(99) != nil {
		t.Error("Words out of range should be nil")
	}
	if def, ok := s.Define("world."); !ok || def == "" {
		t.Errorf("Define(world.) = %q, %v", def, ok)
	}
	if s.ToggleBookmark(-1) {
		t.Error("ToggleBookmark out of range should be a no-op")
	}
}

func TestExports(t *testing.T) {
	s := openSample(t, nil, false)
	if _, err := s.ExportBookmarks(); err == nil {
		t.Error("expected empty export error")
	}
	s.ToggleBookmark(3)
	text, err := s.ExportBookmarks()
	if err != nil || text != "The end" {
		t.Errorf("ExportBookmarks() = %q, %v", text, err)
	}
	s.ToggleWord("Foo")
	if text, err := s.ExportWords(); err != nil || text != "foo" {
		t.Errorf("ExportWords() = %q, %v", text, err)
	}
}
