package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestComputeHash(t *testing.T) {
	// Create temp file with known content
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "test1.srt")
	file2 := filepath.Join(tmpDir, "test2.srt")
	file3 := filepath.Join(tmpDir, "test1_copy.srt")

	os.WriteFile(file1, []byte("1\n00:00:01,000 --> 00:00:02,000\nHello."), 0644)
	os.WriteFile(file2, []byte("Different content"), 0644)
	os.WriteFile(file3, []byte("1\n00:00:01,000 --> 00:00:02,000\nHello."), 0644)

	hash1, err := ComputeHash(file1)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	hash2, err := ComputeHash(file2)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	hash3, err := ComputeHash(file3)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}

	// Same content = same hash
	if hash1 != hash3 {
		t.Errorf("Same content should produce same hash: %s != %s", hash1, hash3)
	}
	// Different content = different hash
	if hash1 == hash2 {
		t.Errorf("Different content should produce different hash")
	}
	// Hash should be 32 hex chars
	if len(hash1) != 32 {
		t.Errorf("Hash should be 32 chars, got %d", len(hash1))
	}
}

func TestHashBytesMatchesComputeHash(t *testing.T) {
	tmpDir := t.TempDir()
	big := make([]byte, 64*1024)
	for i := range big {
		big[i] = byte(i % 251)
	}
	path := filepath.Join(tmpDir, "big.srt")
	os.WriteFile(path, big, 0644)

	fromFile, err := ComputeHash(path)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if got := HashBytes(big); got != fromFile {
		t.Errorf("HashBytes = %s, ComputeHash = %s", got, fromFile)
	}
}

func TestHashCoversWholeFile(t *testing.T) {
	// Two versions of a long file that differ only near the end.
	prefix := make([]byte, 0, 16*1024)
	for i := 1; len(prefix) < 12*1024; i++ {
		prefix = append(prefix, fmt.Sprintf("%d\n00:00:%02d,000 --> 00:00:%02d,500\nLine %d.\n\n", i, i%60, i%60, i)...)
	}
	a := append(slices.Clone(prefix), "999\n01:00:00,000 --> 01:00:01,000\nThe end.\n"...)
	b := append(slices.Clone(prefix), "999\n01:00:00,000 --> 01:00:01,000\nA new ending.\n"...)

	if HashBytes(a) == HashBytes(b) {
		t.Fatal("files differing after a long shared prefix must get different identities")
	}

	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.srt")
	pathB := filepath.Join(dir, "b.srt")
	os.WriteFile(pathA, a, 0644)
	os.WriteFile(pathB, b, 0644)
	hashA, err := ComputeHash(pathA)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	hashB, err := ComputeHash(pathB)
	if err != nil {
		t.Fatalf("ComputeHash failed: %v", err)
	}
	if hashA == hashB {
		t.Error("ComputeHash should differ for files with different tails")
	}
	if hashA != HashBytes(a) {
		t.Errorf("ComputeHash = %s, HashBytes = %s", hashA, HashBytes(a))
	}
}

func sampleSnapshot(identity string) Snapshot {
	return Snapshot{
		SubtitleFile:    identity,
		SubtitleName:    "episode.srt",
		AudioFile:       "/tmp/episode.mp3",
		Bookmarks:       []string{"1", "2.01", "10"},
		SavedWords:      []string{"apple", "zebra"},
		PositionSeconds: 65.5,
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	const fileA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	const fileB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"

	if _, ok := store.Load(fileA); ok {
		t.Fatal("Load on empty store should report nothing saved")
	}
	if _, err := store.Read(fileA); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Read on empty store = %v, want ErrNoSnapshot", err)
	}

	want := sampleSnapshot(fileA)
	if err := store.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, ok := store.Load(fileA)
	if !ok {
		t.Fatal("Load after Save returned nothing")
	}
	if !slices.Equal(got.Bookmarks, want.Bookmarks) {
		t.Errorf("Bookmarks = %v, want %v", got.Bookmarks, want.Bookmarks)
	}
	if !slices.Equal(got.SavedWords, want.SavedWords) {
		t.Errorf("SavedWords = %v, want %v", got.SavedWords, want.SavedWords)
	}
	if got.PositionSeconds != 65.5 || got.Position().Seconds() != 65.5 {
		t.Errorf("Position = %v, want 65.5s", got.PositionSeconds)
	}
	if got.AudioFile != want.AudioFile || got.Version != snapshotVersion || got.SavedAt.IsZero() {
		t.Errorf("unexpected metadata: %+v", got)
	}

	// A snapshot for file A is never applied to file B.
	if _, ok := store.Load(fileB); ok {
		t.Error("Load with another identity should report nothing saved")
	}
	if _, err := store.Read(fileB); !errors.Is(err, ErrSnapshotMismatch) {
		t.Errorf("Read with another identity = %v, want ErrSnapshotMismatch", err)
	}
	if peeked, err := store.Peek(); err != nil || peeked.SubtitleFile != want.SubtitleFile {
		t.Errorf("Peek() = %+v, %v", peeked, err)
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	store.Save(sampleSnapshot("first"))
	second := sampleSnapshot("second")
	second.Bookmarks = []string{"3"}
	store.Save(second)

	if _, ok := store.Load("first"); ok {
		t.Error("older snapshot should have been overwritten")
	}
	got, ok := store.Load("second")
	if !ok || !slices.Equal(got.Bookmarks, []string{"3"}) {
		t.Errorf("Load(second) = %+v, %v", got, ok)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected a single slot file, found %d entries", len(entries))
	}
}

func TestCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	for _, content := range []string{"{not json", `{"version":1}`, `{"version":99,"subtitle_file":"x"}`} {
		os.WriteFile(store.Path(), []byte(content), 0644)

		if _, ok := store.Load("x"); ok {
			t.Errorf("Load should fail soft on %q", content)
		}
		if _, err := store.Read("x"); !errors.Is(err, ErrCorruptSnapshot) {
			t.Errorf("Read(%q) = %v, want ErrCorruptSnapshot", content, err)
		}
	}
}

func TestNilStoreFailsSoft(t *testing.T) {
	var store *Store

	if _, ok := store.Load("x"); ok {
		t.Error("nil store should report nothing saved")
	}
	if err := store.Save(sampleSnapshot("x")); !errors.Is(err, ErrStorageUnavailable) {
		t.Errorf("Save on nil store = %v, want ErrStorageUnavailable", err)
	}
}

func TestStorePersistence(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	// Create store and save
	store1, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if filepath.Dir(store1.Path()) != filepath.Join(tmpDir, "lrr") {
		t.Errorf("store path = %s, want under %s", store1.Path(), filepath.Join(tmpDir, "lrr"))
	}
	store1.Save(sampleSnapshot("abc"))

	// Create new store instance - should load persisted data
	store2, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if _, ok := store2.Load("abc"); !ok {
		t.Error("expected snapshot from persisted state")
	}

	// Clear removes the slot
	if err := store2.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, ok := store2.Load("abc"); ok {
		t.Error("expected nothing saved after Clear")
	}
	if err := store2.Clear(); err != nil {
		t.Errorf("Clear on empty slot failed: %v", err)
	}
}
