// Package subtitle parses SubRip subtitle text into time-indexed sentence records.
package subtitle

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxSentencesPerCue bounds the sentence index so that the string form of an
// ID (seq + sentence/100) never collides with the next cue's ID.
const MaxSentencesPerCue = 100

// ID identifies one sentence record: the cue sequence number and the
// sentence index within that cue.
type ID struct {
	Seq      int
	Sentence int
}

// String renders the ID as the rational number Seq + Sentence/100,
// without trailing zeros: {1 0} -> "1", {2 1} -> "2.01", {2 10} -> "2.1".
func (id ID) String() string {
	if id.Sentence == 0 {
		return strconv.Itoa(id.Seq)
	}
	frac := strings.TrimRight(fmt.Sprintf("%02d", id.Sentence), "0")
	return strconv.Itoa(id.Seq) + "." + frac
}

// Float returns the numeric value of the ID.
func (id ID) Float() float64 {
	return float64(id.Seq) + float64(id.Sentence)/MaxSentencesPerCue
}

// Less reports whether id sorts before other.
func (id ID) Less(other ID) bool {
	if id.Seq != other.Seq {
		return id.Seq < other.Seq
	}
	return id.Sentence < other.Sentence
}

// Compare returns -1, 0 or +1 for use with slices.SortFunc.
func (id ID) Compare(other ID) int {
	switch {
	case id.Less(other):
		return -1
	case other.Less(id):
		return 1
	}
	return 0
}

// ParseID parses the string form produced by ID.String.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	seq, err := strconv.Atoi(whole)
	if err != nil || seq < 0 {
		return ID{}, fmt.Errorf("invalid cue id %q", s)
	}
	if !hasFrac {
		return ID{Seq: seq}, nil
	}
	if len(frac) == 0 || len(frac) > 2 {
		return ID{}, fmt.Errorf("invalid cue id %q", s)
	}
	if len(frac) == 1 {
		frac += "0"
	}
	sentence, err := strconv.Atoi(frac)
	if err != nil || sentence < 0 {
		return ID{}, fmt.Errorf("invalid cue id %q", s)
	}
	return ID{Seq: seq, Sentence: sentence}, nil
}

// Cue is a single sentence record. All sentences split from one subtitle
// block share that block's start and end time.
type Cue struct {
	ID    ID
	Start time.Duration
	End   time.Duration
	Text  string
}

// Contains reports whether t falls inside the closed interval [Start, End].
func (c Cue) Contains(t time.Duration) bool {
	return t >= c.Start && t <= c.End
}
