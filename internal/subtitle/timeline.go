package subtitle

import (
	"sort"
	"time"
)

// ActiveCue returns the ID of the first cue, in slice order, whose
// [Start, End] interval contains t.
func ActiveCue(cues []Cue, t time.Duration) (ID, bool) {
	for _, c := range cues {
		if c.Contains(t) {
			return c.ID, true
		}
	}
	return ID{}, false
}

// Timeline answers active-cue queries for a fixed, ID-ordered cue list.
// When both starts and ends never decrease along the list, the cues
// containing any t form a contiguous run and lookups use binary search;
// otherwise it scans linearly. Either way the first match in ID order wins.
type Timeline struct {
	cues      []Cue
	monotonic bool
}

// NewTimeline indexes cues, which must already be ordered by ID.
func NewTimeline(cues []Cue) *Timeline {
	monotonic := true
	for i := 1; i < len(cues); i++ {
		if cues[i].Start < cues[i-1].Start || cues[i].End < cues[i-1].End {
			monotonic = false
			break
		}
	}
	return &Timeline{cues: cues, monotonic: monotonic}
}

// Len returns the number of indexed cues.
func (tl *Timeline) Len() int { return len(tl.cues) }

// Cues returns the indexed cues.
func (tl *Timeline) Cues() []Cue { return tl.cues }

// Active returns the index of the active cue at t.
func (tl *Timeline) Active(t time.Duration) (int, bool) {
	if !tl.monotonic {
		for i, c := range tl.cues {
			if c.Contains(t) {
				return i, true
			}
		}
		return -1, false
	}

	// First cue that has not ended by t; it is active if it has started.
	i := sort.Search(len(tl.cues), func(i int) bool {
		return tl.cues[i].End >= t
	})
	if i < len(tl.cues) && tl.cues[i].Start <= t {
		return i, true
	}
	return -1, false
}

// ActiveID is Active returning the cue ID.
func (tl *Timeline) ActiveID(t time.Duration) (ID, bool) {
	i, ok := tl.Active(t)
	if !ok {
		return ID{}, false
	}
	return tl.cues[i].ID, true
}
