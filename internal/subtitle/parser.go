package subtitle

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrMalformedBlock is reported for a block missing its sequence number,
	// timing line or text, or whose end precedes its start.
	ErrMalformedBlock = errors.New("malformed subtitle block")
	// ErrDuplicateCue is reported for a block reusing an earlier sequence number.
	ErrDuplicateCue = errors.New("duplicate cue sequence")
)

// BlockError describes a block skipped during parsing.
type BlockError struct {
	Block int // 1-based ordinal of the block in the file
	Line  int // 1-based line number where the block starts
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d (line %d): %v", e.Block, e.Line, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Parse converts SubRip text into sentence records ordered by ID.
// Malformed blocks are dropped; parsing itself never fails.
func Parse(raw string) []Cue {
	cues, _ := ParseDetailed(raw)
	return cues
}

// ParseDetailed is Parse that also reports every skipped block.
func ParseDetailed(raw string) ([]Cue, []*BlockError) {
	var (
		cues    []Cue
		skipped []*BlockError
		prevSeq int
	)
	seen := make(map[int]bool)

	for i, blk := range splitBlocks(raw) {
		seq, start, end, text, err := parseBlock(blk.lines, prevSeq)
		if err == nil && seen[seq] {
			err = fmt.Errorf("%w: %d", ErrDuplicateCue, seq)
		}
		if err != nil {
			skipped = append(skipped, &BlockError{Block: i + 1, Line: blk.line, Err: err})
			continue
		}
		seen[seq] = true
		prevSeq = seq

		for k, sentence := range capSentences(SplitSentences(text)) {
			cues = append(cues, Cue{
				ID:    ID{Seq: seq, Sentence: k},
				Start: start,
				End:   end,
				Text:  sentence,
			})
		}
	}

	slices.SortStableFunc(cues, func(a, b Cue) int {
		return a.ID.Compare(b.ID)
	})
	return cues, skipped
}

type block struct {
	line  int
	lines []string
}

// splitBlocks splits text on blank (or whitespace-only) lines.
func splitBlocks(raw string) []block {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var (
		out     []block
		current *block
	)
	for n, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			if current != nil {
				out = append(out, *current)
				current = nil
			}
			continue
		}
		if current == nil {
			current = &block{line: n + 1}
		}
		current.lines = append(current.lines, strings.TrimSpace(line))
	}
	if current != nil {
		out = append(out, *current)
	}
	return out
}

func parseBlock(lines []string, prevSeq int) (seq int, start, end time.Duration, text string, err error) {
	var timing string
	var body []string

	// Some files omit the sequence line; number those after the previous cue.
	if strings.Contains(lines[0], "-->") {
		seq = prevSeq + 1
		timing, body = lines[0], lines[1:]
	} else {
		seq, err = strconv.Atoi(lines[0])
		if err != nil || seq < 0 {
			return 0, 0, 0, "", fmt.Errorf("%w: bad sequence number %q", ErrMalformedBlock, lines[0])
		}
		if len(lines) < 2 {
			return 0, 0, 0, "", fmt.Errorf("%w: missing timing line", ErrMalformedBlock)
		}
		timing, body = lines[1], lines[2:]
	}

	start, end, err = parseTiming(timing)
	if err != nil {
		return 0, 0, 0, "", err
	}

	text = StripMarkup(strings.Join(body, " "))
	if text == "" {
		return 0, 0, 0, "", fmt.Errorf("%w: no text", ErrMalformedBlock)
	}
	return seq, start, end, text, nil
}

// parseTiming reads "start --> end", ignoring any position settings after end.
func parseTiming(line string) (time.Duration, time.Duration, error) {
	left, right, ok := strings.Cut(line, "-->")
	if !ok {
		return 0, 0, fmt.Errorf("%w: missing timing line", ErrMalformedBlock)
	}
	start, err := ParseTimestamp(left)
	if err != nil {
		return 0, 0, fmt.Errorf("start time: %w", err)
	}
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, fmt.Errorf("end time: %w: empty", ErrMalformedTimestamp)
	}
	end, err := ParseTimestamp(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("end time: %w", err)
	}
	if end < start {
		return 0, 0, fmt.Errorf("%w: end %s before start %s",
			ErrMalformedBlock, FormatTimestamp(end), FormatTimestamp(start))
	}
	return start, end, nil
}
