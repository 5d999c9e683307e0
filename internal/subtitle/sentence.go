package subtitle

import (
	"regexp"
	"strings"
)

// sentenceRegex matches a maximal run of text closed by one or more of . ! ?
var sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]+`)

// SplitSentences splits cue text into sentences. Text without any terminator
// is returned whole as a single sentence, and text trailing the last
// terminator becomes a final sentence of its own.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	locs := sentenceRegex.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{text}
	}

	var out []string
	end := 0
	for _, loc := range locs {
		// Stray leading terminators stay with the first sentence.
		if s := strings.TrimSpace(text[end:loc[1]]); s != "" {
			out = append(out, s)
		}
		end = loc[1]
	}
	if rest := strings.TrimSpace(text[end:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// capSentences folds sentences beyond MaxSentencesPerCue into the last
// allowed one.
func capSentences(sentences []string) []string {
	if len(sentences) <= MaxSentencesPerCue {
		return sentences
	}
	last := MaxSentencesPerCue - 1
	merged := strings.Join(sentences[last:], " ")
	return append(sentences[:last:last], merged)
}
