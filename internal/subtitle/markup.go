package subtitle

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// overrideRegex matches ASS-style override blocks such as {\an8} that some
// SubRip files carry.
var overrideRegex = regexp.MustCompile(`\{\\[^}]*\}`)

// StripMarkup removes inline tags (<i>, <b>, <font ...>) and override blocks
// from cue text and collapses whitespace.
func StripMarkup(s string) string {
	s = overrideRegex.ReplaceAllString(s, "")
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}

	var out strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(out.String()), " ")
		case html.TextToken:
			out.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				out.WriteString(" ")
			}
		}
	}
}
