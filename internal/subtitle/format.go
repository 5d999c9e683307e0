package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format parses one subtitle file format into sentence records.
type Format interface {
	Name() string
	Extensions() []string
	Parse(raw string) ([]Cue, []*BlockError)
}

var registry []Format

// Register adds a format to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// SRTFormat implements Format for SubRip files.
type SRTFormat struct{}

func init() {
	Register(&SRTFormat{})
}

func (f *SRTFormat) Name() string         { return "SubRip" }
func (f *SRTFormat) Extensions() []string { return []string{".srt"} }
func (f *SRTFormat) Parse(raw string) ([]Cue, []*BlockError) {
	return ParseDetailed(raw)
}

// FormatFor returns the registered format for filename's extension. SubRip
// is the fallback for unknown extensions.
func FormatFor(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return &SRTFormat{}
}

// File is a loaded subtitle file.
type File struct {
	Path    string
	Data    []byte // raw bytes as read, used for file identity
	Cues    []Cue
	Skipped []*BlockError
}

// LoadFile reads, decodes and parses a subtitle file.
func LoadFile(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read subtitles: %w", err)
	}
	cues, skipped := FormatFor(filename).Parse(Decode(data))
	return &File{
		Path:    filename,
		Data:    data,
		Cues:    cues,
		Skipped: skipped,
	}, nil
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
