// Package media inspects the audio file that accompanies a subtitle file.
package media

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

const probeTimeout = 10 * time.Second

// ErrNoDuration is returned when ffprobe output carries no usable duration.
var ErrNoDuration = errors.New("no duration in probe output")

// Info describes an audio file.
type Info struct {
	Path     string
	Duration time.Duration
	Codec    string
}

// Probe runs ffprobe on path.
func Probe(path string) (*Info, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("audio file: %w", err)
	}

	out, err := ffmpeg.ProbeWithTimeout(path, probeTimeout, ffmpeg.KwArgs{})
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}
	return parseProbe(path, out)
}

func parseProbe(path, out string) (*Info, error) {
	if !gjson.Valid(out) {
		return nil, fmt.Errorf("failed to parse ffprobe output")
	}

	seconds := gjson.Get(out, "format.duration").Float()
	if seconds <= 0 {
		return nil, ErrNoDuration
	}

	codec := gjson.Get(out, `streams.#(codec_type=="audio").codec_name`).String()

	return &Info{
		Path:     path,
		Duration: time.Duration(seconds * float64(time.Second)),
		Codec:    codec,
	}, nil
}
