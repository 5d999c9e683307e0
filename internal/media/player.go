package media

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ErrPlaybackUnsupported is returned when no ffmpeg audio output device is
// known for this platform.
var ErrPlaybackUnsupported = errors.New("audio playback not supported on this platform")

// Device is an ffmpeg output device, written as "-f Format Name".
type Device struct {
	Format string
	Name   string
}

// DefaultDevice returns the system audio output for the current platform.
func DefaultDevice() (Device, error) {
	switch runtime.GOOS {
	case "linux", "freebsd", "openbsd":
		// PipeWire also serves the pulse protocol.
		return Device{Format: "pulse", Name: "default"}, nil
	case "darwin":
		return Device{Format: "audiotoolbox", Name: "-"}, nil
	}
	return Device{}, ErrPlaybackUnsupported
}

// Player plays an audio file through ffmpeg. Each Play starts a fresh ffmpeg
// process at the requested position; Stop kills it.
type Player struct {
	path       string
	ffmpegPath string
	device     Device

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewPlayer finds ffmpeg and the default audio device for path.
func NewPlayer(path string) (*Player, error) {
	device, err := DefaultDevice()
	if err != nil {
		return nil, err
	}
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}
	return &Player{path: path, ffmpegPath: ffmpegPath, device: device}, nil
}

// stream builds the ffmpeg invocation for playing from pos at rate.
func (p *Player) stream(pos time.Duration, rate float64) *ffmpeg.Stream {
	return ffmpeg.Input(p.path, ffmpeg.KwArgs{
		"ss": fmt.Sprintf("%.3f", max(pos, 0).Seconds()),
	}).Output(p.device.Name, ffmpeg.KwArgs{
		"format":   p.device.Format,
		"vn":       "",
		"filter:a": fmt.Sprintf("atempo=%.2f", rate),
		"loglevel": "quiet",
		"nostdin":  "",
	}).SetFfmpegPath(p.ffmpegPath).Silent(true)
}

// Args returns the ffmpeg arguments Play would use.
func (p *Player) Args(pos time.Duration, rate float64) []string {
	return p.stream(pos, rate).GetArgs()
}

// Play starts playback at pos, replacing any running process.
func (p *Player) Play(pos time.Duration, rate float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()

	cmd := p.stream(pos, rate).Compile()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	p.cmd = cmd
	go cmd.Wait()
	return nil
}

// Stop ends playback. Stopping an idle player is a no-op.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	return nil
}

func (p *Player) stopLocked() {
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	p.cmd = nil
}
