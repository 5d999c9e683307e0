// Package config loads lrr settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/metcalfc/lrr/internal/fsutil"
	"github.com/metcalfc/lrr/internal/playback"
)

const fileName = "config.yaml"

// Config holds user settings. Command-line flags override these values.
type Config struct {
	// Where the session snapshot and log file live. Empty means XDG_STATE_HOME/lrr.
	StateDir string `yaml:"state_dir"`
	// Where export files are written.
	ExportDir string `yaml:"export_dir"`

	SeekSeconds float64 `yaml:"seek_seconds"`
	Rate        float64 `yaml:"rate"`

	// Optional YAML glossary (word: definition) consulted before the built-in list.
	DictionaryFile string `yaml:"dictionary_file"`

	// Save the session on exit without asking.
	Autosave bool `yaml:"autosave"`
	// Ask ffprobe for the audio duration.
	ProbeAudio bool `yaml:"probe_audio"`
	// Play the audio file through ffmpeg while following along.
	PlayAudio bool `yaml:"play_audio"`

	path string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ExportDir:   ".",
		SeekSeconds: 5,
		Rate:        1.0,
		Autosave:    true,
		ProbeAudio:  true,
		PlayAudio:   true,
	}
}

// DefaultPath returns XDG_CONFIG_HOME/lrr/config.yaml or ~/.config/lrr/config.yaml
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "lrr", fileName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "lrr", fileName)
}

// Load reads path over the defaults. An empty path means DefaultPath, which
// may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	// Fields absent from the file keep their defaults.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Write saves cfg as YAML at path.
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string { return c.path }

// SeekStep returns the seek distance as a duration.
func (c *Config) SeekStep() time.Duration {
	return time.Duration(c.SeekSeconds * float64(time.Second))
}

func (c *Config) normalize() {
	c.StateDir = expandHome(strings.TrimSpace(c.StateDir))
	c.ExportDir = expandHome(strings.TrimSpace(c.ExportDir))
	c.DictionaryFile = expandHome(strings.TrimSpace(c.DictionaryFile))
	if c.ExportDir == "" {
		c.ExportDir = "."
	}

	if c.SeekSeconds <= 0 {
		c.SeekSeconds = 5
	}
	if c.Rate < playback.MinRate || c.Rate > playback.MaxRate {
		c.Rate = 1.0
	}
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
