package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/metcalfc/lrr/internal/export"
	"github.com/metcalfc/lrr/internal/logging"
	"github.com/metcalfc/lrr/internal/playback"
	"github.com/metcalfc/lrr/internal/session"
	"github.com/metcalfc/lrr/internal/state"
)

const logFileName = "lrr.log"

func (a *app) playCommand() *cobra.Command {
	var (
		fresh   bool
		rate    float64
		noProbe bool
		mute    bool
	)

	cmd := &cobra.Command{
		Use:   "play <subtitles.srt> [audio]",
		Short: "Follow a subtitle file interactively",
		Long: `Play the audio file and highlight the subtitle sentence being spoken.
Audio is played through ffmpeg; without an audio file (or with --mute)
the sentences follow a silent clock.

The saved bookmarks, words and position are restored when the same
subtitle file is opened again.

Examples:
  lrr play episode.srt episode.mp3
  lrr play --fresh episode.srt
  lrr play --rate 0.75 episode.srt episode.mp3`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.runner == nil {
				return errors.New("no interactive frontend available")
			}

			audio := ""
			if len(args) > 1 {
				audio = args[1]
			}

			// The frontend owns the terminal, so log to a file instead.
			logger := a.fileLogger()
			defer logger.Sync()

			s, err := a.open(args[0], session.Options{
				AudioPath:  audio,
				Fresh:      fresh,
				ProbeAudio: a.cfg.ProbeAudio && !noProbe,
				PlayAudio:  a.cfg.PlayAudio && !mute,
				Logger:     logger,
			})
			if err != nil {
				return err
			}
			defer s.Close()
			if len(s.Cues) == 0 {
				return fmt.Errorf("no subtitles found in %s", args[0])
			}

			s.Clock.Rate = a.cfg.Rate
			if cmd.Flags().Changed("rate") {
				if rate < playback.MinRate || rate > playback.MaxRate {
					return fmt.Errorf("rate %.2f out of range %.2g-%.2g", rate, playback.MinRate, playback.MaxRate)
				}
				s.Clock.Rate = rate
			}

			env := Env{
				Config:  a.cfg,
				Logger:  logger,
				Exports: export.Writer{Dir: a.cfg.ExportDir},
			}
			if err := a.runner(s, env); err != nil {
				return err
			}

			if a.cfg.Autosave {
				if err := s.Save(); err != nil && !errors.Is(err, state.ErrStorageUnavailable) {
					return fmt.Errorf("save session: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "Ignore the saved session")
	cmd.Flags().Float64VarP(&rate, "rate", "r", 1.0,
		fmt.Sprintf("Playback rate (%.2g-%.2g)", playback.MinRate, playback.MaxRate))
	cmd.Flags().BoolVar(&noProbe, "no-probe", false, "Do not run ffprobe on the audio file")
	cmd.Flags().BoolVarP(&mute, "mute", "m", false, "Follow the subtitles without playing the audio")
	return cmd
}

func (a *app) fileLogger() *logging.Logger {
	dir := a.cfg.StateDir
	if dir == "" {
		dir = state.StateDir()
	}
	logger, err := logging.NewFileLogger(filepath.Join(dir, logFileName), a.verbose)
	if err != nil {
		return logging.Nop()
	}
	return logger
}
