package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/metcalfc/lrr/internal/state"
	"github.com/metcalfc/lrr/internal/subtitle"
)

func (a *app) statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status [subtitles.srt]",
		Short: "Show the saved session",
		Long: `Show what is remembered from the last session. With a subtitle file,
also report whether the saved session belongs to it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			snap, err := a.store.Peek()
			if errors.Is(err, state.ErrNoSnapshot) {
				fmt.Fprintln(out, "No saved session.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Subtitles:  %s (%s)\n", snap.SubtitleName, snap.SubtitleFile)
			if snap.AudioFile != "" {
				fmt.Fprintf(out, "Audio:      %s\n", snap.AudioFile)
			}
			fmt.Fprintf(out, "Position:   %s\n", subtitle.FormatTimestamp(snap.Position()))
			fmt.Fprintf(out, "Bookmarks:  %d\n", len(snap.Bookmarks))
			fmt.Fprintf(out, "Words:      %d\n", len(snap.SavedWords))
			fmt.Fprintf(out, "Saved at:   %s\n", snap.SavedAt.Local().Format(time.DateTime))

			if len(args) == 1 {
				identity, err := state.ComputeHash(args[0])
				if err != nil {
					return err
				}
				if identity == snap.SubtitleFile {
					fmt.Fprintln(out, "Matches", args[0])
				} else {
					fmt.Fprintln(out, "Does not match", args[0])
				}
			}
			return nil
		},
	}
}

func (a *app) forgetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Delete the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Clear(); err != nil {
				return fmt.Errorf("forget session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved session deleted.")
			return nil
		},
	}
}
