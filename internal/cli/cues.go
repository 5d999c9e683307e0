package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/metcalfc/lrr/internal/session"
	"github.com/metcalfc/lrr/internal/subtitle"
)

func (a *app) cuesCommand() *cobra.Command {
	var (
		bookmarked bool
		at         string
	)

	cmd := &cobra.Command{
		Use:   "cues <subtitles.srt>",
		Short: "List the parsed sentences of a subtitle file",
		Long: `List every sentence record with its id and time range.

Examples:
  lrr cues episode.srt
  lrr cues --bookmarked episode.srt
  lrr cues --at 00:01:05,500 episode.srt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(args[0], session.Options{})
			if err != nil {
				return err
			}

			cues := s.Cues
			if bookmarked {
				cues = s.Annotations.FilterBookmarked(cues)
			}
			if at != "" {
				t, err := subtitle.ParseTimestamp(at)
				if err != nil {
					return err
				}
				id, ok := s.Timeline.ActiveID(t)
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "No sentence at", at)
					return nil
				}
				cues = filterID(cues, id)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range cues {
				mark := " "
				if s.Annotations.IsBookmarked(c.ID) {
					mark = "*"
				}
				fmt.Fprintf(w, "%s%s\t%s --> %s\t%s\n", mark, c.ID,
					subtitle.FormatTimestamp(c.Start), subtitle.FormatTimestamp(c.End), c.Text)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			a.logger.Infow("Listed cues", "file", args[0], "cues", len(cues), "skipped", len(s.Skipped))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&bookmarked, "bookmarked", "b", false, "Only show bookmarked sentences")
	cmd.Flags().StringVar(&at, "at", "", "Only show the sentence active at this timestamp")
	return cmd
}

func filterID(cues []subtitle.Cue, id subtitle.ID) []subtitle.Cue {
	for _, c := range cues {
		if c.ID == id {
			return []subtitle.Cue{c}
		}
	}
	return nil
}
