package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/metcalfc/lrr/internal/annotation"
	"github.com/metcalfc/lrr/internal/export"
	"github.com/metcalfc/lrr/internal/session"
)

func (a *app) exportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved bookmarks or words for a subtitle file",
	}
	cmd.AddCommand(
		a.exportSubcommand("bookmarks", "Export bookmarked sentences",
			(*session.Session).ExportBookmarks, export.Writer.Bookmarks),
		a.exportSubcommand("words", "Export saved vocabulary words",
			(*session.Session).ExportWords, export.Writer.Words),
	)
	return cmd
}

func (a *app) exportSubcommand(
	name, short string,
	text func(*session.Session) (string, error),
	write func(export.Writer, string) (string, error),
) *cobra.Command {
	var (
		stdout bool
		toClip bool
		dir    string
	)

	cmd := &cobra.Command{
		Use:   name + " <subtitles.srt>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(args[0], session.Options{})
			if err != nil {
				return err
			}

			out, err := text(s)
			if errors.Is(err, annotation.ErrEmptyExport) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Nothing to export: no saved %s for %s\n", name, s.Name())
				return nil
			}
			if err != nil {
				return err
			}

			switch {
			case stdout:
				fmt.Fprintln(cmd.OutOrStdout(), out)
			case toClip:
				if err := (export.Clipboard{}).Copy(out); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to clipboard\n", name)
			default:
				if dir == "" {
					dir = a.cfg.ExportDir
				}
				path, err := write(export.Writer{Dir: dir}, out)
				if err != nil {
					return fmt.Errorf("export %s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %s: %s\n", name, path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print to stdout instead of writing a file")
	cmd.Flags().BoolVarP(&toClip, "clipboard", "c", false, "Copy to the clipboard")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Output directory (default from config)")
	return cmd
}
