// Package cli defines the lrr command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metcalfc/lrr/internal/config"
	"github.com/metcalfc/lrr/internal/dictionary"
	"github.com/metcalfc/lrr/internal/export"
	"github.com/metcalfc/lrr/internal/logging"
	"github.com/metcalfc/lrr/internal/session"
	"github.com/metcalfc/lrr/internal/state"
)

// BuildInfo is injected via ldflags in main.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Env is what an interactive frontend needs besides the session.
type Env struct {
	Config    *config.Config
	Logger    *logging.Logger
	Exports   export.Writer
	Clipboard export.Clipboard
}

// Runner drives an interactive session until the user quits.
type Runner func(s *session.Session, env Env) error

type app struct {
	build  BuildInfo
	runner Runner

	verbose    bool
	configPath string
	stateDir   string

	cfg    *config.Config
	logger *logging.Logger
	store  *state.Store
}

// Execute runs the command tree with runner as the play frontend.
func Execute(build BuildInfo, runner Runner) error {
	return NewRootCommand(build, runner).Execute()
}

// NewRootCommand builds the command tree.
func NewRootCommand(build BuildInfo, runner Runner) *cobra.Command {
	a := &app{build: build, runner: runner}

	rootCmd := &cobra.Command{
		Use:   "lrr",
		Short: "Listen, read, repeat: a subtitle companion for listening practice",
		Long: `lrr shows the sentences of a SubRip subtitle file in step with its audio,
lets you bookmark sentences and save vocabulary words, and remembers them
between sessions.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(false)
		},
	}

	rootCmd.PersistentFlags().
		BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/lrr/config.yaml)")
	rootCmd.PersistentFlags().
		StringVar(&a.stateDir, "state-dir", "", "Directory for the saved session")

	rootCmd.AddCommand(
		a.playCommand(),
		a.cuesCommand(),
		a.exportCommand(),
		a.statusCommand(),
		a.forgetCommand(),
		a.configCommand(),
		a.versionCommand(),
	)
	return rootCmd
}

// setup loads config and storage. A lenient setup falls back to the
// defaults when an explicit config file does not exist yet.
func (a *app) setup(lenient bool) error {
	a.logger = logging.NewLogger(a.verbose)

	cfg, err := config.Load(a.configPath)
	if lenient && errors.Is(err, os.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return err
	}
	if a.stateDir != "" {
		cfg.StateDir = a.stateDir
	}
	a.cfg = cfg

	// Persistence is best-effort; a nil store just means nothing is remembered.
	store, err := state.NewStore(cfg.StateDir)
	if err != nil {
		a.logger.Warnw("Session storage unavailable", "error", err)
	}
	a.store = store
	return nil
}

func (a *app) dictionary() dictionary.Lookup {
	chain := dictionary.Chain{}
	if a.cfg.DictionaryFile != "" {
		g, err := dictionary.LoadGlossary(a.cfg.DictionaryFile)
		if err != nil {
			a.logger.Warnw("Glossary not loaded", "error", err)
		} else {
			chain = append(chain, g)
		}
	}
	return append(chain, dictionary.Stub())
}

func (a *app) open(path string, opts session.Options) (*session.Session, error) {
	opts.Store = a.store
	opts.Dictionary = a.dictionary()
	if opts.Logger == nil {
		opts.Logger = a.logger
	}
	return session.Open(path, opts)
}

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lrr %s (commit: %s, built: %s)\n",
				a.build.Version, a.build.Commit, a.build.Date)
		},
	}
}

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(true)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists: %s", path)
			}
			if err := config.Default().Write(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config and state locations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config: %s\n", a.cfg.Path())
			if a.store != nil {
				fmt.Fprintf(out, "session: %s\n", a.store.Path())
			}
		},
	})
	return cmd
}
