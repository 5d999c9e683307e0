//go:build !gui

package main

import (
	"fmt"
	"os"

	"github.com/metcalfc/lrr/internal/cli"
	"github.com/metcalfc/lrr/internal/session"
	"github.com/metcalfc/lrr/internal/tui"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func runTerminal(s *session.Session, env cli.Env) error {
	return tui.Run(s, tui.Options{
		SeekStep:  env.Config.SeekStep(),
		Exports:   env.Exports,
		Clipboard: env.Clipboard,
		Logger:    env.Logger,
	})
}

func main() {
	build := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(build, runTerminal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
