// Package commands implements the relbuilder subcommands.
package commands

import (
	"log/slog"
	"os"
)

// Global carries state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command grammar and global flags.
type CLI struct {
	Config  string `short:"c" help:"Release manifest path" default:"release-config.yml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build BuildCmd `cmd:"" help:"Build the release: compile PDFs, render pages, copy assets"`
	Check CheckCmd `cmd:"" help:"Load the manifest and submissions and report what would be built"`
	Init  InitCmd  `cmd:"" help:"Scaffold a starter manifest, templates, and directory layout"`
	New   NewCmd   `cmd:"" help:"Scaffold a submission directory for a new title"`
	Watch WatchCmd `cmd:"" help:"Build, then rebuild whenever release inputs change"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
