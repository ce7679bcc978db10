package commands

import (
	"context"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/relbuilder/internal/build"
	"git.home.luguber.info/inful/relbuilder/internal/config"
	"git.home.luguber.info/inful/relbuilder/internal/latex"
)

// BuildCmd implements the 'build' command: the full pipeline from manifest to
// publication artifacts.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory (overrides the manifest)"`
	Report string `help:"Write a JSON build report to this path (outside the output tree)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	outDir := b.Output
	if outDir == "" {
		outDir = cfg.Paths.Output
	}

	pipeline := build.New(cfg, outDir, latex.NewRunner())
	report, runErr := pipeline.Run(context.Background())

	if b.Report != "" {
		if err := report.Persist(b.Report); err != nil {
			if runErr != nil {
				slog.Error("Failed to persist build report", "error", err)
			} else {
				runErr = err
			}
		} else {
			slog.Info("Wrote build report", "path", b.Report, "build_id", report.ID)
		}
	}

	if runErr != nil {
		return runErr
	}
	fmt.Printf("Release build complete: %d PDFs, %d pages in %s\n",
		report.Compiled, report.Pages+1, outDir)
	return nil
}
