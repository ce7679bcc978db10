// Package build runs the release pipeline: a single sequential pass from
// manifest to finished publication artifacts.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/relbuilder/internal/config"
	"git.home.luguber.info/inful/relbuilder/internal/latex"
	"git.home.luguber.info/inful/relbuilder/internal/site"
	"git.home.luguber.info/inful/relbuilder/internal/slug"
	"git.home.luguber.info/inful/relbuilder/internal/submission"
)

// Pipeline holds the explicit working state of one run: the loaded manifest,
// the resolved output directory, and the compiler runner. Nothing here
// outlives a single Run.
type Pipeline struct {
	cfg    *config.Config
	outDir string
	runner *latex.Runner
	report *Report
}

// New assembles a pipeline. outDir overrides the manifest's output directory
// when non-empty.
func New(cfg *config.Config, outDir string, runner *latex.Runner) *Pipeline {
	if outDir == "" {
		outDir = cfg.Paths.Output
	}
	if runner == nil {
		runner = latex.NewRunner()
	}
	return &Pipeline{cfg: cfg, outDir: outDir, runner: runner}
}

// Run executes the pipeline stages strictly in order: recreate the output
// directory, load submissions, compile and rename each PDF, render each item
// page, render the index, copy assets. Any fatal error aborts the run and may
// leave the output directory incomplete; the next run rebuilds it from scratch.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	p.report = NewReport()
	err := p.run(ctx)
	p.report.Finish(err)
	return p.report, err
}

func (p *Pipeline) run(ctx context.Context) error {
	slog.Info("Starting release build",
		"title", p.cfg.Title, "volume", p.cfg.Volume, "output", p.outDir)

	if err := p.runner.CheckAvailable(); err != nil {
		return err
	}

	// Output directory is destroyed and rebuilt, never incrementally updated.
	if err := p.stage("prepare", func() error {
		if err := os.RemoveAll(p.outDir); err != nil {
			return fmt.Errorf("clean output directory %s: %w", p.outDir, err)
		}
		if err := os.MkdirAll(p.outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", p.outDir, err)
		}
		return nil
	}); err != nil {
		return err
	}

	var items []submission.Item
	if err := p.stage("load", func() error {
		var err error
		items, err = submission.Load(p.cfg.Paths.Submissions, p.cfg.ContentIDs)
		return err
	}); err != nil {
		return err
	}
	p.report.Loaded = len(items)
	p.report.Skipped = len(p.cfg.ContentIDs) - len(items)

	renderer, err := site.NewRenderer(p.cfg.Paths.Templates)
	if err != nil {
		return err
	}
	content, err := site.TemplateItems(items)
	if err != nil {
		return err
	}
	release := p.cfg.TemplateData()

	if err := p.stage("compile", func() error {
		for i, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			slog.Info("Compiling submission", "permalink", item.Meta.Permalink)
			if err := p.runner.Compile(ctx, item.TexPath, p.outDir); err != nil {
				return err
			}
			if err := latex.Rename(p.outDir, item.TexPath, item.Meta.Permalink); err != nil {
				return err
			}
			p.report.Compiled++

			page, err := renderer.ItemPage(release, content, content[i])
			if err != nil {
				return err
			}
			dst := filepath.Join(p.outDir, item.Meta.Permalink+".html")
			if err := os.WriteFile(dst, page, 0o644); err != nil {
				return fmt.Errorf("write page %s: %w", dst, err)
			}
			p.report.Pages++
		}
		return nil
	}); err != nil {
		return err
	}

	if p.cfg.MasterVolume {
		if err := p.stage("master", func() error { return p.buildMasterVolume(ctx, renderer, release, content) }); err != nil {
			return err
		}
	}

	if err := p.stage("index", func() error {
		page, err := renderer.IndexPage(release, content)
		if err != nil {
			return err
		}
		dst := filepath.Join(p.outDir, "index.html")
		if err := os.WriteFile(dst, page, 0o644); err != nil {
			return fmt.Errorf("write index %s: %w", dst, err)
		}
		return nil
	}); err != nil {
		return err
	}

	if err := p.stage("assets", func() error {
		return site.CopyAssets(p.cfg.Paths.Assets, p.outDir)
	}); err != nil {
		return err
	}

	slog.Info("Release build complete",
		"output", p.outDir, "compiled", p.report.Compiled, "skipped", p.report.Skipped)
	return nil
}

// buildMasterVolume renders the combined-volume LaTeX source over the full
// content list, compiles it, and gives it a volume-level public name.
func (p *Pipeline) buildMasterVolume(ctx context.Context, renderer *site.Renderer, release map[string]any, content []map[string]any) error {
	tex, err := renderer.MasterVolumeTex(release, content)
	if err != nil {
		return err
	}
	texPath := filepath.Join(p.outDir, "master_release.tex")
	if err := os.WriteFile(texPath, tex, 0o644); err != nil {
		return fmt.Errorf("write master volume source: %w", err)
	}
	if err := p.runner.Compile(ctx, texPath, p.outDir); err != nil {
		return err
	}
	name := fmt.Sprintf("%s-volume-%s", slug.Make(p.cfg.Title), p.cfg.Volume)
	if err := latex.Rename(p.outDir, texPath, name); err != nil {
		return err
	}
	slog.Info("Built master volume", "pdf", name+".pdf")
	return nil
}

func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.report.StageDurations[name] = time.Since(start)
	if err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}
	return nil
}
