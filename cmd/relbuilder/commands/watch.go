package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/relbuilder/internal/build"
	"git.home.luguber.info/inful/relbuilder/internal/config"
	"git.home.luguber.info/inful/relbuilder/internal/latex"
	"git.home.luguber.info/inful/relbuilder/internal/watch"
)

// WatchCmd implements the 'watch' command: one build up front, then a rebuild
// per debounced burst of input changes, until interrupted.
type WatchCmd struct {
	Output   string        `short:"o" help:"Output directory (overrides the manifest)"`
	Debounce time.Duration `default:"2s" help:"Quiet period before a rebuild"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The manifest is reloaded on every rebuild so content_ids edits take effect.
	rebuild := func(ctx context.Context) error {
		cfg, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		_, err = build.New(cfg, w.Output, latex.NewRunner()).Run(ctx)
		return err
	}

	if err := rebuild(ctx); err != nil {
		slog.Error("Initial build failed, watching for fixes", "error", err)
	}

	watcher, err := watch.New(w.Debounce)
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range []string{root.Config, cfg.Paths.Submissions, cfg.Paths.Templates, cfg.Paths.Assets} {
		if err := watcher.Add(path); err != nil {
			return err
		}
	}

	slog.Info("Watching for changes (ctrl-c to stop)", "manifest", root.Config)
	return watcher.Run(ctx, rebuild)
}
