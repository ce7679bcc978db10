package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/relbuilder/internal/config"
	"git.home.luguber.info/inful/relbuilder/internal/latex"
	"git.home.luguber.info/inful/relbuilder/internal/submission"
)

// CheckCmd implements the 'check' command: load everything, compile nothing.
type CheckCmd struct{}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	items, err := submission.Load(cfg.Paths.Submissions, cfg.ContentIDs)
	if err != nil {
		return err
	}

	fmt.Printf("%s, volume %s\n", cfg.Title, cfg.Volume)
	for _, item := range items {
		fmt.Printf("  %-8s %-30s %s\n", item.Meta.ID, item.Meta.Permalink, item.Meta.Title)
	}
	if skipped := len(cfg.ContentIDs) - len(items); skipped > 0 {
		fmt.Printf("%d of %d submissions would be skipped (see warnings above)\n",
			skipped, len(cfg.ContentIDs))
	} else {
		fmt.Printf("All %d submissions are complete\n", len(items))
	}

	if err := latex.NewRunner().CheckAvailable(); err != nil {
		fmt.Printf("Note: %v\n", err)
	}
	if _, err := os.Stat(cfg.Paths.Templates); os.IsNotExist(err) {
		fmt.Printf("Note: templates directory %s not found, built-in templates will be used\n",
			cfg.Paths.Templates)
	}
	return nil
}
