package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/relbuilder/internal/config"
	"git.home.luguber.info/inful/relbuilder/internal/slug"
)

// NewCmd implements the 'new' command: scaffold a submission directory.
type NewCmd struct {
	Title string `arg:"" help:"Submission title"`
	ID    string `help:"Content identifier (defaults to the permalink slug)"`
}

func (n *NewCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	permalink := slug.Make(n.Title)
	if permalink == "" {
		return fmt.Errorf("title %q yields an empty permalink", n.Title)
	}
	id := n.ID
	if id == "" {
		id = permalink
	}

	dir := filepath.Join(cfg.Paths.Submissions, id)
	if _, err := os.Stat(dir); err == nil {
		return fmt.Errorf("submission directory %s already exists", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create submission directory %s: %w", dir, err)
	}

	meta := fmt.Sprintf("title: %s\npermalink: %s\nauthors: []\nabstract: \"\"\n", n.Title, permalink)
	if err := os.WriteFile(filepath.Join(dir, permalink+".yml"), []byte(meta), 0o644); err != nil {
		return fmt.Errorf("write metadata stub: %w", err)
	}

	texStub := fmt.Sprintf("\\documentclass{article}\n\\title{%s}\n\\begin{document}\n\\maketitle\n\\end{document}\n", n.Title)
	if err := os.WriteFile(filepath.Join(dir, permalink+".tex"), []byte(texStub), 0o644); err != nil {
		return fmt.Errorf("write source stub: %w", err)
	}

	fmt.Printf("Created %s; add %q to content_ids in %s to include it\n", dir, id, root.Config)
	return nil
}
