package commands

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/relbuilder/internal/site"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite an existing manifest and templates"`
}

const starterManifest = `# Release manifest for relbuilder.
title: My Journal
volume: 1
description: ""
# base_url: https://example.org/releases

# Submissions are built in this order. Each identifier names a directory under
# submissions_dir containing one .tex source and one .yml metadata file.
content_ids: []

# Directory layout (defaults shown).
# submissions_dir: submissions
# templates_dir: templates
# output_dir: output
# assets_dir: assets

# Compile a combined volume PDF in addition to the per-submission PDFs.
# master_volume: false
`

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	if _, err := os.Stat(root.Config); err == nil && !i.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", root.Config)
	}
	if err := os.WriteFile(root.Config, []byte(starterManifest), 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", root.Config, err)
	}

	if err := site.WriteDefaultTemplates("templates", i.Force); err != nil {
		return err
	}
	for _, dir := range []string{"submissions", "assets"} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	fmt.Printf("Initialized release layout; edit %s and add submissions with 'relbuilder new'\n", root.Config)
	return nil
}
