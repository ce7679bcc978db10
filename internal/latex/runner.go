// Package latex drives the external LaTeX compiler that turns submission
// sources into PDFs.
package latex

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultBin is the compiler invoked when no override is configured.
const DefaultBin = "latexmk"

// binEnv overrides the compiler binary, for tests and alternative TeX distributions.
const binEnv = "RELBUILDER_LATEX_BIN"

// Runner invokes the external LaTeX compiler as a blocking subprocess.
type Runner struct {
	Bin string
}

// NewRunner returns a Runner using RELBUILDER_LATEX_BIN when set, latexmk otherwise.
func NewRunner() *Runner {
	bin := os.Getenv(binEnv)
	if bin == "" {
		bin = DefaultBin
	}
	return &Runner{Bin: bin}
}

// CheckAvailable verifies the compiler binary can be resolved before the
// output directory is torn down.
func (r *Runner) CheckAvailable() error {
	if _, err := exec.LookPath(r.Bin); err != nil {
		return fmt.Errorf("latex compiler %q not found in PATH: %w", r.Bin, err)
	}
	return nil
}

// Compile runs the compiler against texPath with PDF output into outDir.
// The command is executed twice; the second pass resolves cross-references.
// Output is captured and surfaced only on failure, which aborts the run.
func (r *Runner) Compile(ctx context.Context, texPath, outDir string) error {
	for pass := 1; pass <= 2; pass++ {
		var output bytes.Buffer
		cmd := exec.CommandContext(ctx, r.Bin,
			"-pdf",
			"-output-directory="+outDir,
			texPath,
		)
		cmd.Stdout = &output
		cmd.Stderr = &output

		slog.Debug("Running latex compiler", "bin", r.Bin, "source", texPath, "pass", pass)
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error compiling %s:\n%s\n", texPath, output.String())
			return fmt.Errorf("compile %s (pass %d): %w", texPath, pass, err)
		}
	}
	return nil
}

// PDFName returns the PDF filename the compiler produces for a source file.
func PDFName(texPath string) string {
	base := filepath.Base(texPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}

// Rename moves the compiler's output PDF to its permalink-based public name,
// decoupling the published filename from the internal source filename.
func Rename(outDir, texPath, permalink string) error {
	from := filepath.Join(outDir, PDFName(texPath))
	to := filepath.Join(outDir, permalink+".pdf")
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("rename %s to %s: %w", from, to, err)
	}
	return nil
}
