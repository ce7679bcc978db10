package latex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompiler writes a shell script that mimics latexmk: it parses
// -output-directory=<dir> and the source path from its arguments and drops a
// <base>.pdf there. With fail=true it prints to both streams and exits 1.
func stubCompiler(t *testing.T, fail bool) string {
	t.Helper()
	script := `#!/bin/sh
outdir=""
src=""
for arg in "$@"; do
  case "$arg" in
    -output-directory=*) outdir="${arg#-output-directory=}" ;;
    -*) ;;
    *) src="$arg" ;;
  esac
done
`
	if fail {
		script += `echo "stub stdout"; echo "stub stderr" >&2; exit 1
`
	} else {
		script += `base=$(basename "$src" .tex)
echo "fake pdf" > "$outdir/$base.pdf"
`
	}
	path := filepath.Join(t.TempDir(), "latexmk-stub")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestCompileProducesPDF(t *testing.T) {
	outDir := t.TempDir()
	srcDir := t.TempDir()
	tex := filepath.Join(srcDir, "a.tex")
	require.NoError(t, os.WriteFile(tex, []byte(`\documentclass{article}`), 0o644))

	r := &Runner{Bin: stubCompiler(t, false)}
	require.NoError(t, r.CheckAvailable())
	require.NoError(t, r.Compile(context.Background(), tex, outDir))

	assert.FileExists(t, filepath.Join(outDir, "a.pdf"))
}

func TestCompileFailurePropagates(t *testing.T) {
	r := &Runner{Bin: stubCompiler(t, true)}
	err := r.Compile(context.Background(), "whatever.tex", t.TempDir())
	require.Error(t, err)
}

func TestCheckAvailableMissingBinary(t *testing.T) {
	r := &Runner{Bin: "definitely-not-a-latex-compiler"}
	require.Error(t, r.CheckAvailable())
}

func TestNewRunnerHonorsEnvOverride(t *testing.T) {
	t.Setenv(binEnv, "/opt/tex/bin/lualatexmk")
	assert.Equal(t, "/opt/tex/bin/lualatexmk", NewRunner().Bin)

	t.Setenv(binEnv, "")
	assert.Equal(t, DefaultBin, NewRunner().Bin)
}

func TestPDFName(t *testing.T) {
	assert.Equal(t, "a.pdf", PDFName("/sub/1/a.tex"))
	assert.Equal(t, "paper.pdf", PDFName("paper.tex"))
}

func TestRename(t *testing.T) {
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "a.pdf"), []byte("pdf"), 0o644))

	require.NoError(t, Rename(outDir, "/sub/1/a.tex", "paper-one"))
	assert.FileExists(t, filepath.Join(outDir, "paper-one.pdf"))
	assert.NoFileExists(t, filepath.Join(outDir, "a.pdf"))
}

func TestRenameMissingSourcePDF(t *testing.T) {
	require.Error(t, Rename(t.TempDir(), "a.tex", "paper-one"))
}
