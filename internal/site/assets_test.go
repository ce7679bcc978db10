package site

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyAssets(t *testing.T) {
	assets := filepath.Join(t.TempDir(), "assets")
	require.NoError(t, os.MkdirAll(filepath.Join(assets, "fonts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "style.css"), []byte("body{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "fonts", "mono.woff2"), []byte("font"), 0o644))

	out := t.TempDir()
	require.NoError(t, CopyAssets(assets, out))

	data, err := os.ReadFile(filepath.Join(out, "assets", "style.css"))
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(data))
	assert.FileExists(t, filepath.Join(out, "assets", "fonts", "mono.woff2"))
}

func TestCopyAssetsAbsentDirIsNoop(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, CopyAssets(filepath.Join(t.TempDir(), "assets"), out))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCopyAssetsRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "assets")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	require.Error(t, CopyAssets(file, t.TempDir()))
}
