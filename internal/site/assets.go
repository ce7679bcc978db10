package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// CopyAssets copies the static assets tree into the output directory under
// its own basename (e.g. assets/ -> <out>/assets/). A missing assets
// directory is a no-op; any other filesystem error is fatal.
func CopyAssets(assetsDir, outDir string) error {
	info, err := os.Stat(assetsDir)
	if os.IsNotExist(err) {
		slog.Debug("No assets directory, skipping copy", "dir", assetsDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat assets directory %s: %w", assetsDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("assets path %s is not a directory", assetsDir)
	}

	dest := filepath.Join(outDir, filepath.Base(assetsDir))
	if err := os.CopyFS(dest, os.DirFS(assetsDir)); err != nil {
		return fmt.Errorf("copy assets to %s: %w", dest, err)
	}
	slog.Info("Copied assets", "from", assetsDir, "to", dest)
	return nil
}
