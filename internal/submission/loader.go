package submission

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Item pairs a submission's metadata with the path to its LaTeX source.
type Item struct {
	Meta    *Metadata
	TexPath string
}

// Load walks the manifest's content identifiers in order and assembles the
// release content list. A submission missing its directory, metadata file, or
// source file is skipped with a warning; the rest of the release continues.
// A metadata file that exists but cannot be parsed is fatal.
func Load(submissionsDir string, contentIDs []string) ([]Item, error) {
	items := make([]Item, 0, len(contentIDs))

	for _, id := range contentIDs {
		dir := filepath.Join(submissionsDir, id)

		metaFile := findByExt(dir, ".yml", ".yaml")
		texFile := findByExt(dir, ".tex")
		if metaFile == "" || texFile == "" {
			slog.Warn("Missing files in submission directory, skipping", "id", id, "dir", dir)
			continue
		}

		meta, err := ParseMetadataFile(filepath.Join(dir, metaFile))
		if err != nil {
			return nil, err
		}
		if !meta.Complete() {
			slog.Warn("Metadata is missing title or permalink, skipping", "id", id, "file", metaFile)
			continue
		}
		meta.Enrich(id)

		items = append(items, Item{Meta: meta, TexPath: filepath.Join(dir, texFile)})
		slog.Info("Loaded submission", "id", id, "title", meta.Title)
	}

	return items, nil
}

// findByExt returns the first directory entry (lexical order) whose name ends
// in one of the given extensions, or "" if none exists or the directory is
// unreadable. Additional files in the directory are ignored.
func findByExt(dir string, exts ...string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range exts {
			if strings.HasSuffix(e.Name(), ext) {
				return e.Name()
			}
		}
	}
	return ""
}
