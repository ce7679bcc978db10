package site

import (
	"html/template"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/relbuilder/internal/submission"
)

func release() map[string]any {
	return map[string]any{
		"title":       "Annual Review of Automata",
		"volume":      "12",
		"description": "The twelfth release.",
	}
}

func contentList() []map[string]any {
	return []map[string]any{
		{"title": "First Paper", "permalink": "first-paper", "pdf_link": "first-paper.pdf"},
		{"title": "Second Paper", "permalink": "second-paper", "pdf_link": "second-paper.pdf"},
	}
}

func TestDefaultTemplatesItemPage(t *testing.T) {
	r, err := NewRenderer(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)

	out, err := r.ItemPage(release(), contentList(), contentList()[0])
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "First Paper")
	assert.Contains(t, html, `href="first-paper.pdf"`)
	assert.Contains(t, html, `href="second-paper.html"`) // cross-link navigation
	assert.Contains(t, html, "Annual Review of Automata")
}

func TestDefaultTemplatesIndexPage(t *testing.T) {
	r, err := NewRenderer(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)

	out, err := r.IndexPage(release(), contentList())
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Volume 12")
	assert.Contains(t, html, `href="first-paper.html"`)
	assert.Contains(t, html, `href="second-paper.html"`)
}

func TestRendererPrefersOnDiskTemplates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PaperTemplate),
		[]byte(`custom-item:{{ index .Item "title" }}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReleaseTemplate),
		[]byte(`custom-index:{{ index .Release "title" }}`), 0o644))

	r, err := NewRenderer(dir)
	require.NoError(t, err)

	out, err := r.ItemPage(release(), contentList(), contentList()[0])
	require.NoError(t, err)
	assert.Equal(t, "custom-item:First Paper", string(out))

	out, err = r.IndexPage(release(), contentList())
	require.NoError(t, err)
	assert.Equal(t, "custom-index:Annual Review of Automata", string(out))
}

func TestRendererBrokenTemplateIsFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PaperTemplate),
		[]byte(`{{ .Unclosed`), 0o644))

	_, err := NewRenderer(dir)
	require.Error(t, err)
}

func TestRenderErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, PaperTemplate),
		[]byte(`{{ .Release.missing_field }}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReleaseTemplate),
		[]byte(`ok`), 0o644))

	r, err := NewRenderer(dir)
	require.NoError(t, err)

	_, err = r.ItemPage(release(), contentList(), contentList()[0])
	require.Error(t, err)
}

func TestMasterVolumeTex(t *testing.T) {
	r, err := NewRenderer(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)

	out, err := r.MasterVolumeTex(release(), contentList())
	require.NoError(t, err)

	tex := string(out)
	assert.Contains(t, tex, `\includepdf[pages=-]{first-paper.pdf}`)
	assert.Contains(t, tex, "Volume 12")
}

func TestTemplateItemsRendersAbstracts(t *testing.T) {
	meta := &submission.Metadata{
		Title:     "T",
		Permalink: "t",
		Extra:     map[string]any{"abstract": "We study *studies*."},
	}
	meta.Enrich("1")

	items, err := TemplateItems([]submission.Item{{Meta: meta, TexPath: "t.tex"}})
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Contains(t, string(items[0]["abstract_html"].(template.HTML)), "<em>studies</em>")
}

func TestWriteDefaultTemplates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")
	require.NoError(t, WriteDefaultTemplates(dir, false))
	assert.FileExists(t, filepath.Join(dir, PaperTemplate))
	assert.FileExists(t, filepath.Join(dir, ReleaseTemplate))
	assert.FileExists(t, filepath.Join(dir, MasterTemplate))

	// Without force an existing file survives.
	custom := filepath.Join(dir, PaperTemplate)
	require.NoError(t, os.WriteFile(custom, []byte("mine"), 0o644))
	require.NoError(t, WriteDefaultTemplates(dir, false))
	data, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))

	// With force it is replaced.
	require.NoError(t, WriteDefaultTemplates(dir, true))
	data, err = os.ReadFile(custom)
	require.NoError(t, err)
	assert.NotEqual(t, "mine", string(data))
}
