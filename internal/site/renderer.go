// Package site renders the release's web pages and copies static assets.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	texttemplate "text/template"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/relbuilder/internal/submission"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

// Template names consumed by the renderer.
const (
	PaperTemplate   = "paper.html.tmpl"
	ReleaseTemplate = "release.html.tmpl"
	MasterTemplate  = "master_release.tex.tmpl"
)

// PageData is the render context for both page templates. Item is nil when
// rendering the release index.
type PageData struct {
	Release map[string]any
	Content []map[string]any
	Item    map[string]any
}

// Renderer renders item pages and the release index. HTML templates come from
// the configured templates directory when it exists, the embedded defaults
// otherwise. Rendering is pure; any template error propagates and aborts the run.
type Renderer struct {
	html   *template.Template
	master *texttemplate.Template
}

// NewRenderer parses the page templates from templatesDir, falling back to
// the embedded defaults when the directory is absent.
func NewRenderer(templatesDir string) (*Renderer, error) {
	var (
		html *template.Template
		err  error
	)
	if _, statErr := os.Stat(templatesDir); statErr == nil {
		html, err = template.New("site").
			Option("missingkey=error").
			ParseGlob(filepath.Join(templatesDir, "*.html.tmpl"))
	} else {
		html, err = template.New("site").
			Option("missingkey=error").
			ParseFS(defaultTemplates, "templates/*.html.tmpl")
	}
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	// The master volume template is LaTeX, so it goes through text/template
	// to keep HTML escaping out of TeX source.
	master, err := masterTemplate(templatesDir)
	if err != nil {
		return nil, err
	}

	return &Renderer{html: html, master: master}, nil
}

func masterTemplate(templatesDir string) (*texttemplate.Template, error) {
	onDisk := filepath.Join(templatesDir, MasterTemplate)
	if _, err := os.Stat(onDisk); err == nil {
		t, err := texttemplate.New(MasterTemplate).Option("missingkey=error").ParseFiles(onDisk)
		if err != nil {
			return nil, fmt.Errorf("parse master volume template: %w", err)
		}
		return t, nil
	}
	t, err := texttemplate.New("master").Option("missingkey=error").ParseFS(defaultTemplates, "templates/"+MasterTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse embedded master volume template: %w", err)
	}
	return t, nil
}

// ItemPage renders one submission's page.
func (r *Renderer) ItemPage(release map[string]any, content []map[string]any, item map[string]any) ([]byte, error) {
	return r.render(PaperTemplate, PageData{Release: release, Content: content, Item: item})
}

// IndexPage renders the release index listing all submissions.
func (r *Renderer) IndexPage(release map[string]any, content []map[string]any) ([]byte, error) {
	return r.render(ReleaseTemplate, PageData{Release: release, Content: content})
}

func (r *Renderer) render(name string, data PageData) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.html.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// MasterVolumeTex renders the combined-volume LaTeX source.
func (r *Renderer) MasterVolumeTex(release map[string]any, content []map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.master.ExecuteTemplate(&buf, MasterTemplate, PageData{Release: release, Content: content}); err != nil {
		return nil, fmt.Errorf("render %s: %w", MasterTemplate, err)
	}
	return buf.Bytes(), nil
}

// TemplateItems converts loaded submissions into template render maps. An
// `abstract` metadata field written in Markdown is additionally exposed as
// pre-rendered HTML under `abstract_html`.
func TemplateItems(items []submission.Item) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		data := item.Meta.TemplateData()
		if abstract, ok := data["abstract"].(string); ok && abstract != "" {
			var buf bytes.Buffer
			if err := goldmark.Convert([]byte(abstract), &buf); err != nil {
				return nil, fmt.Errorf("render abstract for %s: %w", item.Meta.Permalink, err)
			}
			data["abstract_html"] = template.HTML(buf.String())
		}
		out = append(out, data)
	}
	return out, nil
}

// WriteDefaultTemplates materializes the embedded templates into dir, for the
// init scaffold. Existing files are only replaced when force is set.
func WriteDefaultTemplates(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create templates directory: %w", err)
	}
	for _, name := range []string{PaperTemplate, ReleaseTemplate, MasterTemplate} {
		dst := filepath.Join(dir, name)
		if _, err := os.Stat(dst); err == nil && !force {
			continue
		}
		data, err := defaultTemplates.ReadFile("templates/" + name)
		if err != nil {
			return fmt.Errorf("read embedded template %s: %w", name, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write template %s: %w", dst, err)
		}
	}
	return nil
}
