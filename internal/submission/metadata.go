// Package submission locates and loads the per-item inputs of a release:
// one metadata record and one LaTeX source per content identifier.
package submission

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Metadata is one submission's metadata record: the required fields as typed
// members, every other key preserved in Extra for template passthrough.
type Metadata struct {
	Title     string
	Permalink string

	// Set once at load time, never mutated afterwards.
	ID      string
	PDFLink string

	Extra map[string]any
}

// UnmarshalYAML captures title and permalink and keeps all remaining keys in Extra.
func (m *Metadata) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	if v, ok := raw["title"].(string); ok {
		m.Title = v
	}
	if v, ok := raw["permalink"].(string); ok {
		m.Permalink = v
	}

	m.Extra = map[string]any{}
	for k, v := range raw {
		if k != "title" && k != "permalink" {
			m.Extra[k] = v
		}
	}
	return nil
}

// ParseMetadataFile reads and parses a submission metadata file.
func ParseMetadataFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata %s: %w", path, err)
	}
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse metadata %s: %w", path, err)
	}
	return &m, nil
}

// Enrich injects the content identifier and the derived public PDF filename.
// Called exactly once, at load time.
func (m *Metadata) Enrich(id string) {
	m.ID = id
	m.PDFLink = m.Permalink + ".pdf"
}

// Complete reports whether the record carries both required fields.
func (m *Metadata) Complete() bool {
	return m.Title != "" && m.Permalink != ""
}

// TemplateData returns the record as a single map for template rendering:
// required and derived fields under their conventional names, then every
// passthrough field.
func (m *Metadata) TemplateData() map[string]any {
	data := map[string]any{
		"title":     m.Title,
		"permalink": m.Permalink,
		"id":        m.ID,
		"pdf_link":  m.PDFLink,
	}
	for k, v := range m.Extra {
		data[k] = v
	}
	return data
}
