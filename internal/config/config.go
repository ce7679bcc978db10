// Package config loads the release manifest that drives a build.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Paths holds the directory layout overrides from the manifest.
type Paths struct {
	Submissions string `yaml:"submissions_dir"`
	Templates   string `yaml:"templates_dir"`
	Output      string `yaml:"output_dir"`
	Assets      string `yaml:"assets_dir"`
}

// Config is the release manifest: the ordered list of content identifiers
// plus release-wide parameters. Loaded once per run, immutable afterwards.
type Config struct {
	Title        string
	Volume       string
	Description  string
	BaseURL      string
	ContentIDs   []string
	MasterVolume bool
	Paths        Paths

	// Params carries every manifest key not claimed by a fixed field,
	// passed through to templates unmodified.
	Params map[string]any
}

// fixedKeys are manifest keys bound to typed fields; everything else lands in Params.
var fixedKeys = map[string]bool{
	"title": true, "volume": true, "release_volume": true,
	"description": true, "base_url": true, "content_ids": true,
	"master_volume": true, "submissions_dir": true, "templates_dir": true,
	"output_dir": true, "assets_dir": true,
}

// UnmarshalYAML decodes the manifest into the fixed fields and collects all
// remaining keys into Params. Content identifiers and the volume label may be
// written as YAML numbers; both are normalized to strings.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return err
	}

	c.Title = stringValue(raw["title"])
	c.Description = stringValue(raw["description"])
	c.BaseURL = stringValue(raw["base_url"])
	c.Volume = stringValue(raw["volume"])
	if c.Volume == "" {
		c.Volume = stringValue(raw["release_volume"])
	}
	if v, ok := raw["master_volume"].(bool); ok {
		c.MasterVolume = v
	}
	c.Paths = Paths{
		Submissions: stringValue(raw["submissions_dir"]),
		Templates:   stringValue(raw["templates_dir"]),
		Output:      stringValue(raw["output_dir"]),
		Assets:      stringValue(raw["assets_dir"]),
	}

	if ids, ok := raw["content_ids"].([]any); ok {
		c.ContentIDs = make([]string, 0, len(ids))
		for _, id := range ids {
			c.ContentIDs = append(c.ContentIDs, stringValue(id))
		}
	}

	c.Params = map[string]any{}
	for k, v := range raw {
		if !fixedKeys[k] {
			c.Params[k] = v
		}
	}
	return nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

// Load reads and validates the release manifest at configPath.
// A missing or malformed manifest is fatal; nothing downstream can run without it.
func Load(configPath string) (*Config, error) {
	// Pick up a .env file when present so ${VAR} references in the manifest resolve.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Note: .env file couldn't be loaded: %v\n", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", configPath, err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", configPath, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Paths.Submissions == "" {
		c.Paths.Submissions = "submissions"
	}
	if c.Paths.Templates == "" {
		c.Paths.Templates = "templates"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Assets == "" {
		c.Paths.Assets = "assets"
	}
}

// Validate checks the fields nothing downstream can proceed without.
func (c *Config) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("manifest is missing 'title'")
	}
	if c.Volume == "" {
		return fmt.Errorf("manifest is missing 'volume'")
	}
	return nil
}

// TemplateData returns the release parameters as a single map for template
// rendering: the fixed fields under their manifest names, then every
// passthrough parameter.
func (c *Config) TemplateData() map[string]any {
	data := map[string]any{
		"title":       c.Title,
		"volume":      c.Volume,
		"description": c.Description,
		"base_url":    c.BaseURL,
		"content_ids": c.ContentIDs,
	}
	for k, v := range c.Params {
		data[k] = v
	}
	return data
}
