// Package catalog holds the static SA legal reference content: frameworks,
// courts, legislation, ethics guidance, practice prompts, document templates,
// workflows, practice presets and quick templates.
//
// The data ships inside the binary as YAML and is decoded once. Every
// accessor is a linear scan over ordered slices; a miss returns nil or false.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"sync"

	"legalprompt-backend/models"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ErrInvalidCatalog is returned when embedded data violates a catalog invariant
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the immutable set of reference records
type Catalog struct {
	frameworks      []models.Framework
	courts          []models.Court
	legislation     []models.Legislation
	guidelines      []models.EthicsGuideline
	scenarios       []models.AIUseScenario
	practicePrompts []models.PracticeAreaPrompt
	documents       []models.DocumentTemplate
	workflows       []models.Workflow
	presets         []models.PracticePreset
	quickTemplates  []models.QuickTemplate
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the process-wide catalog, loading it on first use
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Load()
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default for callers that cannot continue without content
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Load decodes and validates the embedded catalog files
func Load() (*Catalog, error) {
	c := &Catalog{}

	var frameworks struct {
		Frameworks []models.Framework `yaml:"frameworks"`
	}
	var courts struct {
		Courts []models.Court `yaml:"courts"`
	}
	var legislation struct {
		Legislation []models.Legislation `yaml:"legislation"`
	}
	var ethics struct {
		Guidelines []models.EthicsGuideline `yaml:"guidelines"`
		Scenarios  []models.AIUseScenario   `yaml:"ai_use_scenarios"`
	}
	var practice struct {
		Prompts []models.PracticeAreaPrompt `yaml:"practice_prompts"`
	}
	var documents struct {
		Templates []models.DocumentTemplate `yaml:"document_templates"`
	}
	var workflows struct {
		Workflows []models.Workflow `yaml:"workflows"`
	}
	var presets struct {
		Presets []models.PracticePreset `yaml:"presets"`
	}
	var quick struct {
		Templates []models.QuickTemplate `yaml:"quick_templates"`
	}

	files := []struct {
		name string
		out  interface{}
	}{
		{"frameworks.yaml", &frameworks},
		{"courts.yaml", &courts},
		{"legislation.yaml", &legislation},
		{"ethics.yaml", &ethics},
		{"practice_prompts.yaml", &practice},
		{"documents.yaml", &documents},
		{"workflows.yaml", &workflows},
		{"presets.yaml", &presets},
		{"quick_templates.yaml", &quick},
	}

	for _, f := range files {
		raw, err := dataFS.ReadFile("data/" + f.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.name, err)
		}
		if err := yaml.Unmarshal(raw, f.out); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", f.name, err)
		}
	}

	c.frameworks = frameworks.Frameworks
	c.courts = courts.Courts
	c.legislation = legislation.Legislation
	c.guidelines = ethics.Guidelines
	c.scenarios = ethics.Scenarios
	c.practicePrompts = practice.Prompts
	c.documents = documents.Templates
	c.workflows = workflows.Workflows
	c.presets = presets.Presets
	c.quickTemplates = quick.Templates

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	for _, fw := range c.frameworks {
		if len(fw.Components) == 0 {
			return fmt.Errorf("%w: framework %q has no components", ErrInvalidCatalog, fw.Key)
		}
	}
	for _, p := range c.presets {
		if !p.RecommendedMode.Known() {
			return fmt.Errorf("%w: preset %q recommends unknown mode %q", ErrInvalidCatalog, p.Key, p.RecommendedMode)
		}
	}
	for _, t := range c.quickTemplates {
		if !t.RecommendedMode.Known() {
			return fmt.Errorf("%w: quick template %q recommends unknown mode %q", ErrInvalidCatalog, t.Name, t.RecommendedMode)
		}
	}

	checks := []struct {
		kind string
		keys []string
	}{
		{"framework", keysOf(c.frameworks, func(v models.Framework) string { return v.Key })},
		{"court", keysOf(c.courts, func(v models.Court) string { return v.Key })},
		{"legislation", keysOf(c.legislation, func(v models.Legislation) string { return v.Key })},
		{"guideline", keysOf(c.guidelines, func(v models.EthicsGuideline) string { return v.Key })},
		{"practice prompt", keysOf(c.practicePrompts, func(v models.PracticeAreaPrompt) string { return v.Key })},
		{"document template", keysOf(c.documents, func(v models.DocumentTemplate) string { return v.Key })},
		{"workflow", keysOf(c.workflows, func(v models.Workflow) string { return v.Key })},
		{"preset", keysOf(c.presets, func(v models.PracticePreset) string { return v.Key })},
		{"quick template", keysOf(c.quickTemplates, func(v models.QuickTemplate) string { return v.Name })},
	}
	for _, check := range checks {
		seen := make(map[string]bool, len(check.keys))
		for _, k := range check.keys {
			if k == "" {
				return fmt.Errorf("%w: %s with empty key", ErrInvalidCatalog, check.kind)
			}
			if seen[k] {
				return fmt.Errorf("%w: duplicate %s key %q", ErrInvalidCatalog, check.kind, k)
			}
			seen[k] = true
		}
	}
	return nil
}

func keysOf[T any](items []T, key func(T) string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = key(item)
	}
	return out
}

func filter[T any](items []T, keep func(T) bool) []T {
	var out []T
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func find[T any](items []T, match func(T) bool) (*T, bool) {
	for i := range items {
		if match(items[i]) {
			item := items[i]
			return &item, true
		}
	}
	return nil, false
}
