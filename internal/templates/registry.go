package templates

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

const defaultsFile = "config/defaults.yaml"

// Defaults mirrors config/defaults.yaml.
type Defaults struct {
	Sections map[string]string `yaml:"sections"`
	Choice   struct {
		Title          string `yaml:"title"`
		OptionText     string `yaml:"option_text"`
		InitialOptions int    `yaml:"initial_options"`
	} `yaml:"choice"`
	Consequence struct {
		Title string `yaml:"title"`
	} `yaml:"consequence"`
	Deliverable struct {
		Title string `yaml:"title"`
	} `yaml:"deliverable"`
	NPC struct {
		Traits []string `yaml:"traits"`
	} `yaml:"npc"`
}

// Registry serves the labels given to newly created elements.
type Registry struct {
	defaults Defaults
}

// NewRegistry loads the embedded defaults file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile(defaultsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", defaultsFile, err)
	}
	return Parse(data)
}

// Parse builds a registry from YAML bytes.
func Parse(data []byte) (*Registry, error) {
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal defaults: %w", err)
	}
	if d.Choice.InitialOptions < 1 {
		return nil, fmt.Errorf("choice.initial_options must be at least 1, got %d", d.Choice.InitialOptions)
	}
	return &Registry{defaults: d}, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded file. It panics if the
// embedded file is malformed, which the package tests rule out.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry()
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// SectionTitle returns the title of a new section of the given kind.
func (r *Registry) SectionTitle(kind string) string {
	if title, ok := r.defaults.Sections[kind]; ok {
		return title
	}
	return "New Section"
}

func (r *Registry) ChoiceTitle() string { return r.defaults.Choice.Title }

// OptionText returns the label of the n-th option (1-based).
func (r *Registry) OptionText(n int) string {
	return fmt.Sprintf(r.defaults.Choice.OptionText, n)
}

func (r *Registry) InitialOptions() int { return r.defaults.Choice.InitialOptions }

func (r *Registry) ConsequenceTitle() string { return r.defaults.Consequence.Title }

func (r *Registry) DeliverableTitle() string { return r.defaults.Deliverable.Title }

// NPCTraitKeys returns a copy of the trait keys pre-filled on new NPCs.
func (r *Registry) NPCTraitKeys() []string {
	out := make([]string, len(r.defaults.NPC.Traits))
	copy(out, r.defaults.NPC.Traits)
	return out
}
