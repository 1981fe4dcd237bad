package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/skirmish/internal/anim"
)

// ClipBinding maps one canonical action onto an asset clip.
type ClipBinding struct {
	Clip   string        `yaml:"clip"`
	Length time.Duration `yaml:"length"` // 0 = unknown, the fallback timer applies
}

// Accessory is an extra mesh hung on a bone, falling back to the model root.
type Accessory struct {
	Name string `yaml:"name"`
	Bone string `yaml:"bone"`
}

// ModelTemplate describes a character asset and its action bindings.
type ModelTemplate struct {
	Name  string                 `yaml:"name"`
	Asset string                 `yaml:"asset"`
	Bones []string               `yaml:"bones"`
	Clips map[string]ClipBinding `yaml:"clips"` // canonical action name -> clip
	// Notifies is false for assets whose player cannot report one-shot completion.
	Notifies  *bool      `yaml:"notifies"`
	Accessory *Accessory `yaml:"accessory"`

	actions map[anim.Action]ClipBinding
}

// Binding returns the clip bound to a.
func (m *ModelTemplate) Binding(a anim.Action) (ClipBinding, bool) {
	b, ok := m.actions[a]
	return b, ok
}

// ReportsCompletion defaults to true when the file does not say.
func (m *ModelTemplate) ReportsCompletion() bool {
	return m.Notifies == nil || *m.Notifies
}

type modelFile struct {
	Models []ModelTemplate `yaml:"models"`
}

// ModelTable holds model templates indexed by name.
type ModelTable struct {
	models map[string]*ModelTemplate
}

// Get returns the template for a model, or nil if unknown.
func (t *ModelTable) Get(name string) *ModelTemplate {
	return t.models[name]
}

// Count returns the number of models loaded.
func (t *ModelTable) Count() int {
	return len(t.models)
}

// LoadModelTable loads models.yaml.
func LoadModelTable(path string) (*ModelTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model list: %w", err)
	}
	t, err := ParseModelTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parse model list %s: %w", path, err)
	}
	return t, nil
}

// ParseModelTable decodes a model list. Action names must be canonical.
func ParseModelTable(raw []byte) (*ModelTable, error) {
	var f modelFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &ModelTable{models: make(map[string]*ModelTemplate, len(f.Models))}
	for i := range f.Models {
		m := &f.Models[i]
		if m.Name == "" {
			return nil, fmt.Errorf("model #%d has no name", i+1)
		}
		if _, dup := t.models[m.Name]; dup {
			return nil, fmt.Errorf("model %q defined twice", m.Name)
		}
		m.actions = make(map[anim.Action]ClipBinding, len(m.Clips))
		for name, b := range m.Clips {
			a, err := anim.ParseAction(name)
			if err != nil {
				return nil, fmt.Errorf("model %q: %w", m.Name, err)
			}
			if b.Clip == "" {
				b.Clip = name
			}
			m.actions[a] = b
		}
		t.models[m.Name] = m
	}
	return t, nil
}
