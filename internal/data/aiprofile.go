package data

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AIProfile is one variant's enemy behaviour: decision interval and ability
// weights. Weights need not be normalised.
type AIProfile struct {
	Name        string             `yaml:"name"`
	MinInterval time.Duration      `yaml:"min_interval"`
	MaxInterval time.Duration      `yaml:"max_interval"`
	Weights     map[string]float64 `yaml:"weights"` // ability name -> weight
}

type aiProfileFile struct {
	Profiles []AIProfile `yaml:"profiles"`
}

// AIProfileTable holds AI profiles by name.
type AIProfileTable struct {
	profiles map[string]*AIProfile
}

func (t *AIProfileTable) Get(name string) *AIProfile {
	return t.profiles[name]
}

func (t *AIProfileTable) Count() int {
	return len(t.profiles)
}

// LoadAIProfileTable loads ai_profiles.yaml.
func LoadAIProfileTable(path string) (*AIProfileTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ai profiles: %w", err)
	}
	t, err := ParseAIProfileTable(raw)
	if err != nil {
		return nil, fmt.Errorf("parse ai profiles %s: %w", path, err)
	}
	return t, nil
}

func ParseAIProfileTable(raw []byte) (*AIProfileTable, error) {
	var f aiProfileFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	t := &AIProfileTable{profiles: make(map[string]*AIProfile, len(f.Profiles))}
	for i := range f.Profiles {
		p := &f.Profiles[i]
		if p.MinInterval <= 0 || p.MaxInterval < p.MinInterval {
			return nil, fmt.Errorf("profile %q: interval [%s, %s] must be positive and ordered", p.Name, p.MinInterval, p.MaxInterval)
		}
		t.profiles[p.Name] = p
	}
	return t, nil
}
