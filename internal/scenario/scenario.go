package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"projectile-sim/internal/config"
	"projectile-sim/internal/trajectory"
)

// Kind selects what a scenario computes.
type Kind string

const (
	KindSingle  Kind = "single"
	KindSweep   Kind = "sweep"
	KindDrag    Kind = "drag"
	KindPlanets Kind = "planets"
)

// Scenario is one named configuration in a batch file. Params are overlaid on
// the configured defaults; Sweep and Planets fall back to the runner's.
type Scenario struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description,omitempty"`
	Kind        Kind              `yaml:"kind"`
	Params      trajectory.Params `yaml:"params"`
	Sweep       *config.Sweep     `yaml:"sweep,omitempty"`
	Planets     []config.Planet   `yaml:"planets,omitempty"`
}

// Batch is an ordered list of scenarios loaded from YAML.
type Batch struct {
	Name        string     `yaml:"name,omitempty"`
	Description string     `yaml:"description,omitempty"`
	Scenarios   []Scenario `yaml:"scenarios"`
}

type rawBatch struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Scenarios   []yaml.Node `yaml:"scenarios"`
}

// Load reads a YAML batch definition from disk. Each scenario starts from
// defaults before its own fields are decoded.
func Load(path string, defaults trajectory.Params) (*Batch, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var raw rawBatch
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	batch := &Batch{Name: raw.Name, Description: raw.Description}
	for i := range raw.Scenarios {
		s := Scenario{Params: defaults}
		if err := raw.Scenarios[i].Decode(&s); err != nil {
			return nil, fmt.Errorf("parse scenario %d: %w", i, err)
		}
		if s.Kind == "" {
			s.Kind = KindSingle
		}
		batch.Scenarios = append(batch.Scenarios, s)
	}
	return batch, nil
}

// Lookup returns the scenario with the given name.
func (b *Batch) Lookup(name string) (Scenario, bool) {
	for _, s := range b.Scenarios {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}
