// Package profile defines per-user dietary profiles.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/constraint"
)

// #region profile

// Profile selects which constraints are active for a user. Overrides apply
// only to enabled keys; custom definitions are merged into the catalog
// before resolution.
type Profile struct {
	EnabledConstraints []string                    `yaml:"enabled_constraints" json:"enabled_constraints"`
	LevelOverrides     map[string]constraint.Level `yaml:"level_overrides,omitempty" json:"level_overrides,omitempty"`
	CustomConstraints  []constraint.Definition     `yaml:"custom_constraints,omitempty" json:"custom_constraints,omitempty"`
}

// Default returns the default profile: the four built-in constraints, no
// overrides, no custom definitions.
func Default() Profile {
	return Profile{
		EnabledConstraints: []string{"peanut", "shellfish", "celiac", "halal"},
	}
}

// Validate checks the structural pieces a file can get wrong. Unknown
// enabled keys are left to Rewarder construction, where the merged catalog
// is known.
func (p Profile) Validate() error {
	if len(p.EnabledConstraints) == 0 {
		return fmt.Errorf("profile enables no constraints")
	}
	for i, d := range p.CustomConstraints {
		if d.Key == "" {
			return fmt.Errorf("custom constraint %d has no key", i)
		}
		if len(d.Terms) == 0 {
			return fmt.Errorf("custom constraint %q has no terms", d.Key)
		}
		switch d.Mode {
		case "", constraint.MatchWord, constraint.MatchSubstring:
		default:
			return fmt.Errorf("custom constraint %q has unknown match mode %q", d.Key, d.Mode)
		}
	}
	return nil
}

// #endregion profile

// #region load

// LoadFile reads a profile from a YAML file. Fields absent from the file
// keep the default profile's values.
func LoadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// #endregion load
