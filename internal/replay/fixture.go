// Package replay runs recorded scoring scenarios through a Rewarder and
// checks them against expected results.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/constraint"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/profile"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/rewarder"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string            `json:"description"`
	Profile         *profile.Profile  `json:"profile,omitempty"`
	Examples        []FixtureExample  `json:"examples"`
	ExpectedResults []FixtureExpected `json:"expected_results"`
}

// FixtureExample is a single recorded scoring input.
type FixtureExample struct {
	ExampleID       string   `json:"example_id"`
	DishIngredients []string `json:"dish_ingredients"`
	Reasoning       string   `json:"reasoning"`
	FinalVerdict    string   `json:"final_verdict"`
}

// FixtureExpected captures the expected scorer output per example.
type FixtureExpected struct {
	ExampleID        string   `json:"example_id"`
	Reward           float32  `json:"reward"`
	FormatOK         bool     `json:"format_ok"`
	ReasoningQuality float32  `json:"reasoning_quality"`
	VerdictCorrect   bool     `json:"verdict_correct"`
	ViolationsFound  []string `json:"violations_found"`
	ViolationsMissed []string `json:"violations_missed"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if len(f.Examples) == 0 {
		return nil, fmt.Errorf("fixture %s has no examples", path)
	}
	return &f, nil
}

// BuildRewarder constructs the Rewarder a fixture should replay against:
// its embedded profile when present, otherwise the default profile over the
// built-in catalog.
func BuildRewarder(f *Fixture) (*rewarder.Rewarder, error) {
	p := profile.Default()
	if f.Profile != nil {
		p = *f.Profile
	}
	r, err := rewarder.New(p, constraint.DefaultCatalog())
	if err != nil {
		return nil, fmt.Errorf("build rewarder: %w", err)
	}
	return r, nil
}

// #endregion fixture-loader
