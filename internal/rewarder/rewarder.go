// Package rewarder scores model dish-safety responses against ground truth
// ingredients, producing the training reward for the RLVR loop.
package rewarder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/constraint"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/detect"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/profile"
)

// #region rewarder

// Rewarder scores responses for one user profile. Active constraints are
// resolved once at construction and never mutated, so a single instance is
// safe for parallel callers.
type Rewarder struct {
	profile  profile.Profile
	catalog  *constraint.Catalog
	active   []constraint.Definition
	detector *detect.Detector
}

// New resolves the profile against the catalog (nil catalog = built-in
// defaults). Fails if any enabled key is absent from the merged catalog —
// a silently dropped constraint would corrupt every subsequent reward.
func New(p profile.Profile, catalog *constraint.Catalog) (*Rewarder, error) {
	if catalog == nil {
		catalog = constraint.DefaultCatalog()
	}
	active, err := buildActive(p, catalog)
	if err != nil {
		return nil, err
	}
	return &Rewarder{
		profile:  p,
		catalog:  catalog,
		active:   active,
		detector: detect.NewDetector(active),
	}, nil
}

// buildActive merges custom definitions into the catalog, then resolves
// each enabled key, applying level overrides as whole-definition copies.
func buildActive(p profile.Profile, catalog *constraint.Catalog) ([]constraint.Definition, error) {
	effective := catalog.Merged(p.CustomConstraints)
	active := make([]constraint.Definition, 0, len(p.EnabledConstraints))
	for _, key := range p.EnabledConstraints {
		def, ok := effective.Get(key)
		if !ok {
			return nil, fmt.Errorf("unknown constraint key: %s", key)
		}
		if level, ok := p.LevelOverrides[key]; ok && level != def.Level {
			def = def.WithLevel(level)
		}
		active = append(active, def)
	}
	return active, nil
}

// Active returns the resolved active constraints in profile order.
func (r *Rewarder) Active() []constraint.Definition {
	out := make([]constraint.Definition, len(r.active))
	copy(out, r.active)
	return out
}

// #endregion rewarder

// #region verify

// Verify scores one example: ground-truth dish ingredients, the model's
// reasoning text, and its final SAFE/UNSAFE verdict. Pure and deterministic;
// a missing think block is a zero-reward result, not an error.
func (r *Rewarder) Verify(dishIngredients []string, reasoning string, finalVerdict string) VerificationResult {
	result := VerificationResult{
		ViolationsFound:  []string{},
		ViolationsMissed: []string{},
	}

	// 1. Format check: hard fail, nothing else is computed.
	thinkContent, ok := extractThink(reasoning)
	if !ok {
		return result
	}
	result.FormatOK = true

	// 2. Ground truth: which violations actually exist.
	actualViolations := r.detector.Find(strings.Join(dishIngredients, " "))

	// 3. Claimed reasoning: which violations the model identified.
	mentionedViolations := r.detector.Find(strings.ToLower(thinkContent))

	// 4. Reasoning quality.
	if len(actualViolations) > 0 {
		actual := keySet(actualViolations)
		caught := keySet(mentionedViolations)
		result.ViolationsFound = sortedIntersection(caught, actual)
		result.ViolationsMissed = sortedDifference(actual, caught)
		result.ReasoningQuality = float32(len(result.ViolationsFound)) / float32(len(actual))
	} else if len(mentionedViolations) == 0 {
		result.ReasoningQuality = 1.0
	} else {
		// Hallucinated violations with a clean dish.
		result.ReasoningQuality = 0.5
	}

	// 5. Verdict correctness: the actual RLVR signal.
	shouldBeUnsafe := len(actualViolations) > 0
	result.VerdictCorrect = shouldBeUnsafe == ClaimsUnsafe(finalVerdict)

	// 6. Composite reward.
	if !result.VerdictCorrect {
		if detect.AnyFatal(actualViolations) {
			result.Reward = -1.0
		}
		return result
	}
	result.Reward = 0.5 + 0.5*result.ReasoningQuality
	return result
}

// #endregion verify

// #region set-helpers

func keySet(violations []detect.Violation) map[string]struct{} {
	set := make(map[string]struct{}, len(violations))
	for _, v := range violations {
		set[v.Key] = struct{}{}
	}
	return set
}

func sortedIntersection(a, b map[string]struct{}) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func sortedDifference(a, b map[string]struct{}) []string {
	out := []string{}
	for k := range a {
		if _, ok := b[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// #endregion set-helpers
