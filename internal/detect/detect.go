// Package detect scans text for dietary constraint violations.
package detect

import (
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/constraint"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/match"
)

// #region violation

// Violation records that a constraint's trigger term occurred in a text.
type Violation struct {
	Key   string           `json:"key"`
	Level constraint.Level `json:"level"`
	Term  string           `json:"term"`
}

// #endregion violation

// #region detector

// Detector scans text against a fixed, ordered list of active constraint
// definitions. It holds no mutable state and is safe for parallel callers.
type Detector struct {
	active []constraint.Definition
}

// NewDetector creates a detector over the given active definitions.
func NewDetector(active []constraint.Definition) *Detector {
	return &Detector{active: active}
}

// Find normalizes the text once and scans each definition's terms in order.
// The first term that matches records a violation and ends that definition's
// scan, so a constraint fires at most once per text.
func (d *Detector) Find(text string) []Violation {
	normalized := match.Normalize(text)
	var violations []Violation
	for _, def := range d.active {
		for _, term := range def.Terms {
			if match.Term(normalized, term, def.MatchMode()) {
				violations = append(violations, Violation{
					Key:   def.Key,
					Level: def.Level,
					Term:  term,
				})
				break
			}
		}
	}
	return violations
}

// #endregion detector

// #region helpers

// Keys returns the set of constraint keys present in violations, in order.
func Keys(violations []Violation) []string {
	keys := make([]string, len(violations))
	for i, v := range violations {
		keys[i] = v.Key
	}
	return keys
}

// AnyFatal reports whether any violation carries the fatal level.
func AnyFatal(violations []Violation) bool {
	for _, v := range violations {
		if v.Level == constraint.LevelFatal {
			return true
		}
	}
	return false
}

// #endregion helpers
