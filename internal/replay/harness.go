package replay

import (
	"fmt"
	"math"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/rewarder"
)

// #region types

// Result captures the outcome of replaying one example.
type Result struct {
	ExampleID  string
	Pass       bool
	Mismatches []string // human-readable field diffs, empty when Pass
	Actual     rewarder.VerificationResult
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total          int
	Passed         int
	Failed         int
	FormatFailures int
	MeanReward     float32
}

// #endregion types

// #region replay

const rewardTolerance = 1e-5

// Replay scores every example and diffs it against the fixture's expected
// result. Examples without an expected entry replay but always pass.
func Replay(r *rewarder.Rewarder, f *Fixture) ([]Result, Summary) {
	expected := make(map[string]FixtureExpected, len(f.ExpectedResults))
	for _, e := range f.ExpectedResults {
		expected[e.ExampleID] = e
	}

	results := make([]Result, 0, len(f.Examples))
	summary := Summary{Total: len(f.Examples)}
	var rewardSum float64

	for _, ex := range f.Examples {
		actual := r.Verify(ex.DishIngredients, ex.Reasoning, ex.FinalVerdict)
		rewardSum += float64(actual.Reward)
		if !actual.FormatOK {
			summary.FormatFailures++
		}

		result := Result{ExampleID: ex.ExampleID, Actual: actual, Pass: true}
		if want, ok := expected[ex.ExampleID]; ok {
			result.Mismatches = diff(want, actual)
			result.Pass = len(result.Mismatches) == 0
		}

		if result.Pass {
			summary.Passed++
		} else {
			summary.Failed++
		}
		results = append(results, result)
	}

	if summary.Total > 0 {
		summary.MeanReward = float32(rewardSum / float64(summary.Total))
	}
	return results, summary
}

// #endregion replay

// #region diff

func diff(want FixtureExpected, got rewarder.VerificationResult) []string {
	var mismatches []string

	if math.Abs(float64(want.Reward-got.Reward)) > rewardTolerance {
		mismatches = append(mismatches, fmt.Sprintf("reward: want %.4f got %.4f", want.Reward, got.Reward))
	}
	if want.FormatOK != got.FormatOK {
		mismatches = append(mismatches, fmt.Sprintf("format_ok: want %v got %v", want.FormatOK, got.FormatOK))
	}
	if math.Abs(float64(want.ReasoningQuality-got.ReasoningQuality)) > rewardTolerance {
		mismatches = append(mismatches, fmt.Sprintf("reasoning_quality: want %.4f got %.4f", want.ReasoningQuality, got.ReasoningQuality))
	}
	if want.VerdictCorrect != got.VerdictCorrect {
		mismatches = append(mismatches, fmt.Sprintf("verdict_correct: want %v got %v", want.VerdictCorrect, got.VerdictCorrect))
	}
	if !equalKeys(want.ViolationsFound, got.ViolationsFound) {
		mismatches = append(mismatches, fmt.Sprintf("violations_found: want %v got %v", want.ViolationsFound, got.ViolationsFound))
	}
	if !equalKeys(want.ViolationsMissed, got.ViolationsMissed) {
		mismatches = append(mismatches, fmt.Sprintf("violations_missed: want %v got %v", want.ViolationsMissed, got.ViolationsMissed))
	}
	return mismatches
}

func equalKeys(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}

// #endregion diff
