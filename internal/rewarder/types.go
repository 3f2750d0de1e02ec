package rewarder

import "strings"

// #region verdict

// Verdict values a model may claim about a dish.
const (
	VerdictSafe   = "SAFE"
	VerdictUnsafe = "UNSAFE"
)

// ClaimsUnsafe reports whether the verdict claims the dish is unsafe.
// Anything else, including garbage, counts as a safe claim.
func ClaimsUnsafe(verdict string) bool {
	return strings.ToUpper(verdict) == VerdictUnsafe
}

// KnownVerdict reports whether the verdict is one of the two accepted
// values, case-insensitively. The core scorer stays lenient; boundaries
// that want strictness check this first.
func KnownVerdict(verdict string) bool {
	return strings.EqualFold(verdict, VerdictSafe) || strings.EqualFold(verdict, VerdictUnsafe)
}

// #endregion verdict

// #region result

// VerificationResult is the full scoring output for one example.
type VerificationResult struct {
	Reward           float32  `json:"reward"`
	FormatOK         bool     `json:"format_ok"`
	ReasoningQuality float32  `json:"reasoning_quality"`
	VerdictCorrect   bool     `json:"verdict_correct"`
	ViolationsFound  []string `json:"violations_found"`
	ViolationsMissed []string `json:"violations_missed"`
}

// #endregion result

// #region think-delimiters

const (
	thinkOpen  = "<think>"
	thinkClose = "</think>"
)

// extractThink returns the content of the first <think>...</think> block.
// The block may span multiple lines; the first closing tag after the first
// opening tag wins.
func extractThink(reasoning string) (string, bool) {
	start := strings.Index(reasoning, thinkOpen)
	if start < 0 {
		return "", false
	}
	rest := reasoning[start+len(thinkOpen):]
	end := strings.Index(rest, thinkClose)
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

// #endregion think-delimiters
