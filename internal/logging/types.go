package logging

import "time"

// #region score-record

// ScoreRecord captures the complete inputs and outputs of one verification,
// serialized as one JSONL line for audit and deterministic replay.
type ScoreRecord struct {
	RecordID  string    `json:"record_id"`
	ExampleID string    `json:"example_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Exact inputs as scored
	DishIngredients []string `json:"dish_ingredients"`
	FinalVerdict    string   `json:"final_verdict"`
	ReasoningChars  int      `json:"reasoning_chars"`

	// Active constraint keys at decision time
	ActiveConstraints []string `json:"active_constraints"`

	// Scorer output
	Reward           float32  `json:"reward"`
	FormatOK         bool     `json:"format_ok"`
	ReasoningQuality float32  `json:"reasoning_quality"`
	VerdictCorrect   bool     `json:"verdict_correct"`
	ViolationsFound  []string `json:"violations_found"`
	ViolationsMissed []string `json:"violations_missed"`
}

// #endregion score-record
