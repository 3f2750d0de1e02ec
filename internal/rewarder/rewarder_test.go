package rewarder

import (
	"testing"

	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/constraint"
	"github.com/danielpatrickdp/dietary-rlvr/go-verifier/internal/profile"
)

func defaultRewarder(t *testing.T) *Rewarder {
	t.Helper()
	r, err := New(profile.Default(), nil)
	if err != nil {
		t.Fatalf("construct rewarder: %v", err)
	}
	return r
}

func equalKeys(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

var padThai = []string{"rice noodles", "egg", "bean sprouts", "crushed peanuts", "fish sauce", "lime"}

func TestVerifyCaughtFatalViolation(t *testing.T) {
	r := defaultRewarder(t)

	result := r.Verify(padThai,
		"<think>The user has a peanut allergy. Pad Thai contains crushed peanuts.</think>",
		"UNSAFE")

	if !result.FormatOK {
		t.Fatal("expected format_ok")
	}
	if !result.VerdictCorrect {
		t.Fatal("expected correct verdict")
	}
	if !equalKeys(result.ViolationsFound, []string{"peanut"}) {
		t.Fatalf("unexpected violations_found: %v", result.ViolationsFound)
	}
	if len(result.ViolationsMissed) != 0 {
		t.Fatalf("unexpected violations_missed: %v", result.ViolationsMissed)
	}
	if result.ReasoningQuality != 1.0 {
		t.Fatalf("expected reasoning quality 1.0, got %v", result.ReasoningQuality)
	}
	if result.Reward != 1.0 {
		t.Fatalf("expected reward 1.0, got %v", result.Reward)
	}
}

func TestVerifyMissedFatalViolation(t *testing.T) {
	r := defaultRewarder(t)

	result := r.Verify(padThai, "<think>No allergens detected.</think>", "SAFE")

	if result.VerdictCorrect {
		t.Fatal("verdict should be incorrect")
	}
	if result.Reward != -1.0 {
		t.Fatalf("missed fatal allergen must score -1.0, got %v", result.Reward)
	}
	if !equalKeys(result.ViolationsMissed, []string{"peanut"}) {
		t.Fatalf("unexpected violations_missed: %v", result.ViolationsMissed)
	}
	if result.ReasoningQuality != 0 {
		t.Fatalf("expected reasoning quality 0, got %v", result.ReasoningQuality)
	}
}

func TestVerifyCleanDish(t *testing.T) {
	r := defaultRewarder(t)

	result := r.Verify([]string{"rice", "water", "salt"},
		"<think>Nothing unsafe here.</think>", "SAFE")

	if !result.VerdictCorrect {
		t.Fatal("expected correct verdict")
	}
	if result.ReasoningQuality != 1.0 {
		t.Fatalf("expected reasoning quality 1.0, got %v", result.ReasoningQuality)
	}
	if result.Reward != 1.0 {
		t.Fatalf("expected reward 1.0, got %v", result.Reward)
	}
}

func TestVerifyHallucinatedViolation(t *testing.T) {
	r := defaultRewarder(t)

	result := r.Verify([]string{"rice", "water", "salt"},
		"<think>I think this might contain peanuts just in case.</think>", "SAFE")

	if !result.VerdictCorrect {
		t.Fatal("verdict is still correct")
	}
	if result.ReasoningQuality != 0.5 {
		t.Fatalf("hallucinated mention should halve reasoning quality, got %v", result.ReasoningQuality)
	}
	if result.Reward != 0.75 {
		t.Fatalf("expected reward 0.75, got %v", result.Reward)
	}
}

func TestVerifyMissingThinkBlock(t *testing.T) {
	r := defaultRewarder(t)

	result := r.Verify([]string{"bacon", "eggs"}, "This dish has bacon so it is not halal.", "UNSAFE")

	if result.FormatOK {
		t.Fatal("expected format failure")
	}
	if result.Reward != 0 || result.ReasoningQuality != 0 || result.VerdictCorrect {
		t.Fatalf("format failure must zero everything: %+v", result)
	}
	if len(result.ViolationsFound) != 0 || len(result.ViolationsMissed) != 0 {
		t.Fatalf("format failure must leave violation lists empty: %+v", result)
	}
}

func TestVerifyWordModeInsideIngredientPhrase(t *testing.T) {
	r := defaultRewarder(t)

	result := r.Verify([]string{"wheat flour", "water", "yeast"},
		"<think>Wheat flour contains gluten, unsafe for celiac.</think>", "UNSAFE")

	if !result.VerdictCorrect {
		t.Fatal("expected correct verdict")
	}
	if !equalKeys(result.ViolationsFound, []string{"celiac"}) {
		t.Fatalf("unexpected violations_found: %v", result.ViolationsFound)
	}
	if result.ReasoningQuality != 1.0 || result.Reward != 1.0 {
		t.Fatalf("expected full credit, got quality=%v reward=%v", result.ReasoningQuality, result.Reward)
	}
}

func TestVerifyPartialCatchSortsKeys(t *testing.T) {
	r := defaultRewarder(t)

	// Both shellfish and celiac present, reasoning only catches shellfish.
	result := r.Verify([]string{"shrimp", "soy sauce", "scallions"},
		"<think>Shrimp is shellfish, dangerous for this user.</think>", "UNSAFE")

	if !equalKeys(result.ViolationsFound, []string{"shellfish"}) {
		t.Fatalf("unexpected violations_found: %v", result.ViolationsFound)
	}
	if !equalKeys(result.ViolationsMissed, []string{"celiac"}) {
		t.Fatalf("unexpected violations_missed: %v", result.ViolationsMissed)
	}
	if result.ReasoningQuality != 0.5 {
		t.Fatalf("expected reasoning quality 0.5, got %v", result.ReasoningQuality)
	}
	if result.Reward != 0.75 {
		t.Fatalf("expected reward 0.75, got %v", result.Reward)
	}
}

func TestVerifyMissedNonFatalScoresZero(t *testing.T) {
	r := defaultRewarder(t)

	// Only a halal (religious) violation; wrong verdict scores 0, not -1.
	result := r.Verify([]string{"bacon", "eggs"}, "<think>Looks fine to me.</think>", "SAFE")

	if result.VerdictCorrect {
		t.Fatal("verdict should be incorrect")
	}
	if result.Reward != 0 {
		t.Fatalf("missed non-fatal violation should score 0, got %v", result.Reward)
	}
}

func TestVerifyLenientVerdictParsing(t *testing.T) {
	r := defaultRewarder(t)

	// "unsafe" in any case counts as an unsafe claim.
	result := r.Verify(padThai, "<think>Contains peanuts.</think>", "unsafe")
	if !result.VerdictCorrect {
		t.Fatal("lowercase unsafe should count as an unsafe claim")
	}

	// Anything else is treated as a safe claim, not rejected.
	result = r.Verify([]string{"rice"}, "<think>Clean.</think>", "definitely edible")
	if !result.VerdictCorrect {
		t.Fatal("unrecognized verdict should count as a safe claim")
	}
}

func TestVerifyIdempotent(t *testing.T) {
	r := defaultRewarder(t)

	first := r.Verify(padThai, "<think>Contains peanuts and fish sauce.</think>", "UNSAFE")
	for i := 0; i < 5; i++ {
		again := r.Verify(padThai, "<think>Contains peanuts and fish sauce.</think>", "UNSAFE")
		if again.Reward != first.Reward ||
			again.ReasoningQuality != first.ReasoningQuality ||
			again.VerdictCorrect != first.VerdictCorrect ||
			!equalKeys(again.ViolationsFound, first.ViolationsFound) ||
			!equalKeys(again.ViolationsMissed, first.ViolationsMissed) {
			t.Fatalf("verify not idempotent: %+v vs %+v", first, again)
		}
	}
}

func TestVerifyRewardBands(t *testing.T) {
	r := defaultRewarder(t)

	examples := []struct {
		ingredients []string
		reasoning   string
		verdict     string
	}{
		{padThai, "<think>Peanuts present.</think>", "UNSAFE"},
		{padThai, "<think>Fine.</think>", "SAFE"},
		{[]string{"bacon"}, "<think>Fine.</think>", "SAFE"},
		{[]string{"rice"}, "<think>Maybe peanuts.</think>", "SAFE"},
		{[]string{"rice"}, "no think block", "SAFE"},
		{[]string{"shrimp", "soy sauce"}, "<think>Shrimp only.</think>", "UNSAFE"},
	}
	for _, ex := range examples {
		result := r.Verify(ex.ingredients, ex.reasoning, ex.verdict)
		reward := result.Reward
		inBand := reward == -1.0 || reward == 0.0 || (reward >= 0.5 && reward <= 1.0)
		if !inBand {
			t.Fatalf("reward %v outside {-1, 0} ∪ [0.5, 1] for %+v", reward, ex)
		}
	}
}

func TestNewUnknownConstraintKey(t *testing.T) {
	p := profile.Default()
	p.EnabledConstraints = append(p.EnabledConstraints, "kosher")

	if _, err := New(p, nil); err == nil {
		t.Fatal("expected construction error for unknown constraint key")
	}
}

func TestNewAppliesLevelOverride(t *testing.T) {
	p := profile.Default()
	p.LevelOverrides = map[string]constraint.Level{"halal": constraint.LevelFatal}

	r, err := New(p, nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	var halal *constraint.Definition
	for _, def := range r.Active() {
		if def.Key == "halal" {
			d := def
			halal = &d
		}
	}
	if halal == nil {
		t.Fatal("halal missing from active constraints")
	}
	if halal.Level != constraint.LevelFatal {
		t.Fatalf("override not applied: %v", halal.Level)
	}

	// With the override, missing a bacon dish is now a fatal miss.
	result := r.Verify([]string{"bacon"}, "<think>Fine.</think>", "SAFE")
	if result.Reward != -1.0 {
		t.Fatalf("expected -1.0 after fatal override, got %v", result.Reward)
	}
}

func TestNewCustomConstraint(t *testing.T) {
	p := profile.Default()
	p.EnabledConstraints = append(p.EnabledConstraints, "vegan")
	p.CustomConstraints = []constraint.Definition{
		{Key: "vegan", Level: constraint.LevelPreference, Terms: []string{"beef", "chicken", "gelatin"}},
	}

	r, err := New(p, nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	result := r.Verify([]string{"beef", "broccoli"},
		"<think>Beef is not vegan.</think>", "UNSAFE")
	if !result.VerdictCorrect {
		t.Fatal("expected correct verdict via custom constraint")
	}
	if !equalKeys(result.ViolationsFound, []string{"vegan"}) {
		t.Fatalf("unexpected violations_found: %v", result.ViolationsFound)
	}
}

func TestExtractThinkMultiline(t *testing.T) {
	content, ok := extractThink("prefix <think>line one\nline two</think> suffix <think>ignored</think>")
	if !ok {
		t.Fatal("expected think block")
	}
	if content != "line one\nline two" {
		t.Fatalf("unexpected content: %q", content)
	}

	if _, ok := extractThink("<think>never closed"); ok {
		t.Fatal("unclosed block should not count")
	}
	if _, ok := extractThink("closed</think> before open<think>"); ok {
		t.Fatal("closing tag before opening tag should not count")
	}
}
