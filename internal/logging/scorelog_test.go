package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLogAssignsIDAndTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	err := l.Log(ScoreRecord{
		ExampleID:       "ex-1",
		DishIngredients: []string{"rice", "shrimp"},
		FinalVerdict:    "UNSAFE",
		Reward:          1.0,
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}

	var decoded ScoreRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode line: %v", err)
	}
	if decoded.RecordID == "" {
		t.Fatal("expected assigned record_id")
	}
	if decoded.CreatedAt.IsZero() {
		t.Fatal("expected assigned created_at")
	}
	if decoded.ExampleID != "ex-1" || decoded.Reward != 1.0 {
		t.Fatalf("record fields lost: %+v", decoded)
	}
}

func TestLogPreservesExplicitFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := l.Log(ScoreRecord{RecordID: "fixed", CreatedAt: at}); err != nil {
		t.Fatalf("log: %v", err)
	}

	var decoded ScoreRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode line: %v", err)
	}
	if decoded.RecordID != "fixed" || !decoded.CreatedAt.Equal(at) {
		t.Fatalf("explicit fields overwritten: %+v", decoded)
	}
}

func TestLogOneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	for i := 0; i < 3; i++ {
		if err := l.Log(ScoreRecord{ExampleID: "ex"}); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 JSONL lines, got %d", len(lines))
	}
	for _, line := range lines {
		var decoded ScoreRecord
		if err := json.Unmarshal([]byte(line), &decoded); err != nil {
			t.Fatalf("line not valid JSON: %v", err)
		}
	}
}
