// Package logging records score provenance: one JSON line per verified
// example, enough to replay and audit every reward decision.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// #region logger

// Logger appends ScoreRecords as JSON lines to a writer.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewLogger creates a score logger writing to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{enc: json.NewEncoder(w)}
}

// Log writes one record, assigning a record ID and timestamp when unset.
func (l *Logger) Log(record ScoreRecord) error {
	if record.RecordID == "" {
		record.RecordID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.enc.Encode(record); err != nil {
		return fmt.Errorf("log score: %w", err)
	}
	return nil
}

// #endregion logger
