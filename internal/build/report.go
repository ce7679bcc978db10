package build

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Outcome is the final result state of a pipeline run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

// Report captures high-level metrics about one pipeline run. It is written
// outside the output tree on request and never affects the artifact census.
type Report struct {
	ID             string                   `json:"id"`
	Start          time.Time                `json:"start"`
	End            time.Time                `json:"end"`
	StageDurations map[string]time.Duration `json:"stage_durations"`
	Loaded         int                      `json:"loaded"`
	Skipped        int                      `json:"skipped"`
	Compiled       int                      `json:"compiled"`
	Pages          int                      `json:"pages"`
	Outcome        Outcome                  `json:"outcome"`
	Error          string                   `json:"error,omitempty"`
}

// NewReport starts a report for a fresh run.
func NewReport() *Report {
	return &Report{
		ID:             uuid.NewString(),
		Start:          time.Now(),
		StageDurations: map[string]time.Duration{},
	}
}

// Finish stamps the end time and derives the outcome from err.
func (r *Report) Finish(err error) {
	r.End = time.Now()
	if err != nil {
		r.Outcome = OutcomeFailed
		r.Error = err.Error()
		return
	}
	r.Outcome = OutcomeSuccess
}

// Persist writes the report as indented JSON to path.
func (r *Report) Persist(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal build report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write build report %s: %w", path, err)
	}
	return nil
}
