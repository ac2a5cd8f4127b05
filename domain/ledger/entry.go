// Package ledger provides domain models for audit trail recording of
// agent runs.
package ledger

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntryType classifies the type of ledger entry.
type EntryType string

const (
	EntryRunStarted     EntryType = "run_started"
	EntryDecision       EntryType = "decision"
	EntryActionApplied  EntryType = "action_applied"
	EntryModelRequested EntryType = "model_requested"
	EntryModelUpdated   EntryType = "model_updated"
	EntryRunCompleted   EntryType = "run_completed"
	EntryRunStalled     EntryType = "run_stalled"
	EntryRunFailed      EntryType = "run_failed"
)

// Entry represents a single record in the ledger.
type Entry struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Type      EntryType       `json:"type"`
	RunID     string          `json:"run_id"`
	Step      int             `json:"step"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// RunStartedDetails contains details for run start entries.
type RunStartedDetails struct {
	Depth         int `json:"depth"`
	MutationLimit int `json:"mutation_limit,omitempty"`
	MaxSteps      int `json:"max_steps,omitempty"`
}

// DecisionDetails contains details for decision entries.
type DecisionDetails struct {
	DecisionType string          `json:"decision_type"`
	Depth        int             `json:"depth"`
	Action       json.RawMessage `json:"action,omitempty"`
	Duration     time.Duration   `json:"duration,omitempty"`
}

// ActionDetails contains details for applied-action entries.
type ActionDetails struct {
	Action json.RawMessage `json:"action"`
}

// ModelUpdateDetails contains details for model update entries.
type ModelUpdateDetails struct {
	Attempts int    `json:"attempts,omitempty"`
	Source   string `json:"source,omitempty"`
}

// RunCompletedDetails contains details for run completion entries.
type RunCompletedDetails struct {
	Steps   int    `json:"steps"`
	Outcome string `json:"outcome"`
}

// NewEntry creates a new ledger entry.
func NewEntry(entryType EntryType, runID string, step int, details any) Entry {
	var detailsJSON json.RawMessage
	if details != nil {
		detailsJSON, _ = json.Marshal(details)
	}

	return Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Type:      entryType,
		RunID:     runID,
		Step:      step,
		Details:   detailsJSON,
	}
}

// DecodeDetails unmarshals the entry details into the given struct.
func (e Entry) DecodeDetails(v any) error {
	if e.Details == nil {
		return nil
	}
	return json.Unmarshal(e.Details, v)
}
