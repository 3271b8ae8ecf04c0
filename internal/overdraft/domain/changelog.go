package domain

import "time"

// Outcome values for change log entries.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// ChangeEntry is a single append-only record of a limit mutation attempt.
type ChangeEntry struct {
	ID             string
	ClientDocument string
	ClientName     string
	PreviousLimit  Cents
	NewLimit       Cents
	Actor          string
	Outcome        string
	OccurredAt     time.Time
}
