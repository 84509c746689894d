package service

import "github.com/google/uuid"

// Outcome of one dispatch attempt.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"  // gateway error, logged only
	OutcomeSkipped Outcome = "skipped" // empty sequence input
)

// Dispatch describes what the dispatcher did with one operator interaction.
type Dispatch struct {
	ID      uuid.UUID
	Query   string   // encoded control query, empty when skipped
	Outcome Outcome
	Refresh *Refresh // set only when Outcome == OutcomeSent
}
