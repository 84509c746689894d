package models

import "time"

// Display is the snapshot of every slot the operator sees.
type Display struct {
	Connection      string          `json:"connection"`
	State           ConnectionState `json:"state"`
	Class           string          `json:"class"` // status-ok | status-error
	Angle           string          `json:"angle"`
	Degrees         *int            `json:"degrees,omitempty"` // set when Angle is a whole number
	Mode            string          `json:"mode"`
	ValidationError string          `json:"validation_error,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Event types streamed to display subscribers.
const (
	EventDisplay         = "display"
	EventValidationError = "validation_error"
)

// Event is the envelope pushed to subscribers on every slot write.
type Event struct {
	Type  string  `json:"type"`
	Data  Display `json:"data"`
	Error string  `json:"error,omitempty"`
}
