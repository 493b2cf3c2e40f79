package events

import "time"

// Session state-change event codes published on the in-process bus.
const (
	SessionCreated      = "SESSION_CREATED"
	ModeSelected        = "MODE_SELECTED"
	TemplateApplied     = "TEMPLATE_APPLIED"
	ProcessingStarted   = "PROCESSING_STARTED"
	SubmissionCompleted = "SUBMISSION_COMPLETED"
	SubmissionFailed    = "SUBMISSION_FAILED"
	SessionReset        = "SESSION_RESET"
	HistoryReplayed     = "HISTORY_REPLAYED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MODE_SELECTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
