package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SUPPORT_ESCALATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a plain implementation of Event.
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

// EscalationEventType is published whenever a chat turn terminates in the
// escalation node so the support team can be notified out-of-band.
const EscalationEventType = "SUPPORT_ESCALATED"

// NewEscalationEvent builds the event payload for an escalated query.
func NewEscalationEvent(sessionID, query, category string) Event {
	return BaseEvent{
		Type: EscalationEventType,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"query":      query,
			"category":   category,
		},
		OccurredAt: time.Now(),
	}
}
