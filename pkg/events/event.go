package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SEARCH_PERFORMED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

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

// DocumentsIngested reports a completed ingestion run to external consumers.
func DocumentsIngested(documents, chunks int) Event {
	return BaseEvent{
		Type: "DOCUMENTS_INGESTED",
		Data: map[string]interface{}{
			"documents": documents,
			"chunks":    chunks,
		},
		OccurredAt: time.Now(),
	}
}

// SearchPerformed reports one similarity search and its latency.
func SearchPerformed(query string, results int, responseTimeMs int64) Event {
	return BaseEvent{
		Type: "SEARCH_PERFORMED",
		Data: map[string]interface{}{
			"query":            query,
			"results":          results,
			"response_time_ms": responseTimeMs,
		},
		OccurredAt: time.Now(),
	}
}
