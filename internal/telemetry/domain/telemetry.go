package domain

import "time"

// Event is a best-effort telemetry record describing one handled request or operation.
type Event struct {
	RequestID string    `json:"request_id,omitempty"`
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`
	Metadata  []byte    `json:"metadata,omitempty"` // JSON
	CreatedAt time.Time `json:"created_at"`
}
