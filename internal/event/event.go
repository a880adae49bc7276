package event

import "github.com/hearthvale/craftforge/internal/domain"

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Event is a single craft lifecycle event published on the bus
type Event struct {
	Version  string                 `json:"version"`
	Type     domain.EventType       `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Handler consumes events of a subscribed type. Handler errors are
// counted and logged but never fail the publishing operation.
type Handler func(Event) error
