package bootstrap

import (
	"log/slog"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/event"
)

// RegisterEventHandlers wires the standing subscribers onto the event
// bus. Currently that is the audit logger, which records every craft
// lifecycle event so session histories can be reconstructed from logs.
func RegisterEventHandlers(bus event.Bus) {
	auditTypes := []domain.EventType{
		domain.EventTypeCraftStarted,
		domain.EventTypeCraftAction,
		domain.EventTypeCraftCompleted,
		domain.EventTypeProfessionLevelUp,
	}

	for _, t := range auditTypes {
		bus.Subscribe(t, auditLogHandler)
	}

	slog.Info("Event handlers registered", "subscribed_types", len(auditTypes))
}

func auditLogHandler(evt event.Event) error {
	slog.Info("Craft event",
		"event_type", evt.Type,
		"version", evt.Version,
		"payload", evt.Payload)
	return nil
}
