package crafting

import (
	"context"
	"fmt"
	"time"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/event"
	"github.com/hearthvale/craftforge/internal/logger"
	"github.com/hearthvale/craftforge/internal/metrics"
	"github.com/hearthvale/craftforge/internal/profession"
	"github.com/hearthvale/craftforge/internal/repository"
)

// Action resolves one minigame move against the active session. The
// success roll follows the profession-level rate curve; on success the
// pin walks one unit in the requested direction, clamped to the grid.
// A failed roll leaves the pin in place. The session's stored position
// is authoritative: client-reported coordinates are never trusted.
func (s *service) Action(ctx context.Context, characterID string, direction domain.Direction) (*ActionResult, error) {
	log := logger.WithComponent(ctx, componentName)

	if characterID == "" {
		return nil, fmt.Errorf("character id is required: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidDirection(direction) {
		return nil, fmt.Errorf("direction %q: %w", direction, domain.ErrInvalidInput)
	}

	var result ActionResult
	err := s.locks.WithLock(characterID, func() error {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer repository.SafeRollback(ctx, tx)

		session, err := tx.GetSessionForUpdate(ctx, characterID)
		if err != nil {
			return fmt.Errorf("failed to lock session: %w", err)
		}
		if session == nil {
			return fmt.Errorf("character %s: %w", characterID, domain.ErrSessionNotFound)
		}

		prof, err := s.loadProfession(ctx, characterID, session.ProfessionType)
		if err != nil {
			return err
		}

		newX, newY := session.PinX, session.PinY
		success := s.rnd() < profession.SuccessRate(prof.Level)
		if success {
			newX, newY = movePin(session.PinX, session.PinY, direction)
		}

		if err := tx.UpdateSessionPin(ctx, characterID, newX, newY, session.ActionsTaken+1, time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = ActionResult{Success: success, NewX: newX, NewY: newY}
		return nil
	})
	if err != nil {
		return nil, err
	}

	outcome := "failure"
	if result.Success {
		outcome = "success"
	}
	metrics.CraftActions.WithLabelValues(outcome).Inc()

	s.bus.Publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    domain.EventTypeCraftAction,
		Payload: result,
		Metadata: map[string]interface{}{
			domain.MetadataKeyCharacterID: characterID,
		},
	})

	log.Debug("Craft action resolved",
		"character_id", characterID,
		"direction", direction,
		"success", result.Success,
		"pin_x", result.NewX,
		"pin_y", result.NewY)

	return &result, nil
}

// movePin walks one unit in a cardinal direction, clamped to the grid.
func movePin(x, y int, direction domain.Direction) (int, int) {
	switch direction {
	case domain.DirectionNorth:
		y++
	case domain.DirectionSouth:
		y--
	case domain.DirectionEast:
		x++
	case domain.DirectionWest:
		x--
	}
	return clampGrid(x), clampGrid(y)
}
