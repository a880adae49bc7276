package crafting

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/event"
	"github.com/hearthvale/craftforge/internal/logger"
	"github.com/hearthvale/craftforge/internal/metrics"
	"github.com/hearthvale/craftforge/internal/profession"
	"github.com/hearthvale/craftforge/internal/repository"
)

var titleCaser = cases.Title(language.English)

// Complete resolves the active session: applies experience (reduced
// for a failed craft), levels the profession at most once within the
// character-level cap, and on success draws one output from the
// recipe's weighted table and writes it to the inventory. The session
// is deleted whether the craft succeeded or not, so a second call for
// the same session reports no active session.
func (s *service) Complete(ctx context.Context, characterID string, success bool, quality domain.Quality) (*CompleteResult, error) {
	log := logger.WithComponent(ctx, componentName)

	if characterID == "" {
		return nil, fmt.Errorf("character id is required: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidQuality(quality) {
		return nil, fmt.Errorf("quality %q: %w", quality, domain.ErrInvalidInput)
	}

	var result CompleteResult
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

		recipe, err := s.repo.GetRecipeGroup(ctx, session.RecipeGroupID)
		if err != nil {
			return fmt.Errorf("failed to get recipe: %w", err)
		}
		if recipe == nil {
			return fmt.Errorf("recipe %d: %w", session.RecipeGroupID, domain.ErrRecipeNotFound)
		}

		char, err := s.loadCharacter(ctx, characterID)
		if err != nil {
			return err
		}
		prof, err := s.loadProfession(ctx, characterID, session.ProfessionType)
		if err != nil {
			return err
		}

		xpMultiplier := 1.0
		if !success {
			xpMultiplier = failedCraftXPMultiplier
		}
		xpGained := int(math.Floor(float64(recipe.BaseExperience) * xpMultiplier))

		levels := profession.ApplyExperience(prof.Level, prof.Experience, xpGained,
			profession.MaxCraftingLevel(char.Level))

		prof.Level = levels.NewLevel
		prof.Experience = levels.NewExperience
		if err := tx.SetProfession(ctx, *prof); err != nil {
			return fmt.Errorf("failed to update profession: %w", err)
		}

		result = CompleteResult{
			CraftSuccess:   success,
			XPGained:       xpGained,
			LevelUp:        levels.LeveledUp,
			NewLevel:       levels.NewLevel,
			NewExperience:  levels.NewExperience,
			ProfessionType: session.ProfessionType,
			RecipeName:     recipe.Name,
		}

		if success {
			crafted, err := s.resolveOutput(ctx, tx, characterID, session, levels.NewLevel, quality)
			if err != nil {
				return err
			}
			if crafted != nil {
				result.CraftedItem = crafted.DisplayName
				result.FullItem = crafted
			}
		}

		if err := tx.DeleteSession(ctx, characterID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	outcome := "failure"
	if success {
		outcome = "success"
	}
	metrics.CraftsCompleted.WithLabelValues(string(result.ProfessionType), outcome, string(quality)).Inc()
	if result.LevelUp {
		metrics.LevelUps.WithLabelValues(string(result.ProfessionType)).Inc()
	}

	s.bus.Publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    domain.EventTypeCraftCompleted,
		Payload: result,
		Metadata: map[string]interface{}{
			domain.MetadataKeyCharacterID: characterID,
			domain.MetadataKeyProfession:  string(result.ProfessionType),
		},
	})
	if result.LevelUp {
		s.bus.Publish(ctx, event.Event{
			Version: event.EventSchemaVersion,
			Type:    domain.EventTypeProfessionLevelUp,
			Payload: map[string]interface{}{
				"level":      result.NewLevel,
				"profession": result.ProfessionType,
			},
			Metadata: map[string]interface{}{
				domain.MetadataKeyCharacterID: characterID,
				domain.MetadataKeyProfession:  string(result.ProfessionType),
			},
		})
	}

	log.Info("Craft completed",
		"character_id", characterID,
		"recipe", result.RecipeName,
		"success", success,
		"quality", quality,
		"xp_gained", result.XPGained,
		"level_up", result.LevelUp,
		"crafted_item", result.CraftedItem)

	return &result, nil
}

// resolveOutput draws one output for a successful craft and writes it
// to the character's inventory within the completion transaction.
// Eligibility uses the post-completion profession level, so a craft
// that levels the profession can unlock its own reward tier.
func (s *service) resolveOutput(ctx context.Context, tx repository.Tx, characterID string, session *domain.CraftingSession, profLevel int, quality domain.Quality) (*domain.CraftedItem, error) {
	outputs, err := s.repo.ListOutputs(ctx, session.RecipeGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}

	candidates := eligibleOutputs(outputs, profLevel, session.RareMaterialID)
	chosen, ok := selectOutput(candidates, profLevel, quality, s.rnd)
	if !ok {
		// Authored data should always leave at least one ungated
		// output; a successful craft with nothing to award is a
		// catalog defect, not a player-facing failure.
		logger.WithComponent(ctx, componentName).Warn("No eligible outputs for recipe",
			"recipe_id", session.RecipeGroupID, "profession_level", profLevel)
		return nil, nil
	}

	item, err := s.repo.GetItem(ctx, chosen.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", chosen.ItemID, domain.ErrItemNotFound)
	}

	if err := tx.AddOrStackItem(ctx, characterID, item.ID, 1, quality, item.Stackable); err != nil {
		return nil, fmt.Errorf("failed to add item to inventory: %w", err)
	}

	return craftedItemView(item, quality), nil
}

// craftedItemView applies the quality multiplier to the item's numeric
// bonuses and builds the quality-prefixed display name.
func craftedItemView(item *domain.Item, quality domain.Quality) *domain.CraftedItem {
	mult := quality.Multiplier()
	displayName := titleCaser.String(item.Name)
	if quality != domain.QualityCommon {
		displayName = titleCaser.String(string(quality)) + " " + displayName
	}
	return &domain.CraftedItem{
		ItemID:       item.ID,
		Name:         item.Name,
		DisplayName:  displayName,
		Quality:      quality,
		Stackable:    item.Stackable,
		AttackBonus:  scaleBonus(item.AttackBonus, mult),
		DefenseBonus: scaleBonus(item.DefenseBonus, mult),
		UtilityBonus: scaleBonus(item.UtilityBonus, mult),
		BaseValue:    scaleBonus(item.BaseValue, mult),
	}
}

func scaleBonus(v int, mult float64) int {
	return int(math.Round(float64(v) * mult))
}
