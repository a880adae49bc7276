package crafting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/event"
	"github.com/hearthvale/craftforge/internal/logger"
	"github.com/hearthvale/craftforge/internal/metrics"
	"github.com/hearthvale/craftforge/internal/profession"
	"github.com/hearthvale/craftforge/internal/repository"
)

// Start validates a craft request and, once the rare-material question
// is settled, consumes the recipe's materials and creates the session
// in one transaction. When the character holds a rare material that
// unlocks one of the recipe's outputs and the caller has not answered
// the prompt yet (rareMaterialID nil), Start returns the prompt
// without touching any state.
func (s *service) Start(ctx context.Context, characterID string, recipeID int, rareMaterialID *int) (*StartResult, error) {
	log := logger.WithComponent(ctx, componentName)

	if characterID == "" {
		return nil, fmt.Errorf("character id is required: %w", domain.ErrInvalidInput)
	}

	recipe, err := s.repo.GetRecipeGroup(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, fmt.Errorf("recipe %d: %w", recipeID, domain.ErrRecipeNotFound)
	}

	char, err := s.loadCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	prof, err := s.loadProfession(ctx, characterID, recipe.ProfessionType)
	if err != nil {
		return nil, err
	}

	if prof.Level < recipe.MinLevel {
		return nil, fmt.Errorf("recipe %d requires level %d, have %d: %w",
			recipeID, recipe.MinLevel, prof.Level, domain.ErrLevelTooLow)
	}
	if prof.Level > recipe.MaxLevel {
		return nil, fmt.Errorf("recipe %d caps at level %d, have %d: %w",
			recipeID, recipe.MaxLevel, prof.Level, domain.ErrLevelAboveCap)
	}
	if levelCap := profession.MaxCraftingLevel(char.Level); prof.Level > levelCap {
		return nil, fmt.Errorf("profession level %d exceeds character cap %d: %w",
			prof.Level, levelCap, domain.ErrLevelAboveCap)
	}

	existing, err := s.repo.GetSession(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("character %s: %w", characterID, domain.ErrSessionActive)
	}

	// Rare-material negotiation, scoped to the materials that actually
	// unlock one of this recipe's named outputs. The first call with no
	// answer returns the prompt when the character holds any such
	// material; the client retries with a concrete choice or the
	// decline sentinel.
	outputs, err := s.repo.ListOutputs(ctx, recipe.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	gates := rareGateSet(outputs)

	var chosenRare *int
	switch {
	case rareMaterialID == nil:
		if len(gates) > 0 {
			rares, err := s.rareHoldings(ctx, characterID, gates)
			if err != nil {
				return nil, err
			}
			if len(rares) > 0 {
				return &StartResult{
					NeedsRareMaterialChoice: true,
					AvailableRareMaterials:  rares,
				}, nil
			}
		}
	case *rareMaterialID == domain.RareMaterialDeclined:
		// explicit decline, proceed without a rare material
	default:
		mat, err := s.repo.GetMaterial(ctx, *rareMaterialID)
		if err != nil {
			return nil, fmt.Errorf("failed to get material: %w", err)
		}
		if mat == nil {
			return nil, fmt.Errorf("material %d: %w", *rareMaterialID, domain.ErrMaterialNotFound)
		}
		if mat.Rarity != domain.RarityRare {
			return nil, fmt.Errorf("material %s is not rare: %w", mat.Name, domain.ErrInvalidInput)
		}
		if !gates[mat.ID] {
			return nil, fmt.Errorf("material %s unlocks no output of recipe %d: %w",
				mat.Name, recipe.ID, domain.ErrInvalidInput)
		}
		id := *rareMaterialID
		chosenRare = &id
	}

	var session domain.CraftingSession
	err = s.locks.WithLock(characterID, func() error {
		tx, err := s.repo.BeginTx(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer repository.SafeRollback(ctx, tx)

		// Re-check under the row lock; two starts can pass the earlier
		// read before either commits.
		locked, err := tx.GetSessionForUpdate(ctx, characterID)
		if err != nil {
			return fmt.Errorf("failed to lock session: %w", err)
		}
		if locked != nil {
			return fmt.Errorf("character %s: %w", characterID, domain.ErrSessionActive)
		}

		for _, cost := range recipe.Materials {
			have, err := tx.GetMaterialQuantityForUpdate(ctx, characterID, cost.MaterialID)
			if err != nil {
				return fmt.Errorf("failed to read material %d: %w", cost.MaterialID, err)
			}
			if have < cost.Quantity {
				mat, merr := s.repo.GetMaterial(ctx, cost.MaterialID)
				name := fmt.Sprintf("material %d", cost.MaterialID)
				if merr == nil && mat != nil {
					name = mat.Name
				}
				return &domain.InsufficientMaterialError{MaterialName: name, Needed: cost.Quantity, Have: have}
			}
			if err := tx.AdjustMaterialQuantity(ctx, characterID, cost.MaterialID, -cost.Quantity); err != nil {
				return fmt.Errorf("failed to consume material %d: %w", cost.MaterialID, err)
			}
		}

		if chosenRare != nil {
			have, err := tx.GetMaterialQuantityForUpdate(ctx, characterID, *chosenRare)
			if err != nil {
				return fmt.Errorf("failed to read rare material %d: %w", *chosenRare, err)
			}
			if have < 1 {
				return fmt.Errorf("material %d: %w", *chosenRare, domain.ErrInsufficientRareMaterial)
			}
			if err := tx.AdjustMaterialQuantity(ctx, characterID, *chosenRare, -1); err != nil {
				return fmt.Errorf("failed to consume rare material %d: %w", *chosenRare, err)
			}
		}

		pinX, pinY := rollPinStart(s.rnd)
		targetX, targetY := rollTarget(s.rnd)
		now := time.Now().UTC()
		session = domain.CraftingSession{
			CharacterID:    characterID,
			RecipeGroupID:  recipe.ID,
			ProfessionType: recipe.ProfessionType,
			PinX:           pinX,
			PinY:           pinY,
			TargetX:        targetX,
			TargetY:        targetY,
			TargetRadius:   TargetRadius(recipe.MinLevel - prof.Level),
			RareMaterialID: chosenRare,
			ActionsTaken:   0,
			StartedAt:      now,
			LastActionAt:   now,
		}
		if err := tx.CreateSession(ctx, session); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		var insufficient *domain.InsufficientMaterialError
		if !errors.As(err, &insufficient) && !errors.Is(err, domain.ErrSessionActive) &&
			!errors.Is(err, domain.ErrInsufficientRareMaterial) {
			log.Error("Craft start failed", "character_id", characterID, "recipe_id", recipeID, "error", err)
		}
		return nil, err
	}

	metrics.CraftsStarted.WithLabelValues(string(recipe.ProfessionType)).Inc()
	for _, cost := range recipe.Materials {
		metrics.MaterialsConsumed.WithLabelValues(fmt.Sprintf("%d", cost.MaterialID)).Add(float64(cost.Quantity))
	}
	if chosenRare != nil {
		metrics.MaterialsConsumed.WithLabelValues(fmt.Sprintf("%d", *chosenRare)).Inc()
	}

	s.bus.Publish(ctx, event.Event{
		Version: event.EventSchemaVersion,
		Type:    domain.EventTypeCraftStarted,
		Payload: session,
		Metadata: map[string]interface{}{
			domain.MetadataKeyCharacterID: characterID,
			domain.MetadataKeyRecipeID:    recipe.ID,
			domain.MetadataKeyProfession:  string(recipe.ProfessionType),
		},
	})

	log.Info("Craft started",
		"character_id", characterID,
		"recipe_id", recipe.ID,
		"profession", recipe.ProfessionType,
		"rare_material", chosenRare != nil)

	holdings, err := s.repo.ListMaterialHoldings(ctx, characterID)
	if err != nil {
		// The session is committed; report it even if the ledger read failed.
		log.Error("Failed to list holdings after start", "character_id", characterID, "error", err)
		holdings = nil
	}

	return &StartResult{
		Session: &SessionView{
			RecipeID:         recipe.ID,
			RecipeName:       recipe.Name,
			Profession:       string(recipe.ProfessionType),
			PinX:             session.PinX,
			PinY:             session.PinY,
			TargetX:          session.TargetX,
			TargetY:          session.TargetY,
			TargetRadius:     session.TargetRadius,
			CraftTimeSeconds: recipe.CraftTimeSeconds,
		},
		Materials: holdings,
	}, nil
}

// rareGateSet collects the rare-material ids that unlock any of the
// recipe's outputs.
func rareGateSet(outputs []domain.RecipeOutput) map[int]bool {
	gates := make(map[int]bool)
	for _, o := range outputs {
		if o.RequiresRareMaterialID != nil {
			gates[*o.RequiresRareMaterialID] = true
		}
	}
	return gates
}

// rareHoldings lists the character's in-stock rare materials that
// appear in the gate set.
func (s *service) rareHoldings(ctx context.Context, characterID string, gates map[int]bool) ([]domain.MaterialHolding, error) {
	holdings, err := s.repo.ListMaterialHoldings(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	var rares []domain.MaterialHolding
	for _, h := range holdings {
		if h.Rarity == string(domain.RarityRare) && h.Quantity > 0 && gates[h.MaterialID] {
			rares = append(rares, h)
		}
	}
	return rares, nil
}
