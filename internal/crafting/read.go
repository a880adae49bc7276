package crafting

import (
	"context"
	"fmt"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/profession"
)

// GetBasicData returns the character's profession progress and material
// ledger for the crafting overview screen.
func (s *service) GetBasicData(ctx context.Context, characterID string) (*BasicData, error) {
	if characterID == "" {
		return nil, fmt.Errorf("character id is required: %w", domain.ErrInvalidInput)
	}

	char, err := s.loadCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	professions, err := s.repo.ListProfessions(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list professions: %w", err)
	}

	levelCap := profession.MaxCraftingLevel(char.Level)
	views := make([]ProfessionView, 0, len(professions))
	for _, p := range professions {
		views = append(views, ProfessionView{
			Profession:    p.ProfessionType,
			Level:         p.Level,
			Experience:    p.Experience,
			LevelCap:      levelCap,
			XPToNextLevel: profession.XPToNextLevel(p.Level, p.Experience),
		})
	}

	holdings, err := s.repo.ListMaterialHoldings(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}

	return &BasicData{
		Professions: views,
		Materials:   holdings,
	}, nil
}

// GetRecipes returns the recipe catalog for one profession with the
// character's eligibility resolved against it: level gates and material
// shortfalls mark a recipe locked without hiding it.
func (s *service) GetRecipes(ctx context.Context, characterID string, professionType domain.ProfessionType) ([]RecipeView, error) {
	if characterID == "" {
		return nil, fmt.Errorf("character id is required: %w", domain.ErrInvalidInput)
	}
	if !domain.ValidProfession(professionType) {
		return nil, fmt.Errorf("profession %q: %w", professionType, domain.ErrInvalidInput)
	}

	if _, err := s.loadCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	prof, err := s.loadProfession(ctx, characterID, professionType)
	if err != nil {
		return nil, err
	}

	groups, err := s.repo.ListRecipeGroups(ctx, professionType)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	holdings, err := s.repo.ListMaterialHoldings(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	stock := make(map[int]domain.MaterialHolding, len(holdings))
	for _, h := range holdings {
		stock[h.MaterialID] = h
	}

	materialName := func(id int) string {
		if h, ok := stock[id]; ok {
			return h.Name
		}
		mat, err := s.repo.GetMaterial(ctx, id)
		if err != nil || mat == nil {
			return fmt.Sprintf("material %d", id)
		}
		return mat.Name
	}

	views := make([]RecipeView, 0, len(groups))
	for _, g := range groups {
		view := RecipeView{
			RecipeID:         g.ID,
			Name:             g.Name,
			Profession:       g.ProfessionType,
			MinLevel:         g.MinLevel,
			MaxLevel:         g.MaxLevel,
			CraftTimeSeconds: g.CraftTimeSeconds,
			BaseExperience:   g.BaseExperience,
			Materials:        make([]RecipeMaterialView, 0, len(g.Materials)),
		}

		shortfall := false
		for _, cost := range g.Materials {
			have := stock[cost.MaterialID].Quantity
			if have < cost.Quantity {
				shortfall = true
			}
			view.Materials = append(view.Materials, RecipeMaterialView{
				MaterialID: cost.MaterialID,
				Name:       materialName(cost.MaterialID),
				Quantity:   cost.Quantity,
				Have:       have,
			})
		}

		switch {
		case prof.Level < g.MinLevel:
			view.Locked = true
			view.LockedReason = fmt.Sprintf("requires %s level %d", g.ProfessionType, g.MinLevel)
		case prof.Level > g.MaxLevel:
			view.Locked = true
			view.LockedReason = fmt.Sprintf("outleveled at %s level %d", g.ProfessionType, g.MaxLevel)
		case shortfall:
			view.Locked = true
			view.LockedReason = "missing materials"
		}

		views = append(views, view)
	}

	return views, nil
}
