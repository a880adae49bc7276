package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hearthvale/craftforge/internal/domain"
)

// GetRecipeGroup retrieves one recipe group with its material costs
func (r *CraftingRepository) GetRecipeGroup(ctx context.Context, id int) (*domain.RecipeGroup, error) {
	query := `
		SELECT recipe_id, name, profession, min_level, max_level,
		       craft_time_seconds, base_experience
		FROM recipe_groups
		WHERE recipe_id = $1`

	var g domain.RecipeGroup
	err := r.db.QueryRow(ctx, query, id).Scan(&g.ID, &g.Name, &g.ProfessionType,
		&g.MinLevel, &g.MaxLevel, &g.CraftTimeSeconds, &g.BaseExperience)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recipe group: %w", err)
	}

	costs, err := r.recipeCosts(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Materials = costs
	return &g, nil
}

// ListRecipeGroups retrieves all recipe groups for one profession, with
// material costs embedded.
func (r *CraftingRepository) ListRecipeGroups(ctx context.Context, profession domain.ProfessionType) ([]domain.RecipeGroup, error) {
	query := `
		SELECT recipe_id, name, profession, min_level, max_level,
		       craft_time_seconds, base_experience
		FROM recipe_groups
		WHERE profession = $1
		ORDER BY min_level, recipe_id`

	rows, err := r.db.Query(ctx, query, profession)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.RecipeGroup
	for rows.Next() {
		var g domain.RecipeGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.ProfessionType, &g.MinLevel,
			&g.MaxLevel, &g.CraftTimeSeconds, &g.BaseExperience); err != nil {
			return nil, fmt.Errorf("failed to scan recipe group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recipe groups: %w", err)
	}

	for i := range groups {
		costs, err := r.recipeCosts(ctx, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Materials = costs
	}
	return groups, nil
}

func (r *CraftingRepository) recipeCosts(ctx context.Context, recipeID int) ([]domain.RecipeCost, error) {
	query := `
		SELECT material_id, quantity
		FROM recipe_materials
		WHERE recipe_id = $1
		ORDER BY material_id`

	rows, err := r.db.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe costs: %w", err)
	}
	defer rows.Close()

	var costs []domain.RecipeCost
	for rows.Next() {
		var c domain.RecipeCost
		if err := rows.Scan(&c.MaterialID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan recipe cost: %w", err)
		}
		costs = append(costs, c)
	}
	return costs, rows.Err()
}

// ListOutputs retrieves a recipe group's outputs in catalog order
func (r *CraftingRepository) ListOutputs(ctx context.Context, recipeGroupID int) ([]domain.RecipeOutput, error) {
	query := `
		SELECT output_id, recipe_id, item_id, min_profession_level,
		       base_weight, weight_per_level, quality_bonus_weight,
		       is_named, requires_rare_material_id, sort_order
		FROM recipe_outputs
		WHERE recipe_id = $1
		ORDER BY sort_order, output_id`

	rows, err := r.db.Query(ctx, query, recipeGroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outputs: %w", err)
	}
	defer rows.Close()

	var outputs []domain.RecipeOutput
	for rows.Next() {
		var o domain.RecipeOutput
		if err := rows.Scan(&o.ID, &o.RecipeGroupID, &o.ItemID, &o.MinProfessionLevel,
			&o.BaseWeight, &o.WeightPerLevel, &o.QualityBonusWeight,
			&o.IsNamed, &o.RequiresRareMaterialID, &o.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan output: %w", err)
		}
		outputs = append(outputs, o)
	}
	return outputs, rows.Err()
}

// ListMaterials retrieves the full material catalog
func (r *CraftingRepository) ListMaterials(ctx context.Context) ([]domain.CraftingMaterial, error) {
	rows, err := r.db.Query(ctx, `SELECT material_id, name, rarity FROM crafting_materials ORDER BY material_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	defer rows.Close()

	var materials []domain.CraftingMaterial
	for rows.Next() {
		var m domain.CraftingMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.Rarity); err != nil {
			return nil, fmt.Errorf("failed to scan material: %w", err)
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

// GetMaterial retrieves one material definition
func (r *CraftingRepository) GetMaterial(ctx context.Context, id int) (*domain.CraftingMaterial, error) {
	var m domain.CraftingMaterial
	err := r.db.QueryRow(ctx, `SELECT material_id, name, rarity FROM crafting_materials WHERE material_id = $1`, id).
		Scan(&m.ID, &m.Name, &m.Rarity)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return &m, nil
}

// GetItem retrieves one item definition
func (r *CraftingRepository) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	query := `
		SELECT item_id, name, stackable, attack_bonus, defense_bonus,
		       utility_bonus, base_value
		FROM items
		WHERE item_id = $1`

	var item domain.Item
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Stackable,
		&item.AttackBonus, &item.DefenseBonus, &item.UtilityBonus, &item.BaseValue)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}
