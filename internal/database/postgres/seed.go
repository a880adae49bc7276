package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hearthvale/craftforge/internal/domain"
)

// GetSeedHash reads the hash of the last synced catalog seed, or an
// empty string when no seed has been synced yet.
func (r *CraftingRepository) GetSeedHash(ctx context.Context) (string, error) {
	var hash string
	err := r.db.QueryRow(ctx, `SELECT hash FROM catalog_seed_hash WHERE id = 1`).Scan(&hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get seed hash: %w", err)
	}
	return hash, nil
}

// SetSeedHash records the hash of the synced catalog seed
func (r *CraftingRepository) SetSeedHash(ctx context.Context, hash string) error {
	query := `
		INSERT INTO catalog_seed_hash (id, hash, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET hash = EXCLUDED.hash, updated_at = NOW()`
	if _, err := r.db.Exec(ctx, query, hash); err != nil {
		return fmt.Errorf("failed to set seed hash: %w", err)
	}
	return nil
}

// UpsertMaterial writes a material definition keyed by name and
// returns its id.
func (r *CraftingRepository) UpsertMaterial(ctx context.Context, m domain.CraftingMaterial) (int, error) {
	query := `
		INSERT INTO crafting_materials (name, rarity)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET rarity = EXCLUDED.rarity
		RETURNING material_id`
	var id int
	if err := r.db.QueryRow(ctx, query, m.Name, m.Rarity).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert material: %w", err)
	}
	return id, nil
}

// UpsertItem writes an item definition keyed by name and returns its id
func (r *CraftingRepository) UpsertItem(ctx context.Context, item domain.Item) (int, error) {
	query := `
		INSERT INTO items (name, stackable, attack_bonus, defense_bonus, utility_bonus, base_value)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			stackable = EXCLUDED.stackable,
			attack_bonus = EXCLUDED.attack_bonus,
			defense_bonus = EXCLUDED.defense_bonus,
			utility_bonus = EXCLUDED.utility_bonus,
			base_value = EXCLUDED.base_value
		RETURNING item_id`
	var id int
	err := r.db.QueryRow(ctx, query, item.Name, item.Stackable, item.AttackBonus,
		item.DefenseBonus, item.UtilityBonus, item.BaseValue).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert item: %w", err)
	}
	return id, nil
}

// UpsertRecipeGroup writes a recipe group keyed by name, replacing its
// costs and outputs wholesale so removed seed entries do not linger.
func (r *CraftingRepository) UpsertRecipeGroup(ctx context.Context, group domain.RecipeGroup, outputs []domain.RecipeOutput) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO recipe_groups (name, profession, min_level, max_level, craft_time_seconds, base_experience)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			profession = EXCLUDED.profession,
			min_level = EXCLUDED.min_level,
			max_level = EXCLUDED.max_level,
			craft_time_seconds = EXCLUDED.craft_time_seconds,
			base_experience = EXCLUDED.base_experience
		RETURNING recipe_id`
	var id int
	err = tx.QueryRow(ctx, query, group.Name, group.ProfessionType, group.MinLevel,
		group.MaxLevel, group.CraftTimeSeconds, group.BaseExperience).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert recipe group: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_materials WHERE recipe_id = $1`, id); err != nil {
		return 0, fmt.Errorf("failed to clear recipe costs: %w", err)
	}
	for _, cost := range group.Materials {
		_, err := tx.Exec(ctx,
			`INSERT INTO recipe_materials (recipe_id, material_id, quantity) VALUES ($1, $2, $3)`,
			id, cost.MaterialID, cost.Quantity)
		if err != nil {
			return 0, fmt.Errorf("failed to insert recipe cost: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_outputs WHERE recipe_id = $1`, id); err != nil {
		return 0, fmt.Errorf("failed to clear recipe outputs: %w", err)
	}
	for _, out := range outputs {
		_, err := tx.Exec(ctx, `
			INSERT INTO recipe_outputs (recipe_id, item_id, min_profession_level,
				base_weight, weight_per_level, quality_bonus_weight,
				is_named, requires_rare_material_id, sort_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			id, out.ItemID, out.MinProfessionLevel, out.BaseWeight, out.WeightPerLevel,
			out.QualityBonusWeight, out.IsNamed, out.RequiresRareMaterialID, out.SortOrder)
		if err != nil {
			return 0, fmt.Errorf("failed to insert recipe output: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit recipe group: %w", err)
	}
	return id, nil
}
