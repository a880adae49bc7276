package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hearthvale/craftforge/internal/domain"
)

// GetMaterialQuantity reads a character's stock of one material.
// A missing row reads as zero.
func (r *CraftingRepository) GetMaterialQuantity(ctx context.Context, characterID string, materialID int) (int, error) {
	var qty int
	err := r.db.QueryRow(ctx,
		`SELECT quantity FROM character_materials WHERE character_id = $1 AND material_id = $2`,
		characterID, materialID).Scan(&qty)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get material quantity: %w", err)
	}
	return qty, nil
}

// ListMaterialHoldings lists the character's material stocks joined
// with the catalog definitions.
func (r *CraftingRepository) ListMaterialHoldings(ctx context.Context, characterID string) ([]domain.MaterialHolding, error) {
	query := `
		SELECT cm.material_id, m.name, m.rarity, cm.quantity
		FROM character_materials cm
		JOIN crafting_materials m ON m.material_id = cm.material_id
		WHERE cm.character_id = $1
		ORDER BY cm.material_id`

	rows, err := r.db.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list material holdings: %w", err)
	}
	defer rows.Close()

	var holdings []domain.MaterialHolding
	for rows.Next() {
		var h domain.MaterialHolding
		if err := rows.Scan(&h.MaterialID, &h.Name, &h.Rarity, &h.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan material holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// GetMaterialQuantityForUpdate reads the stock under a row lock
func (t *craftingTx) GetMaterialQuantityForUpdate(ctx context.Context, characterID string, materialID int) (int, error) {
	var qty int
	err := t.tx.QueryRow(ctx,
		`SELECT quantity FROM character_materials WHERE character_id = $1 AND material_id = $2 FOR UPDATE`,
		characterID, materialID).Scan(&qty)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get material quantity: %w", err)
	}
	return qty, nil
}

// AdjustMaterialQuantity applies a delta to the character's stock. The
// guarded UPDATE (and the table's non-negative check) make a
// below-zero adjustment report ErrInsufficientMaterial instead of
// writing a negative stock.
func (t *craftingTx) AdjustMaterialQuantity(ctx context.Context, characterID string, materialID, delta int) error {
	if delta >= 0 {
		query := `
			INSERT INTO character_materials (character_id, material_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (character_id, material_id)
			DO UPDATE SET quantity = character_materials.quantity + EXCLUDED.quantity`
		if _, err := t.tx.Exec(ctx, query, characterID, materialID, delta); err != nil {
			return fmt.Errorf("failed to add material: %w", err)
		}
		return nil
	}

	query := `
		UPDATE character_materials
		SET quantity = quantity + $3
		WHERE character_id = $1 AND material_id = $2 AND quantity + $3 >= 0`
	tag, err := t.tx.Exec(ctx, query, characterID, materialID, delta)
	if err != nil {
		return fmt.Errorf("failed to consume material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("material %d: %w", materialID, domain.ErrInsufficientMaterial)
	}
	return nil
}
