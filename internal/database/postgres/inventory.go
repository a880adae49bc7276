package postgres

import (
	"context"
	"fmt"

	"github.com/hearthvale/craftforge/internal/domain"
)

// AddOrStackItem writes a crafted item to the character's inventory.
// Stackable items merge into the (character, item, quality) stack;
// non-stackable items always get a fresh row.
func (t *craftingTx) AddOrStackItem(ctx context.Context, characterID string, itemID, quantity int, quality domain.Quality, stackable bool) error {
	if stackable {
		query := `
			UPDATE character_items
			SET quantity = quantity + $4
			WHERE character_id = $1 AND item_id = $2 AND quality = $3`
		tag, err := t.tx.Exec(ctx, query, characterID, itemID, quality, quantity)
		if err != nil {
			return fmt.Errorf("failed to stack item: %w", err)
		}
		if tag.RowsAffected() > 0 {
			return nil
		}
	}

	query := `
		INSERT INTO character_items (character_id, item_id, quality, quantity)
		VALUES ($1, $2, $3, $4)`
	if _, err := t.tx.Exec(ctx, query, characterID, itemID, quality, quantity); err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}
