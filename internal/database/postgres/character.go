package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/hearthvale/craftforge/internal/domain"
)

// GetCharacter retrieves a character by id
func (r *CraftingRepository) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	var c domain.Character
	err := r.db.QueryRow(ctx, `SELECT character_id, name, level FROM characters WHERE character_id = $1`, characterID).
		Scan(&c.ID, &c.Name, &c.Level)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &c, nil
}

// GetProfession retrieves a character's progress in one profession
func (r *CraftingRepository) GetProfession(ctx context.Context, characterID string, profession domain.ProfessionType) (*domain.CharacterProfession, error) {
	query := `
		SELECT character_id, profession, level, experience
		FROM character_professions
		WHERE character_id = $1 AND profession = $2`

	var p domain.CharacterProfession
	err := r.db.QueryRow(ctx, query, characterID, profession).
		Scan(&p.CharacterID, &p.ProfessionType, &p.Level, &p.Experience)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profession: %w", err)
	}
	return &p, nil
}

// ListProfessions retrieves all of a character's profession rows
func (r *CraftingRepository) ListProfessions(ctx context.Context, characterID string) ([]domain.CharacterProfession, error) {
	query := `
		SELECT character_id, profession, level, experience
		FROM character_professions
		WHERE character_id = $1
		ORDER BY profession`

	rows, err := r.db.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list professions: %w", err)
	}
	defer rows.Close()

	var professions []domain.CharacterProfession
	for rows.Next() {
		var p domain.CharacterProfession
		if err := rows.Scan(&p.CharacterID, &p.ProfessionType, &p.Level, &p.Experience); err != nil {
			return nil, fmt.Errorf("failed to scan profession: %w", err)
		}
		professions = append(professions, p)
	}
	return professions, rows.Err()
}

// SetProfession upserts the character's profession progress
func (t *craftingTx) SetProfession(ctx context.Context, p domain.CharacterProfession) error {
	query := `
		INSERT INTO character_professions (character_id, profession, level, experience)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (character_id, profession)
		DO UPDATE SET level = EXCLUDED.level, experience = EXCLUDED.experience`
	_, err := t.tx.Exec(ctx, query, p.CharacterID, p.ProfessionType, p.Level, p.Experience)
	if err != nil {
		return fmt.Errorf("failed to set profession: %w", err)
	}
	return nil
}
