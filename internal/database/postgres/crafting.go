package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/repository"
)

// CraftingRepository implements repository.Crafting for PostgreSQL
type CraftingRepository struct {
	db *pgxpool.Pool
}

// NewCraftingRepository creates a new CraftingRepository
func NewCraftingRepository(db *pgxpool.Pool) *CraftingRepository {
	return &CraftingRepository{db: db}
}

// craftingTx implements repository.Tx on a single pgx transaction
type craftingTx struct {
	tx pgx.Tx
}

// BeginTx starts a new transaction
func (r *CraftingRepository) BeginTx(ctx context.Context) (repository.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &craftingTx{tx: tx}, nil
}

// Commit commits the transaction
func (t *craftingTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *craftingTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

const sessionColumns = `character_id, recipe_id, profession, pin_x, pin_y,
	target_x, target_y, target_radius, rare_material_id, actions_taken,
	started_at, last_action_at`

func scanSession(row pgx.Row) (*domain.CraftingSession, error) {
	var s domain.CraftingSession
	err := row.Scan(&s.CharacterID, &s.RecipeGroupID, &s.ProfessionType,
		&s.PinX, &s.PinY, &s.TargetX, &s.TargetY, &s.TargetRadius,
		&s.RareMaterialID, &s.ActionsTaken, &s.StartedAt, &s.LastActionAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan session: %w", err)
	}
	return &s, nil
}

// GetSession retrieves the character's active session, if any
func (r *CraftingRepository) GetSession(ctx context.Context, characterID string) (*domain.CraftingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM crafting_sessions WHERE character_id = $1`
	return scanSession(r.db.QueryRow(ctx, query, characterID))
}

// GetSessionForUpdate retrieves the session under a row lock
func (t *craftingTx) GetSessionForUpdate(ctx context.Context, characterID string) (*domain.CraftingSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM crafting_sessions WHERE character_id = $1 FOR UPDATE`
	return scanSession(t.tx.QueryRow(ctx, query, characterID))
}

// CreateSession inserts the character's session row. The primary key on
// character_id enforces the one-session invariant at the storage layer.
func (t *craftingTx) CreateSession(ctx context.Context, s domain.CraftingSession) error {
	query := `
		INSERT INTO crafting_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := t.tx.Exec(ctx, query,
		s.CharacterID, s.RecipeGroupID, s.ProfessionType,
		s.PinX, s.PinY, s.TargetX, s.TargetY, s.TargetRadius,
		s.RareMaterialID, s.ActionsTaken, s.StartedAt, s.LastActionAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// UpdateSessionPin stores the authoritative pin position and action count
func (t *craftingTx) UpdateSessionPin(ctx context.Context, characterID string, pinX, pinY, actionsTaken int, lastActionAt time.Time) error {
	query := `
		UPDATE crafting_sessions
		SET pin_x = $2, pin_y = $3, actions_taken = $4, last_action_at = $5
		WHERE character_id = $1`
	tag, err := t.tx.Exec(ctx, query, characterID, pinX, pinY, actionsTaken, lastActionAt)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// DeleteSession removes the character's session row
func (t *craftingTx) DeleteSession(ctx context.Context, characterID string) error {
	_, err := t.tx.Exec(ctx, `DELETE FROM crafting_sessions WHERE character_id = $1`, characterID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
