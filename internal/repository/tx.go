package repository

import (
	"context"
	"time"

	"github.com/hearthvale/craftforge/internal/domain"
)

// Tx defines the transactional surface for the multi-step mutations in
// start (consume materials, create session) and complete (update
// profession, write inventory, delete session). Each engine operation
// runs inside exactly one Tx so a mid-sequence fault rolls everything
// back.
type Tx interface {
	GetSessionForUpdate(ctx context.Context, characterID string) (*domain.CraftingSession, error)
	CreateSession(ctx context.Context, session domain.CraftingSession) error
	UpdateSessionPin(ctx context.Context, characterID string, pinX, pinY, actionsTaken int, lastActionAt time.Time) error
	DeleteSession(ctx context.Context, characterID string) error

	// GetMaterialQuantityForUpdate reads a material stock under a row
	// lock so the validate-then-consume sequence in start cannot race.
	GetMaterialQuantityForUpdate(ctx context.Context, characterID string, materialID int) (int, error)

	// AdjustMaterialQuantity applies a delta to the character's stock of
	// one material. It must reject any adjustment that would take the
	// quantity below zero.
	AdjustMaterialQuantity(ctx context.Context, characterID string, materialID, delta int) error

	SetProfession(ctx context.Context, profession domain.CharacterProfession) error

	// AddOrStackItem merges into the (character, item, quality) stack for
	// stackable items and always inserts a fresh row otherwise.
	AddOrStackItem(ctx context.Context, characterID string, itemID, quantity int, quality domain.Quality, stackable bool) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
