package repository

import (
	"context"

	"github.com/hearthvale/craftforge/internal/domain"
)

// Catalog is the read-only recipe/material/item reference data consumed
// by the crafting engine. Implementations may cache freely: the data
// only changes when authored seeds are re-synced.
type Catalog interface {
	GetRecipeGroup(ctx context.Context, id int) (*domain.RecipeGroup, error)
	ListRecipeGroups(ctx context.Context, profession domain.ProfessionType) ([]domain.RecipeGroup, error)
	ListOutputs(ctx context.Context, recipeGroupID int) ([]domain.RecipeOutput, error)
	ListMaterials(ctx context.Context) ([]domain.CraftingMaterial, error)
	GetMaterial(ctx context.Context, id int) (*domain.CraftingMaterial, error)
	GetItem(ctx context.Context, id int) (*domain.Item, error)
}

// Crafting aggregates all store access the crafting engine needs
// outside a transaction.
type Crafting interface {
	Catalog

	GetCharacter(ctx context.Context, characterID string) (*domain.Character, error)
	GetProfession(ctx context.Context, characterID string, profession domain.ProfessionType) (*domain.CharacterProfession, error)
	ListProfessions(ctx context.Context, characterID string) ([]domain.CharacterProfession, error)

	GetMaterialQuantity(ctx context.Context, characterID string, materialID int) (int, error)
	ListMaterialHoldings(ctx context.Context, characterID string) ([]domain.MaterialHolding, error)

	GetSession(ctx context.Context, characterID string) (*domain.CraftingSession, error)

	BeginTx(ctx context.Context) (Tx, error)
}
