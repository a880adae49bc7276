package catalog

import (
	"context"
	"time"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/repository"
)

// cachedCraftingStore layers a CachedCatalog over a full crafting
// repository. Catalog reads hit the cache; everything stateful goes
// straight to the underlying store.
type cachedCraftingStore struct {
	*CachedCatalog
	store repository.Crafting
}

// WrapRepository returns a repository.Crafting whose catalog lookups
// are served through an expirable LRU. Transactions are unaffected:
// per-character state is never cached.
func WrapRepository(store repository.Crafting, size int, ttl time.Duration) repository.Crafting {
	return &cachedCraftingStore{
		CachedCatalog: NewCachedCatalog(store, size, ttl),
		store:         store,
	}
}

func (c *cachedCraftingStore) GetCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	return c.store.GetCharacter(ctx, characterID)
}

func (c *cachedCraftingStore) GetProfession(ctx context.Context, characterID string, profession domain.ProfessionType) (*domain.CharacterProfession, error) {
	return c.store.GetProfession(ctx, characterID, profession)
}

func (c *cachedCraftingStore) ListProfessions(ctx context.Context, characterID string) ([]domain.CharacterProfession, error) {
	return c.store.ListProfessions(ctx, characterID)
}

func (c *cachedCraftingStore) GetMaterialQuantity(ctx context.Context, characterID string, materialID int) (int, error) {
	return c.store.GetMaterialQuantity(ctx, characterID, materialID)
}

func (c *cachedCraftingStore) ListMaterialHoldings(ctx context.Context, characterID string) ([]domain.MaterialHolding, error) {
	return c.store.ListMaterialHoldings(ctx, characterID)
}

func (c *cachedCraftingStore) GetSession(ctx context.Context, characterID string) (*domain.CraftingSession, error) {
	return c.store.GetSession(ctx, characterID)
}

func (c *cachedCraftingStore) BeginTx(ctx context.Context) (repository.Tx, error) {
	return c.store.BeginTx(ctx)
}
