package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/repository"
)

// CacheSchemaVersion is bumped when cached shapes change so stale
// entries from an older build self-invalidate.
const CacheSchemaVersion = "1.0"

// Default cache sizing. Catalog data is small and changes only on
// seed re-sync, so a short TTL keeps re-syncs visible without a flush
// hook.
const (
	DefaultCacheSize = 512
	DefaultCacheTTL  = 5 * time.Minute
)

type cachedEntry[T any] struct {
	version string
	value   T
}

// CachedCatalog is a read-through LRU cache in front of a
// repository.Catalog. Reference data is read on every craft request,
// so lookups are served from memory after first touch.
type CachedCatalog struct {
	inner repository.Catalog

	groups    *expirable.LRU[int, *cachedEntry[*domain.RecipeGroup]]
	groupList *expirable.LRU[string, *cachedEntry[[]domain.RecipeGroup]]
	outputs   *expirable.LRU[int, *cachedEntry[[]domain.RecipeOutput]]
	materials *expirable.LRU[int, *cachedEntry[*domain.CraftingMaterial]]
	items     *expirable.LRU[int, *cachedEntry[*domain.Item]]
	matList   *expirable.LRU[string, *cachedEntry[[]domain.CraftingMaterial]]
}

// NewCachedCatalog wraps inner with an expirable LRU per lookup kind.
func NewCachedCatalog(inner repository.Catalog, size int, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		inner:     inner,
		groups:    expirable.NewLRU[int, *cachedEntry[*domain.RecipeGroup]](size, nil, ttl),
		groupList: expirable.NewLRU[string, *cachedEntry[[]domain.RecipeGroup]](size, nil, ttl),
		outputs:   expirable.NewLRU[int, *cachedEntry[[]domain.RecipeOutput]](size, nil, ttl),
		materials: expirable.NewLRU[int, *cachedEntry[*domain.CraftingMaterial]](size, nil, ttl),
		items:     expirable.NewLRU[int, *cachedEntry[*domain.Item]](size, nil, ttl),
		matList:   expirable.NewLRU[string, *cachedEntry[[]domain.CraftingMaterial]](size, nil, ttl),
	}
}

func getCached[K comparable, T any](lru *expirable.LRU[K, *cachedEntry[T]], key K) (T, bool) {
	var zero T
	entry, found := lru.Get(key)
	if !found {
		return zero, false
	}
	if entry.version != CacheSchemaVersion {
		lru.Remove(key)
		return zero, false
	}
	return entry.value, true
}

func setCached[K comparable, T any](lru *expirable.LRU[K, *cachedEntry[T]], key K, value T) {
	lru.Add(key, &cachedEntry[T]{version: CacheSchemaVersion, value: value})
}

// GetRecipeGroup returns the recipe group, serving repeats from cache.
func (c *CachedCatalog) GetRecipeGroup(ctx context.Context, id int) (*domain.RecipeGroup, error) {
	if v, ok := getCached(c.groups, id); ok {
		return v, nil
	}
	v, err := c.inner.GetRecipeGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	setCached(c.groups, id, v)
	return v, nil
}

// ListRecipeGroups returns all recipe groups for a profession.
func (c *CachedCatalog) ListRecipeGroups(ctx context.Context, profession domain.ProfessionType) ([]domain.RecipeGroup, error) {
	key := string(profession)
	if v, ok := getCached(c.groupList, key); ok {
		return v, nil
	}
	v, err := c.inner.ListRecipeGroups(ctx, profession)
	if err != nil {
		return nil, err
	}
	setCached(c.groupList, key, v)
	return v, nil
}

// ListOutputs returns the outputs of a recipe group in catalog order.
func (c *CachedCatalog) ListOutputs(ctx context.Context, recipeGroupID int) ([]domain.RecipeOutput, error) {
	if v, ok := getCached(c.outputs, recipeGroupID); ok {
		return v, nil
	}
	v, err := c.inner.ListOutputs(ctx, recipeGroupID)
	if err != nil {
		return nil, err
	}
	setCached(c.outputs, recipeGroupID, v)
	return v, nil
}

// ListMaterials returns all material definitions.
func (c *CachedCatalog) ListMaterials(ctx context.Context) ([]domain.CraftingMaterial, error) {
	if v, ok := getCached(c.matList, "all"); ok {
		return v, nil
	}
	v, err := c.inner.ListMaterials(ctx)
	if err != nil {
		return nil, err
	}
	setCached(c.matList, "all", v)
	return v, nil
}

// GetMaterial returns one material definition.
func (c *CachedCatalog) GetMaterial(ctx context.Context, id int) (*domain.CraftingMaterial, error) {
	if v, ok := getCached(c.materials, id); ok {
		return v, nil
	}
	v, err := c.inner.GetMaterial(ctx, id)
	if err != nil {
		return nil, err
	}
	setCached(c.materials, id, v)
	return v, nil
}

// GetItem returns one item definition.
func (c *CachedCatalog) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	if v, ok := getCached(c.items, id); ok {
		return v, nil
	}
	v, err := c.inner.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	setCached(c.items, id, v)
	return v, nil
}
