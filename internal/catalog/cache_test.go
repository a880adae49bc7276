package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthvale/craftforge/internal/domain"
)

// countingCatalog tracks how many times each lookup reached the store.
type countingCatalog struct {
	groupCalls    int
	listCalls     int
	outputCalls   int
	materialCalls int
	itemCalls     int
	allMatCalls   int
}

func (c *countingCatalog) GetRecipeGroup(_ context.Context, id int) (*domain.RecipeGroup, error) {
	c.groupCalls++
	return &domain.RecipeGroup{ID: id, Name: "iron blades"}, nil
}

func (c *countingCatalog) ListRecipeGroups(_ context.Context, profession domain.ProfessionType) ([]domain.RecipeGroup, error) {
	c.listCalls++
	return []domain.RecipeGroup{{ID: 1, ProfessionType: profession}}, nil
}

func (c *countingCatalog) ListOutputs(_ context.Context, recipeGroupID int) ([]domain.RecipeOutput, error) {
	c.outputCalls++
	return []domain.RecipeOutput{{RecipeGroupID: recipeGroupID, ItemID: 1, BaseWeight: 100}}, nil
}

func (c *countingCatalog) ListMaterials(_ context.Context) ([]domain.CraftingMaterial, error) {
	c.allMatCalls++
	return []domain.CraftingMaterial{{ID: 1, Name: "iron ore", Rarity: domain.RarityCommon}}, nil
}

func (c *countingCatalog) GetMaterial(_ context.Context, id int) (*domain.CraftingMaterial, error) {
	c.materialCalls++
	return &domain.CraftingMaterial{ID: id, Name: "iron ore", Rarity: domain.RarityCommon}, nil
}

func (c *countingCatalog) GetItem(_ context.Context, id int) (*domain.Item, error) {
	c.itemCalls++
	return &domain.Item{ID: id, Name: "iron sword"}, nil
}

func TestCachedCatalog_ServesRepeatsFromMemory(t *testing.T) {
	ctx := context.Background()
	inner := &countingCatalog{}
	cached := NewCachedCatalog(inner, DefaultCacheSize, time.Minute)

	for i := 0; i < 3; i++ {
		group, err := cached.GetRecipeGroup(ctx, 101)
		require.NoError(t, err)
		assert.Equal(t, "iron blades", group.Name)
	}
	assert.Equal(t, 1, inner.groupCalls)

	for i := 0; i < 3; i++ {
		_, err := cached.ListRecipeGroups(ctx, domain.ProfessionBlacksmithing)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.listCalls)

	for i := 0; i < 3; i++ {
		_, err := cached.ListOutputs(ctx, 101)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.outputCalls)

	for i := 0; i < 3; i++ {
		_, err := cached.GetMaterial(ctx, 7)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.materialCalls)

	for i := 0; i < 3; i++ {
		_, err := cached.GetItem(ctx, 301)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.itemCalls)

	for i := 0; i < 3; i++ {
		_, err := cached.ListMaterials(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.allMatCalls)
}

func TestCachedCatalog_DistinctKeysFetchSeparately(t *testing.T) {
	ctx := context.Background()
	inner := &countingCatalog{}
	cached := NewCachedCatalog(inner, DefaultCacheSize, time.Minute)

	_, err := cached.GetRecipeGroup(ctx, 101)
	require.NoError(t, err)
	_, err = cached.GetRecipeGroup(ctx, 201)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.groupCalls)

	_, err = cached.ListRecipeGroups(ctx, domain.ProfessionBlacksmithing)
	require.NoError(t, err)
	_, err = cached.ListRecipeGroups(ctx, domain.ProfessionAlchemy)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.listCalls)
}
