package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthvale/craftforge/internal/domain"
)

const validSeed = `{
	"version": "1.0",
	"materials": [
		{"name": "iron ore", "rarity": "common"},
		{"name": "dragon scale", "rarity": "rare"}
	],
	"items": [
		{"name": "iron sword", "stackable": false, "attack_bonus": 10, "base_value": 50},
		{"name": "scalebane blade", "stackable": false, "attack_bonus": 22, "base_value": 240}
	],
	"recipes": [
		{
			"name": "iron blades",
			"profession": "blacksmithing",
			"min_level": 1,
			"max_level": 20,
			"craft_time_seconds": 30,
			"base_experience": 40,
			"materials": [{"material": "iron ore", "quantity": 3}],
			"outputs": [
				{"item": "iron sword", "base_weight": 80},
				{"item": "scalebane blade", "min_profession_level": 10, "base_weight": 10, "is_named": true, "requires_rare_material": "dragon scale"}
			]
		}
	]
}`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog_seed.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Load(t *testing.T) {
	loader := NewLoader()

	t.Run("valid seed parses with stable hash", func(t *testing.T) {
		path := writeSeed(t, validSeed)

		cfg, hash, err := loader.Load(path)
		require.NoError(t, err)
		assert.Len(t, cfg.Materials, 2)
		assert.Len(t, cfg.Items, 2)
		assert.Len(t, cfg.Recipes, 1)

		_, hash2, err := loader.Load(path)
		require.NoError(t, err)
		assert.Equal(t, hash, hash2)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := loader.Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeSeed(t, "{not json")
		_, _, err := loader.Load(path)
		assert.Error(t, err)
	})
}

func TestLoader_Validate(t *testing.T) {
	loader := NewLoader()

	base := func() *SeedConfig {
		cfg, _, err := loader.Load(writeSeed(t, validSeed))
		require.NoError(t, err)
		return cfg
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, loader.Validate(base()))
	})

	t.Run("duplicate material name", func(t *testing.T) {
		cfg := base()
		cfg.Materials = append(cfg.Materials, MaterialDef{Name: "iron ore", Rarity: "common"})
		assert.ErrorIs(t, loader.Validate(cfg), ErrDuplicateName)
	})

	t.Run("unknown rarity", func(t *testing.T) {
		cfg := base()
		cfg.Materials[0].Rarity = "mythic"
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidConfig)
	})

	t.Run("unknown profession", func(t *testing.T) {
		cfg := base()
		cfg.Recipes[0].Profession = "fishing"
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidConfig)
	})

	t.Run("inverted level range", func(t *testing.T) {
		cfg := base()
		cfg.Recipes[0].MinLevel = 20
		cfg.Recipes[0].MaxLevel = 5
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidConfig)
	})

	t.Run("cost references unknown material", func(t *testing.T) {
		cfg := base()
		cfg.Recipes[0].Materials[0].Material = "mithril"
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidReference)
	})

	t.Run("output references unknown item", func(t *testing.T) {
		cfg := base()
		cfg.Recipes[0].Outputs[0].Item = "ghost blade"
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidReference)
	})

	t.Run("negative weight rejected", func(t *testing.T) {
		cfg := base()
		cfg.Recipes[0].Outputs[0].BaseWeight = -1
		assert.ErrorIs(t, loader.Validate(cfg), ErrNegativeWeight)
	})

	t.Run("rare gate on common material rejected", func(t *testing.T) {
		cfg := base()
		cfg.Recipes[0].Outputs[1].RequiresRareMaterial = "iron ore"
		assert.ErrorIs(t, loader.Validate(cfg), ErrBadRareGate)
	})

	t.Run("recipe without outputs rejected", func(t *testing.T) {
		cfg := base()
		cfg.Recipes[0].Outputs = nil
		assert.ErrorIs(t, loader.Validate(cfg), ErrInvalidConfig)
	})
}

// stubSeedStore records sync calls and hands out sequential IDs.
type stubSeedStore struct {
	hash      string
	materials []domain.CraftingMaterial
	items     []domain.Item
	groups    []domain.RecipeGroup
	outputs   [][]domain.RecipeOutput
	nextID    int
}

func (s *stubSeedStore) GetSeedHash(_ context.Context) (string, error) { return s.hash, nil }

func (s *stubSeedStore) SetSeedHash(_ context.Context, hash string) error {
	s.hash = hash
	return nil
}

func (s *stubSeedStore) UpsertMaterial(_ context.Context, m domain.CraftingMaterial) (int, error) {
	s.nextID++
	s.materials = append(s.materials, m)
	return s.nextID, nil
}

func (s *stubSeedStore) UpsertItem(_ context.Context, item domain.Item) (int, error) {
	s.nextID++
	s.items = append(s.items, item)
	return s.nextID, nil
}

func (s *stubSeedStore) UpsertRecipeGroup(_ context.Context, group domain.RecipeGroup, outputs []domain.RecipeOutput) (int, error) {
	s.nextID++
	s.groups = append(s.groups, group)
	s.outputs = append(s.outputs, outputs)
	return s.nextID, nil
}

func TestLoader_SyncToDatabase(t *testing.T) {
	ctx := context.Background()
	loader := NewLoader()

	cfg, hash, err := loader.Load(writeSeed(t, validSeed))
	require.NoError(t, err)
	require.NoError(t, loader.Validate(cfg))

	t.Run("full sync resolves references", func(t *testing.T) {
		store := &stubSeedStore{}

		result, err := loader.SyncToDatabase(ctx, cfg, hash, store)
		require.NoError(t, err)
		assert.False(t, result.Skipped)
		assert.Equal(t, 2, result.MaterialsSynced)
		assert.Equal(t, 2, result.ItemsSynced)
		assert.Equal(t, 1, result.RecipesSynced)
		assert.Equal(t, hash, store.hash)

		require.Len(t, store.groups, 1)
		group := store.groups[0]
		assert.Equal(t, "iron blades", group.Name)
		assert.Equal(t, domain.ProfessionBlacksmithing, group.ProfessionType)
		require.Len(t, group.Materials, 1)
		// iron ore was the first upsert, so its ID is 1
		assert.Equal(t, 1, group.Materials[0].MaterialID)
		assert.Equal(t, 3, group.Materials[0].Quantity)

		outs := store.outputs[0]
		require.Len(t, outs, 2)
		assert.Equal(t, 0, outs[0].SortOrder)
		assert.Equal(t, 1, outs[1].SortOrder)
		require.NotNil(t, outs[1].RequiresRareMaterialID)
		// dragon scale was the second upsert
		assert.Equal(t, 2, *outs[1].RequiresRareMaterialID)
	})

	t.Run("unchanged hash skips sync", func(t *testing.T) {
		store := &stubSeedStore{hash: hash}

		result, err := loader.SyncToDatabase(ctx, cfg, hash, store)
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Empty(t, store.materials)
	})
}
