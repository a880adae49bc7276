package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/logger"
	"github.com/hearthvale/craftforge/internal/validation"
)

// SeedSchemaPath is the JSON schema the seed file must satisfy before
// semantic validation runs.
const SeedSchemaPath = "configs/catalog_seed.schema.json"

// Sentinel errors for the seed loader
var (
	ErrDuplicateName     = errors.New("duplicate name in catalog seed")
	ErrInvalidReference  = errors.New("invalid reference in catalog seed")
	ErrInvalidConfig     = errors.New("invalid catalog configuration")
	ErrNegativeWeight    = errors.New("output weight parameters must be non-negative")
	ErrBadRareGate       = errors.New("requires_rare_material must reference a rare material")
)

// SeedConfig is the parsed authored catalog: materials, items, and
// recipe groups with their outputs. Weight parameters are authored by
// the offline content pipeline; the loader validates ranges but never
// recomputes them.
type SeedConfig struct {
	Version     string           `json:"version"`
	Description string           `json:"description"`
	Materials   []MaterialDef    `json:"materials"`
	Items       []ItemDef        `json:"items"`
	Recipes     []RecipeGroupDef `json:"recipes"`
}

// MaterialDef defines one crafting material
type MaterialDef struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
}

// ItemDef defines one craftable item
type ItemDef struct {
	Name         string `json:"name"`
	Stackable    bool   `json:"stackable"`
	AttackBonus  int    `json:"attack_bonus"`
	DefenseBonus int    `json:"defense_bonus"`
	UtilityBonus int    `json:"utility_bonus"`
	BaseValue    int    `json:"base_value"`
}

// RecipeGroupDef defines one recipe group with costs and outputs
type RecipeGroupDef struct {
	Name             string          `json:"name"`
	Profession       string          `json:"profession"`
	MinLevel         int             `json:"min_level"`
	MaxLevel         int             `json:"max_level"`
	CraftTimeSeconds int             `json:"craft_time_seconds"`
	BaseExperience   int             `json:"base_experience"`
	Materials        []SeedCost      `json:"materials"`
	Outputs          []RecipeOutDef  `json:"outputs"`
}

// SeedCost is a material requirement by name
type SeedCost struct {
	Material string `json:"material"`
	Quantity int    `json:"quantity"`
}

// RecipeOutDef defines one output with its authored weight parameters
type RecipeOutDef struct {
	Item                 string `json:"item"`
	MinProfessionLevel   int    `json:"min_profession_level"`
	BaseWeight           int    `json:"base_weight"`
	WeightPerLevel       int    `json:"weight_per_level"`
	QualityBonusWeight   int    `json:"quality_bonus_weight"`
	IsNamed              bool   `json:"is_named"`
	RequiresRareMaterial string `json:"requires_rare_material,omitempty"`
}

// SyncResult reports what a catalog sync changed
type SyncResult struct {
	MaterialsSynced int
	ItemsSynced     int
	RecipesSynced   int
	Skipped         bool
}

// SeedStore is the write surface the loader syncs into. Implemented by
// the postgres catalog repository.
type SeedStore interface {
	GetSeedHash(ctx context.Context) (string, error)
	SetSeedHash(ctx context.Context, hash string) error
	UpsertMaterial(ctx context.Context, m domain.CraftingMaterial) (int, error)
	UpsertItem(ctx context.Context, item domain.Item) (int, error)
	UpsertRecipeGroup(ctx context.Context, group domain.RecipeGroup, outputs []domain.RecipeOutput) (int, error)
}

// Loader loads, validates, and syncs the authored catalog seed
type Loader struct {
	schema validation.SchemaValidator
}

// NewLoader creates a seed loader
func NewLoader() *Loader {
	return &Loader{schema: validation.NewSchemaValidator()}
}

// Load reads and parses the catalog seed file
func (l *Loader) Load(path string) (*SeedConfig, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog seed: %w", err)
	}

	if err := l.schema.ValidateBytes(data, SeedSchemaPath); err != nil {
		return nil, "", fmt.Errorf("catalog seed rejected by schema: %w", err)
	}

	var cfg SeedConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse catalog seed: %w", err)
	}

	sum := sha256.Sum256(data)
	return &cfg, hex.EncodeToString(sum[:]), nil
}

// Validate checks internal consistency of the seed: unique names,
// resolvable references, legal weight parameters, and rare-material
// gates that point at rare materials.
func (l *Loader) Validate(cfg *SeedConfig) error {
	if len(cfg.Materials) == 0 || len(cfg.Items) == 0 || len(cfg.Recipes) == 0 {
		return fmt.Errorf("%w: materials, items, and recipes must all be present", ErrInvalidConfig)
	}

	materialRarity := make(map[string]string, len(cfg.Materials))
	for _, m := range cfg.Materials {
		if _, dup := materialRarity[m.Name]; dup {
			return fmt.Errorf("%w: material %q", ErrDuplicateName, m.Name)
		}
		switch domain.MaterialRarity(m.Rarity) {
		case domain.RarityCommon, domain.RarityUncommon, domain.RarityRare:
		default:
			return fmt.Errorf("%w: material %q has unknown rarity %q", ErrInvalidConfig, m.Name, m.Rarity)
		}
		materialRarity[m.Name] = m.Rarity
	}

	itemNames := make(map[string]bool, len(cfg.Items))
	for _, it := range cfg.Items {
		if itemNames[it.Name] {
			return fmt.Errorf("%w: item %q", ErrDuplicateName, it.Name)
		}
		itemNames[it.Name] = true
	}

	recipeNames := make(map[string]bool, len(cfg.Recipes))
	for _, r := range cfg.Recipes {
		if recipeNames[r.Name] {
			return fmt.Errorf("%w: recipe %q", ErrDuplicateName, r.Name)
		}
		recipeNames[r.Name] = true

		if !domain.ValidProfession(domain.ProfessionType(r.Profession)) {
			return fmt.Errorf("%w: recipe %q has unknown profession %q", ErrInvalidConfig, r.Name, r.Profession)
		}
		if r.MinLevel < 1 || r.MaxLevel < r.MinLevel {
			return fmt.Errorf("%w: recipe %q has invalid level range [%d,%d]", ErrInvalidConfig, r.Name, r.MinLevel, r.MaxLevel)
		}
		if len(r.Outputs) == 0 {
			return fmt.Errorf("%w: recipe %q has no outputs", ErrInvalidConfig, r.Name)
		}

		for _, cost := range r.Materials {
			if _, ok := materialRarity[cost.Material]; !ok {
				return fmt.Errorf("%w: recipe %q cost references unknown material %q", ErrInvalidReference, r.Name, cost.Material)
			}
			if cost.Quantity <= 0 {
				return fmt.Errorf("%w: recipe %q cost for %q must be positive", ErrInvalidConfig, r.Name, cost.Material)
			}
		}

		for _, out := range r.Outputs {
			if !itemNames[out.Item] {
				return fmt.Errorf("%w: recipe %q output references unknown item %q", ErrInvalidReference, r.Name, out.Item)
			}
			if out.BaseWeight < 0 || out.WeightPerLevel < 0 || out.QualityBonusWeight < 0 {
				return fmt.Errorf("%w: recipe %q output %q", ErrNegativeWeight, r.Name, out.Item)
			}
			if out.RequiresRareMaterial != "" {
				rarity, ok := materialRarity[out.RequiresRareMaterial]
				if !ok {
					return fmt.Errorf("%w: recipe %q output %q gates on unknown material %q", ErrInvalidReference, r.Name, out.Item, out.RequiresRareMaterial)
				}
				if rarity != string(domain.RarityRare) {
					return fmt.Errorf("%w: recipe %q output %q gates on %q", ErrBadRareGate, r.Name, out.Item, out.RequiresRareMaterial)
				}
			}
		}
	}

	return nil
}

// SyncToDatabase writes the seed into the store, skipping entirely when
// the seed file hash matches the last synced hash.
func (l *Loader) SyncToDatabase(ctx context.Context, cfg *SeedConfig, hash string, store SeedStore) (*SyncResult, error) {
	log := logger.WithComponent(ctx, "catalog")

	lastHash, err := store.GetSeedHash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read last seed hash: %w", err)
	}
	if lastHash == hash {
		log.Info("Catalog seed unchanged, sync skipped")
		return &SyncResult{Skipped: true}, nil
	}

	result := &SyncResult{}

	materialIDs := make(map[string]int, len(cfg.Materials))
	for _, m := range cfg.Materials {
		id, err := store.UpsertMaterial(ctx, domain.CraftingMaterial{
			Name:   m.Name,
			Rarity: domain.MaterialRarity(m.Rarity),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upsert material %q: %w", m.Name, err)
		}
		materialIDs[m.Name] = id
		result.MaterialsSynced++
	}

	itemIDs := make(map[string]int, len(cfg.Items))
	for _, it := range cfg.Items {
		id, err := store.UpsertItem(ctx, domain.Item{
			Name:         it.Name,
			Stackable:    it.Stackable,
			AttackBonus:  it.AttackBonus,
			DefenseBonus: it.DefenseBonus,
			UtilityBonus: it.UtilityBonus,
			BaseValue:    it.BaseValue,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upsert item %q: %w", it.Name, err)
		}
		itemIDs[it.Name] = id
		result.ItemsSynced++
	}

	for _, r := range cfg.Recipes {
		group := domain.RecipeGroup{
			Name:             r.Name,
			ProfessionType:   domain.ProfessionType(r.Profession),
			MinLevel:         r.MinLevel,
			MaxLevel:         r.MaxLevel,
			CraftTimeSeconds: r.CraftTimeSeconds,
			BaseExperience:   r.BaseExperience,
		}
		for _, cost := range r.Materials {
			group.Materials = append(group.Materials, domain.RecipeCost{
				MaterialID: materialIDs[cost.Material],
				Quantity:   cost.Quantity,
			})
		}

		outputs := make([]domain.RecipeOutput, 0, len(r.Outputs))
		for i, out := range r.Outputs {
			o := domain.RecipeOutput{
				ItemID:             itemIDs[out.Item],
				MinProfessionLevel: out.MinProfessionLevel,
				BaseWeight:         out.BaseWeight,
				WeightPerLevel:     out.WeightPerLevel,
				QualityBonusWeight: out.QualityBonusWeight,
				IsNamed:            out.IsNamed,
				SortOrder:          i,
			}
			if out.RequiresRareMaterial != "" {
				id := materialIDs[out.RequiresRareMaterial]
				o.RequiresRareMaterialID = &id
			}
			outputs = append(outputs, o)
		}

		if _, err := store.UpsertRecipeGroup(ctx, group, outputs); err != nil {
			return nil, fmt.Errorf("failed to upsert recipe group %q: %w", r.Name, err)
		}
		result.RecipesSynced++
	}

	if err := store.SetSeedHash(ctx, hash); err != nil {
		return nil, fmt.Errorf("failed to record seed hash: %w", err)
	}

	log.Info("Catalog seed synced",
		"materials", result.MaterialsSynced,
		"items", result.ItemsSynced,
		"recipes", result.RecipesSynced)

	return result, nil
}
