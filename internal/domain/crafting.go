package domain

import "time"

// ProfessionType identifies a craft-skill track. Each character levels
// professions independently, capped by character level.
type ProfessionType string

const (
	ProfessionBlacksmithing ProfessionType = "blacksmithing"
	ProfessionAlchemy       ProfessionType = "alchemy"
	ProfessionTailoring     ProfessionType = "tailoring"
	ProfessionWoodworking   ProfessionType = "woodworking"
)

// ValidProfession reports whether t names a known profession.
func ValidProfession(t ProfessionType) bool {
	switch t {
	case ProfessionBlacksmithing, ProfessionAlchemy, ProfessionTailoring, ProfessionWoodworking:
		return true
	}
	return false
}

// MaterialRarity classifies crafting materials
type MaterialRarity string

const (
	RarityCommon   MaterialRarity = "common"
	RarityUncommon MaterialRarity = "uncommon"
	RarityRare     MaterialRarity = "rare"
)

// CraftingMaterial is a consumable reagent
type CraftingMaterial struct {
	ID     int            `json:"materialId"`
	Name   string         `json:"name"`
	Rarity MaterialRarity `json:"rarity"`
}

// MaterialHolding is a character's stock of one material
type MaterialHolding struct {
	MaterialID int    `json:"materialId"`
	Name       string `json:"name"`
	Rarity     string `json:"rarity"`
	Quantity   int    `json:"quantity"`
}

// RecipeCost is a single base-material requirement for a recipe group
type RecipeCost struct {
	MaterialID int `json:"materialId"`
	Quantity   int `json:"quantity"`
}

// RecipeGroup is a craftable category that can yield one of several outputs
type RecipeGroup struct {
	ID               int            `json:"recipeId"`
	Name             string         `json:"name"`
	ProfessionType   ProfessionType `json:"profession"`
	MinLevel         int            `json:"minLevel"`
	MaxLevel         int            `json:"maxLevel"`
	CraftTimeSeconds int            `json:"craftTimeSeconds"`
	BaseExperience   int            `json:"baseExperience"`
	Materials        []RecipeCost   `json:"materials"`
}

// RecipeOutput is one concrete item obtainable from a recipe group.
// Weight parameters are authored offline and only read at request time.
// An output with IsNamed=true and a non-nil RequiresRareMaterialID is
// eligible only in a session that consumed that exact rare material.
type RecipeOutput struct {
	ID                     int  `json:"outputId"`
	RecipeGroupID          int  `json:"recipeId"`
	ItemID                 int  `json:"itemId"`
	MinProfessionLevel     int  `json:"minProfessionLevel"`
	BaseWeight             int  `json:"baseWeight"`
	WeightPerLevel         int  `json:"weightPerLevel"`
	QualityBonusWeight     int  `json:"qualityBonusWeight"`
	IsNamed                bool `json:"isNamed"`
	RequiresRareMaterialID *int `json:"requiresRareMaterialId,omitempty"`
	SortOrder              int  `json:"sortOrder"`
}

// CharacterProfession is a character's progress in one profession.
// Invariant: Level <= MaxCraftingLevel(character level).
type CharacterProfession struct {
	CharacterID    string         `json:"characterId"`
	ProfessionType ProfessionType `json:"profession"`
	Level          int            `json:"level"`
	Experience     int            `json:"experience"`
}

// Character is the owning character row; only the level matters to
// the crafting engine (it derives the profession level cap).
type Character struct {
	ID    string `json:"characterId"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// CraftingSession is the single live craft attempt for a character.
// Created by start, mutated by action, unconditionally deleted by
// complete whether the craft succeeded or not.
type CraftingSession struct {
	CharacterID    string         `json:"characterId"`
	RecipeGroupID  int            `json:"recipeId"`
	ProfessionType ProfessionType `json:"profession"`
	PinX           int            `json:"pinX"`
	PinY           int            `json:"pinY"`
	TargetX        int            `json:"targetX"`
	TargetY        int            `json:"targetY"`
	TargetRadius   float64        `json:"targetRadius"`
	RareMaterialID *int           `json:"rareMaterialId,omitempty"`
	ActionsTaken   int            `json:"actionsTaken"`
	StartedAt      time.Time      `json:"startedAt"`
	LastActionAt   time.Time      `json:"lastActionAt"`
}

// Quality is the craft-grade tier of a finished item
type Quality string

const (
	QualityCommon     Quality = "common"
	QualityFine       Quality = "fine"
	QualitySuperior   Quality = "superior"
	QualityMasterwork Quality = "masterwork"
)

// Multiplier returns the stat multiplier applied to an item's numeric
// bonus fields at creation time.
func (q Quality) Multiplier() float64 {
	switch q {
	case QualityFine:
		return 1.05
	case QualitySuperior:
		return 1.10
	case QualityMasterwork:
		return 1.15
	default:
		return 1.0
	}
}

// ValidQuality reports whether q is a known quality tier.
func ValidQuality(q Quality) bool {
	switch q {
	case QualityCommon, QualityFine, QualitySuperior, QualityMasterwork:
		return true
	}
	return false
}

// Direction is a cardinal minigame move
type Direction string

const (
	DirectionNorth Direction = "north"
	DirectionSouth Direction = "south"
	DirectionEast  Direction = "east"
	DirectionWest  Direction = "west"
)

// ValidDirection reports whether d is a cardinal direction.
func ValidDirection(d Direction) bool {
	switch d {
	case DirectionNorth, DirectionSouth, DirectionEast, DirectionWest:
		return true
	}
	return false
}

// RareMaterialDeclined is the wire sentinel a client sends as
// rareMaterialId to decline the rare-material prompt.
const RareMaterialDeclined = -1
