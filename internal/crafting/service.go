package crafting

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/hearthvale/craftforge/internal/concurrency"
	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/event"
	"github.com/hearthvale/craftforge/internal/repository"
)

// Service defines the crafting engine operations
type Service interface {
	Start(ctx context.Context, characterID string, recipeID int, rareMaterialID *int) (*StartResult, error)
	Action(ctx context.Context, characterID string, direction domain.Direction) (*ActionResult, error)
	Complete(ctx context.Context, characterID string, success bool, quality domain.Quality) (*CompleteResult, error)
	GetBasicData(ctx context.Context, characterID string) (*BasicData, error)
	GetRecipes(ctx context.Context, characterID string, profession domain.ProfessionType) ([]RecipeView, error)
}

// SessionView is the session geometry returned by Start
type SessionView struct {
	RecipeID         int     `json:"recipeId"`
	RecipeName       string  `json:"recipeName"`
	Profession       string  `json:"profession"`
	PinX             int     `json:"pinX"`
	PinY             int     `json:"pinY"`
	TargetX          int     `json:"targetX"`
	TargetY          int     `json:"targetY"`
	TargetRadius     float64 `json:"targetRadius"`
	CraftTimeSeconds int     `json:"craftTimeSeconds"`
}

// StartResult is the outcome of a start call. Either the session was
// created (Session set, Materials holding the updated ledger) or the
// caller must answer the rare-material prompt first.
type StartResult struct {
	NeedsRareMaterialChoice bool
	AvailableRareMaterials  []domain.MaterialHolding
	Session                 *SessionView
	Materials               []domain.MaterialHolding
}

// ActionResult reports one minigame move
type ActionResult struct {
	Success bool `json:"success"`
	NewX    int  `json:"newX"`
	NewY    int  `json:"newY"`
}

// CompleteResult reports the resolved craft: XP, leveling, and the
// produced item when the craft succeeded.
type CompleteResult struct {
	CraftSuccess   bool                  `json:"craftSuccess"`
	XPGained       int                   `json:"xpGained"`
	LevelUp        bool                  `json:"levelUp"`
	NewLevel       int                   `json:"newLevel"`
	NewExperience  int                   `json:"newExperience"`
	ProfessionType domain.ProfessionType `json:"professionType"`
	RecipeName     string                `json:"recipeName"`
	CraftedItem    string                `json:"craftedItem,omitempty"`
	FullItem       *domain.CraftedItem   `json:"fullItem,omitempty"`
}

// ProfessionView is one profession row in the basic-data response
type ProfessionView struct {
	Profession    domain.ProfessionType `json:"profession"`
	Level         int                   `json:"level"`
	Experience    int                   `json:"experience"`
	LevelCap      int                   `json:"levelCap"`
	XPToNextLevel int                   `json:"xpToNextLevel"`
}

// BasicData is the character's crafting overview
type BasicData struct {
	Professions []ProfessionView         `json:"professions"`
	Materials   []domain.MaterialHolding `json:"materials"`
}

// RecipeMaterialView is one embedded material requirement
type RecipeMaterialView struct {
	MaterialID int    `json:"materialId"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	Have       int    `json:"have"`
}

// RecipeView is one recipe row in the recipes response, with the
// character's eligibility resolved.
type RecipeView struct {
	RecipeID         int                   `json:"recipeId"`
	Name             string                `json:"name"`
	Profession       domain.ProfessionType `json:"profession"`
	MinLevel         int                   `json:"minLevel"`
	MaxLevel         int                   `json:"maxLevel"`
	CraftTimeSeconds int                   `json:"craftTimeSeconds"`
	BaseExperience   int                   `json:"baseExperience"`
	Materials        []RecipeMaterialView  `json:"materials"`
	Locked           bool                  `json:"locked,omitempty"`
	LockedReason     string                `json:"lockedReason,omitempty"`
}

type service struct {
	repo  repository.Crafting
	locks *concurrency.LockManager
	bus   event.Bus

	// rnd is the uniform [0,1) source; injectable for deterministic tests
	rnd func() float64
}

// NewService creates the crafting engine service
func NewService(repo repository.Crafting, locks *concurrency.LockManager, bus event.Bus) Service {
	return &service{
		repo:  repo,
		locks: locks,
		bus:   bus,
		rnd:   rand.Float64,
	}
}

// loadProfession resolves a character's profession row or the
// corresponding not-found error.
func (s *service) loadProfession(ctx context.Context, characterID string, t domain.ProfessionType) (*domain.CharacterProfession, error) {
	prof, err := s.repo.GetProfession(ctx, characterID, t)
	if err != nil {
		return nil, fmt.Errorf("failed to get profession: %w", err)
	}
	if prof == nil {
		return nil, fmt.Errorf("%s %s: %w", t, characterID, domain.ErrProfessionNotFound)
	}
	return prof, nil
}

// loadCharacter resolves the character row or a not-found error.
func (s *service) loadCharacter(ctx context.Context, characterID string) (*domain.Character, error) {
	char, err := s.repo.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	if char == nil {
		return nil, fmt.Errorf("%s: %w", characterID, domain.ErrCharacterNotFound)
	}
	return char, nil
}
