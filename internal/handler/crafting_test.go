package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthvale/craftforge/internal/crafting"
	"github.com/hearthvale/craftforge/internal/domain"
)

// mockCraftingService stubs crafting.Service with per-test functions
type mockCraftingService struct {
	startFn     func(ctx context.Context, characterID string, recipeID int, rareMaterialID *int) (*crafting.StartResult, error)
	actionFn    func(ctx context.Context, characterID string, direction domain.Direction) (*crafting.ActionResult, error)
	completeFn  func(ctx context.Context, characterID string, success bool, quality domain.Quality) (*crafting.CompleteResult, error)
	basicDataFn func(ctx context.Context, characterID string) (*crafting.BasicData, error)
	recipesFn   func(ctx context.Context, characterID string, profession domain.ProfessionType) ([]crafting.RecipeView, error)
}

func (m *mockCraftingService) Start(ctx context.Context, characterID string, recipeID int, rareMaterialID *int) (*crafting.StartResult, error) {
	return m.startFn(ctx, characterID, recipeID, rareMaterialID)
}

func (m *mockCraftingService) Action(ctx context.Context, characterID string, direction domain.Direction) (*crafting.ActionResult, error) {
	return m.actionFn(ctx, characterID, direction)
}

func (m *mockCraftingService) Complete(ctx context.Context, characterID string, success bool, quality domain.Quality) (*crafting.CompleteResult, error) {
	return m.completeFn(ctx, characterID, success, quality)
}

func (m *mockCraftingService) GetBasicData(ctx context.Context, characterID string) (*crafting.BasicData, error) {
	return m.basicDataFn(ctx, characterID)
}

func (m *mockCraftingService) GetRecipes(ctx context.Context, characterID string, profession domain.ProfessionType) ([]crafting.RecipeView, error) {
	return m.recipesFn(ctx, characterID, profession)
}

func postJSON(t *testing.T, handlerFn http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handlerFn(rec, req)
	return rec
}

func TestCraftingHandler_Start_SessionCreated(t *testing.T) {
	svc := &mockCraftingService{
		startFn: func(_ context.Context, characterID string, recipeID int, rareMaterialID *int) (*crafting.StartResult, error) {
			assert.Equal(t, "char-1", characterID)
			assert.Equal(t, 101, recipeID)
			require.NotNil(t, rareMaterialID)
			assert.Equal(t, domain.RareMaterialDeclined, *rareMaterialID)
			return &crafting.StartResult{
				Session: &crafting.SessionView{RecipeID: 101, RecipeName: "iron sword", PinX: 9, TargetRadius: 3.5},
			}, nil
		},
	}
	h := NewCraftingHandler(svc)

	rareID := domain.RareMaterialDeclined
	rec := postJSON(t, h.Start, StartCraftRequest{CharacterID: "char-1", RecipeID: 101, RareMaterialID: &rareID})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp StartCraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.NeedsRareMaterialChoice)
	require.NotNil(t, resp.Session)
	assert.Equal(t, "iron sword", resp.Session.RecipeName)

	// Wire field names are part of the contract
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["success"])
	assert.NotContains(t, raw, "needsRareMaterialChoice")
}

func TestCraftingHandler_Start_RarePrompt(t *testing.T) {
	svc := &mockCraftingService{
		startFn: func(_ context.Context, _ string, _ int, rareMaterialID *int) (*crafting.StartResult, error) {
			assert.Nil(t, rareMaterialID)
			return &crafting.StartResult{
				NeedsRareMaterialChoice: true,
				AvailableRareMaterials: []domain.MaterialHolding{
					{MaterialID: 7, Name: "dragon scale", Rarity: "rare", Quantity: 2},
				},
			}, nil
		},
	}
	h := NewCraftingHandler(svc)

	rec := postJSON(t, h.Start, StartCraftRequest{CharacterID: "char-1", RecipeID: 101})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp StartCraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.NeedsRareMaterialChoice)
	require.Len(t, resp.AvailableRareMaterials, 1)
	assert.Equal(t, "dragon scale", resp.AvailableRareMaterials[0].Name)
	assert.Nil(t, resp.Session)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["needsRareMaterialChoice"])
	assert.Contains(t, raw, "availableRareMaterials")
	assert.NotContains(t, raw, "success")
}

func TestCraftingHandler_Start_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"recipe not found", domain.ErrRecipeNotFound, http.StatusNotFound},
		{"character not found", domain.ErrCharacterNotFound, http.StatusNotFound},
		{"session active", domain.ErrSessionActive, http.StatusConflict},
		{"level too low", domain.ErrLevelTooLow, http.StatusBadRequest},
		{"insufficient rare", domain.ErrInsufficientRareMaterial, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCraftingService{
				startFn: func(context.Context, string, int, *int) (*crafting.StartResult, error) {
					return nil, tt.err
				},
			}
			h := NewCraftingHandler(svc)

			rec := postJSON(t, h.Start, StartCraftRequest{CharacterID: "char-1", RecipeID: 101})
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestCraftingHandler_Start_InsufficientMaterialDetail(t *testing.T) {
	svc := &mockCraftingService{
		startFn: func(context.Context, string, int, *int) (*crafting.StartResult, error) {
			return nil, &domain.InsufficientMaterialError{MaterialName: "iron ore", Needed: 3, Have: 1}
		},
	}
	h := NewCraftingHandler(svc)

	rec := postJSON(t, h.Start, StartCraftRequest{CharacterID: "char-1", RecipeID: 101})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "iron ore")
}

func TestCraftingHandler_Start_ValidationFailure(t *testing.T) {
	h := NewCraftingHandler(&mockCraftingService{})

	rec := postJSON(t, h.Start, StartCraftRequest{CharacterID: "", RecipeID: 101})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCraftingHandler_Action(t *testing.T) {
	svc := &mockCraftingService{
		actionFn: func(_ context.Context, characterID string, direction domain.Direction) (*crafting.ActionResult, error) {
			assert.Equal(t, domain.DirectionNorth, direction)
			return &crafting.ActionResult{Success: true, NewX: 3, NewY: 4}, nil
		},
	}
	h := NewCraftingHandler(svc)

	rec := postJSON(t, h.Action, CraftActionRequest{CharacterID: "char-1", Direction: "North", CurrentX: 99, CurrentY: 99})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp crafting.ActionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.NewX)
}

func TestCraftingHandler_Action_InvalidDirection(t *testing.T) {
	h := NewCraftingHandler(&mockCraftingService{})

	rec := postJSON(t, h.Action, CraftActionRequest{CharacterID: "char-1", Direction: "up"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCraftingHandler_Action_NoSession(t *testing.T) {
	svc := &mockCraftingService{
		actionFn: func(context.Context, string, domain.Direction) (*crafting.ActionResult, error) {
			return nil, domain.ErrSessionNotFound
		},
	}
	h := NewCraftingHandler(svc)

	rec := postJSON(t, h.Action, CraftActionRequest{CharacterID: "char-1", Direction: "north"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCraftingHandler_Complete(t *testing.T) {
	svc := &mockCraftingService{
		completeFn: func(_ context.Context, _ string, success bool, quality domain.Quality) (*crafting.CompleteResult, error) {
			assert.True(t, success)
			assert.Equal(t, domain.QualityMasterwork, quality)
			return &crafting.CompleteResult{
				CraftSuccess: true,
				XPGained:     40,
				CraftedItem:  "Masterwork Iron Sword",
			}, nil
		},
	}
	h := NewCraftingHandler(svc)

	rec := postJSON(t, h.Complete, CompleteCraftRequest{CharacterID: "char-1", Success: true, Quality: "masterwork"})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp CompleteCraftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 40, resp.XPGained)
	assert.Equal(t, "Masterwork Iron Sword", resp.CraftedItem)

	// craftSuccess stays distinct from the envelope-level success
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, true, raw["success"])
	assert.Equal(t, true, raw["craftSuccess"])
}

func TestCraftingHandler_Complete_QualityDefaultsToCommon(t *testing.T) {
	svc := &mockCraftingService{
		completeFn: func(_ context.Context, _ string, success bool, quality domain.Quality) (*crafting.CompleteResult, error) {
			assert.False(t, success)
			assert.Equal(t, domain.QualityCommon, quality)
			return &crafting.CompleteResult{CraftSuccess: false, XPGained: 2}, nil
		},
	}
	h := NewCraftingHandler(svc)

	rec := postJSON(t, h.Complete, CompleteCraftRequest{CharacterID: "char-1", Success: false})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCraftingHandler_Complete_InvalidQuality(t *testing.T) {
	h := NewCraftingHandler(&mockCraftingService{})

	rec := postJSON(t, h.Complete, CompleteCraftRequest{CharacterID: "char-1", Quality: "legendary"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCraftingHandler_BasicData(t *testing.T) {
	svc := &mockCraftingService{
		basicDataFn: func(_ context.Context, characterID string) (*crafting.BasicData, error) {
			assert.Equal(t, "char-1", characterID)
			return &crafting.BasicData{
				Professions: []crafting.ProfessionView{
					{Profession: domain.ProfessionBlacksmithing, Level: 10, LevelCap: 20, XPToNextLevel: 1250},
				},
			}, nil
		},
	}
	h := NewCraftingHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/?characterId=char-1", nil)
	rec := httptest.NewRecorder()
	h.BasicData(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp crafting.BasicData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Professions, 1)
	assert.Equal(t, 1250, resp.Professions[0].XPToNextLevel)
}

func TestCraftingHandler_BasicData_MissingParam(t *testing.T) {
	h := NewCraftingHandler(&mockCraftingService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.BasicData(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCraftingHandler_Recipes(t *testing.T) {
	svc := &mockCraftingService{
		recipesFn: func(_ context.Context, _ string, profession domain.ProfessionType) ([]crafting.RecipeView, error) {
			assert.Equal(t, domain.ProfessionBlacksmithing, profession)
			return []crafting.RecipeView{
				{RecipeID: 101, Name: "iron sword", Locked: false},
			}, nil
		},
	}
	h := NewCraftingHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/?characterId=char-1&profession=Blacksmithing", nil)
	rec := httptest.NewRecorder()
	h.Recipes(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp RecipesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "blacksmithing", resp.Profession)
	require.Len(t, resp.Recipes, 1)
}

func TestCraftingHandler_MethodNotAllowed(t *testing.T) {
	h := NewCraftingHandler(&mockCraftingService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Start(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
