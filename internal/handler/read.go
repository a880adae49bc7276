package handler

import (
	"net/http"
	"strings"

	"github.com/hearthvale/craftforge/internal/crafting"
	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/logger"
)

// BasicData handles the crafting basic-data endpoint
// @Summary Get crafting overview for a character
// @Description Returns profession levels, experience progress, and the material ledger
// @Tags crafting
// @Produce json
// @Param characterId query string true "Character id"
// @Success 200 {object} crafting.BasicData "Crafting overview"
// @Failure 400 {object} ErrorResponse "Missing character id"
// @Failure 404 {object} ErrorResponse "Character not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /craft/basic-data [get]
func (h *CraftingHandler) BasicData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	characterID, ok := GetQueryParam(r, w, "characterId")
	if !ok {
		return
	}

	data, err := h.craftingSvc.GetBasicData(r.Context(), characterID)
	if err != nil {
		log.Warn("Basic data request rejected", "character_id", characterID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, data)
}

// RecipesResponse wraps the recipe list for one profession
type RecipesResponse struct {
	Profession string                `json:"profession"`
	Recipes    []crafting.RecipeView `json:"recipes"`
}

// Recipes handles the recipe list endpoint
// @Summary List recipes for a profession
// @Description Returns the recipe catalog for one profession with the character's eligibility resolved
// @Tags crafting
// @Produce json
// @Param characterId query string true "Character id"
// @Param profession query string true "Profession name"
// @Success 200 {object} RecipesResponse "Recipe list"
// @Failure 400 {object} ErrorResponse "Missing or invalid parameters"
// @Failure 404 {object} ErrorResponse "Character or profession not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /craft/recipes [get]
func (h *CraftingHandler) Recipes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	characterID, ok := GetQueryParam(r, w, "characterId")
	if !ok {
		return
	}
	professionParam, ok := GetQueryParam(r, w, "profession")
	if !ok {
		return
	}
	profession := domain.ProfessionType(strings.ToLower(professionParam))

	recipes, err := h.craftingSvc.GetRecipes(r.Context(), characterID, profession)
	if err != nil {
		log.Warn("Recipes request rejected", "character_id", characterID, "profession", profession, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, RecipesResponse{
		Profession: string(profession),
		Recipes:    recipes,
	})
}
