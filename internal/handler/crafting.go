package handler

import (
	"net/http"
	"strings"

	"github.com/hearthvale/craftforge/internal/crafting"
	"github.com/hearthvale/craftforge/internal/domain"
	"github.com/hearthvale/craftforge/internal/logger"
)

// StartCraftRequest represents a request to begin a crafting session.
// RareMaterialID is a three-state field: absent means the client has
// not answered the rare-material prompt, -1 declines it, and any other
// value names the rare material to consume.
type StartCraftRequest struct {
	CharacterID    string `json:"characterId" validate:"required,max=100,excludesall=\x00\n\r\t"`
	RecipeID       int    `json:"recipeId" validate:"required,min=1"`
	RareMaterialID *int   `json:"rareMaterialId,omitempty"`
}

// StartCraftResponse is the start result: either the rare-material
// prompt or the created session with the updated material ledger.
type StartCraftResponse struct {
	Success                 bool                     `json:"success,omitempty"`
	NeedsRareMaterialChoice bool                     `json:"needsRareMaterialChoice,omitempty"`
	AvailableRareMaterials  []domain.MaterialHolding `json:"availableRareMaterials,omitempty"`
	Session                 *crafting.SessionView    `json:"session,omitempty"`
	Materials               []domain.MaterialHolding `json:"materials,omitempty"`
}

// CraftActionRequest represents one minigame move. The client may echo
// its current pin position; the server ignores it and trusts only the
// stored session.
type CraftActionRequest struct {
	CharacterID string `json:"characterId" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Direction   string `json:"direction" validate:"required,direction"`
	CurrentX    int    `json:"currentX"`
	CurrentY    int    `json:"currentY"`
}

// CompleteCraftRequest represents the end of a crafting session.
// Quality is optional; an absent quality means a common-tier craft.
type CompleteCraftRequest struct {
	CharacterID string `json:"characterId" validate:"required,max=100,excludesall=\x00\n\r\t"`
	Success     bool   `json:"success"`
	Quality     string `json:"quality,omitempty" validate:"omitempty,quality"`
}

// CompleteCraftResponse wraps the resolved craft in the request-level
// success envelope.
type CompleteCraftResponse struct {
	Success bool `json:"success"`
	*crafting.CompleteResult
}

// CraftingHandler handles crafting HTTP requests
type CraftingHandler struct {
	craftingSvc crafting.Service
}

// NewCraftingHandler creates a new crafting handler
func NewCraftingHandler(craftingSvc crafting.Service) *CraftingHandler {
	return &CraftingHandler{craftingSvc: craftingSvc}
}

// Start handles the craft start endpoint
// @Summary Start a crafting session
// @Description Validates the recipe, negotiates optional rare-material use, consumes materials, and creates the minigame session
// @Tags crafting
// @Accept json
// @Produce json
// @Param request body StartCraftRequest true "Start request"
// @Success 200 {object} StartCraftResponse "Session created or rare-material prompt"
// @Failure 400 {object} ErrorResponse "Invalid request or insufficient materials"
// @Failure 404 {object} ErrorResponse "Recipe, character, or profession not found"
// @Failure 409 {object} ErrorResponse "A session is already active"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /craft/start [post]
func (h *CraftingHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req StartCraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start craft"); err != nil {
		return
	}

	result, err := h.craftingSvc.Start(r.Context(), req.CharacterID, req.RecipeID, req.RareMaterialID)
	if err != nil {
		log.Warn("Craft start rejected", "character_id", req.CharacterID, "recipe_id", req.RecipeID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	if result.NeedsRareMaterialChoice {
		respondJSON(w, http.StatusOK, StartCraftResponse{
			NeedsRareMaterialChoice: true,
			AvailableRareMaterials:  result.AvailableRareMaterials,
		})
		return
	}

	respondJSON(w, http.StatusOK, StartCraftResponse{
		Success:   true,
		Session:   result.Session,
		Materials: result.Materials,
	})
}

// Action handles the craft action endpoint
// @Summary Perform a minigame action
// @Description Rolls the action against the profession success rate and moves the pin on success
// @Tags crafting
// @Accept json
// @Produce json
// @Param request body CraftActionRequest true "Action request"
// @Success 200 {object} crafting.ActionResult "Action resolved"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "No active session"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /craft/action [post]
func (h *CraftingHandler) Action(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req CraftActionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Craft action"); err != nil {
		return
	}

	direction := domain.Direction(strings.ToLower(req.Direction))
	result, err := h.craftingSvc.Action(r.Context(), req.CharacterID, direction)
	if err != nil {
		log.Warn("Craft action rejected", "character_id", req.CharacterID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Complete handles the craft complete endpoint
// @Summary Complete a crafting session
// @Description Applies experience, resolves the weighted output on success, writes inventory, and ends the session
// @Tags crafting
// @Accept json
// @Produce json
// @Param request body CompleteCraftRequest true "Complete request"
// @Success 200 {object} CompleteCraftResponse "Craft resolved"
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 404 {object} ErrorResponse "No active session"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /craft/complete [post]
func (h *CraftingHandler) Complete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if r.Method != http.MethodPost {
		log.Warn("Method not allowed", "method", r.Method)
		http.Error(w, ErrMsgMethodNotAllowed, http.StatusMethodNotAllowed)
		return
	}

	var req CompleteCraftRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete craft"); err != nil {
		return
	}

	quality := domain.Quality(strings.ToLower(req.Quality))
	if quality == "" {
		quality = domain.QualityCommon
	}
	result, err := h.craftingSvc.Complete(r.Context(), req.CharacterID, req.Success, quality)
	if err != nil {
		log.Warn("Craft complete rejected", "character_id", req.CharacterID, "error", err)
		statusCode, userMsg := mapServiceErrorToUserMessage(err)
		respondError(w, statusCode, userMsg)
		return
	}

	log.Info("Craft complete",
		"character_id", req.CharacterID,
		"success", result.CraftSuccess,
		"crafted_item", result.CraftedItem)

	respondJSON(w, http.StatusOK, CompleteCraftResponse{Success: true, CompleteResult: result})
}
