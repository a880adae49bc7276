package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hearthvale/craftforge/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidInputError   = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."

	ErrMsgRecipeNotFoundError     = "Recipe not found"
	ErrMsgCharacterNotFoundError  = "Character not found"
	ErrMsgProfessionNotFoundError = "That character has not learned this profession"
	ErrMsgMaterialNotFoundError   = "Material not found"
	ErrMsgItemNotFoundError       = "Item not found"
	ErrMsgSessionNotFoundError    = "No crafting session in progress"
	ErrMsgSessionActiveError      = "A craft is already in progress. Finish it first"

	ErrMsgLevelTooLowError   = "Profession level is too low for this recipe"
	ErrMsgLevelAboveCapError = "This recipe no longer grants progress at your level"

	ErrMsgInsufficientMaterialError = "Not enough materials"
	ErrMsgInsufficientRareError     = "You no longer have that rare material"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Not-found lookups are 404, state conflicts 409, everything
// the caller can correct 400, and anything unexpected 500.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	var insufficient *domain.InsufficientMaterialError
	if errors.As(err, &insufficient) {
		return http.StatusBadRequest, insufficient.Error()
	}

	switch {
	case errors.Is(err, domain.ErrRecipeNotFound):
		return http.StatusNotFound, ErrMsgRecipeNotFoundError
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrProfessionNotFound):
		return http.StatusNotFound, ErrMsgProfessionNotFoundError
	case errors.Is(err, domain.ErrMaterialNotFound):
		return http.StatusNotFound, ErrMsgMaterialNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrMsgSessionNotFoundError
	case errors.Is(err, domain.ErrSessionActive):
		return http.StatusConflict, ErrMsgSessionActiveError
	case errors.Is(err, domain.ErrLevelTooLow):
		return http.StatusBadRequest, ErrMsgLevelTooLowError
	case errors.Is(err, domain.ErrLevelAboveCap):
		return http.StatusBadRequest, ErrMsgLevelAboveCapError
	case errors.Is(err, domain.ErrInsufficientMaterial):
		return http.StatusBadRequest, ErrMsgInsufficientMaterialError
	case errors.Is(err, domain.ErrInsufficientRareMaterial):
		return http.StatusBadRequest, ErrMsgInsufficientRareError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
