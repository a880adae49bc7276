package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	ErrMsgRecipeNotFound     = "recipe not found"
	ErrMsgProfessionNotFound = "profession not found"
	ErrMsgCharacterNotFound  = "character not found"
	ErrMsgItemNotFound       = "item not found"
	ErrMsgMaterialNotFound   = "material not found"
	ErrMsgSessionNotFound    = "no active crafting session"
	ErrMsgSessionActive      = "a crafting session is already active"

	ErrMsgLevelTooLow   = "profession level too low"
	ErrMsgLevelAboveCap = "profession level exceeds character cap"

	ErrMsgInsufficientMaterial     = "insufficient material"
	ErrMsgInsufficientRareMaterial = "insufficient rare material"

	ErrMsgInvalidInput = "invalid input"

	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrRecipeNotFound     = errors.New(ErrMsgRecipeNotFound)
	ErrProfessionNotFound = errors.New(ErrMsgProfessionNotFound)
	ErrCharacterNotFound  = errors.New(ErrMsgCharacterNotFound)
	ErrItemNotFound       = errors.New(ErrMsgItemNotFound)
	ErrMaterialNotFound   = errors.New(ErrMsgMaterialNotFound)
	ErrSessionNotFound    = errors.New(ErrMsgSessionNotFound)
	ErrSessionActive      = errors.New(ErrMsgSessionActive)

	ErrLevelTooLow   = errors.New(ErrMsgLevelTooLow)
	ErrLevelAboveCap = errors.New(ErrMsgLevelAboveCap)

	ErrInsufficientMaterial     = errors.New(ErrMsgInsufficientMaterial)
	ErrInsufficientRareMaterial = errors.New(ErrMsgInsufficientRareMaterial)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)

// InsufficientMaterialError carries the shortfall details for a base
// material check. It unwraps to ErrInsufficientMaterial so handler-side
// errors.Is mapping still works.
type InsufficientMaterialError struct {
	MaterialName string
	Needed       int
	Have         int
}

func (e *InsufficientMaterialError) Error() string {
	return ErrMsgInsufficientMaterial + ": " + e.MaterialName
}

func (e *InsufficientMaterialError) Unwrap() error {
	return ErrInsufficientMaterial
}
