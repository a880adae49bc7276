package domain

// EventType identifies a craft lifecycle event published on the bus
type EventType string

const (
	EventTypeCraftStarted      EventType = "craft_started"
	EventTypeCraftAction       EventType = "craft_action"
	EventTypeCraftCompleted    EventType = "craft_completed"
	EventTypeProfessionLevelUp EventType = "profession_level_up"
)

// Metadata keys used in event metadata maps
const (
	MetadataKeyCharacterID = "character_id"
	MetadataKeyRecipeID    = "recipe_id"
	MetadataKeyProfession  = "profession"
	MetadataKeySource      = "source"
)
