package domain

// Item represents a craftable item definition. The numeric bonus fields
// are scaled by the craft quality multiplier when an item is produced;
// the scaled values are a presentation-time computation and are never
// written back to the definition.
type Item struct {
	ID           int    `json:"itemId"`
	Name         string `json:"name"`
	Stackable    bool   `json:"stackable"`
	AttackBonus  int    `json:"attackBonus"`
	DefenseBonus int    `json:"defenseBonus"`
	UtilityBonus int    `json:"utilityBonus"`
	BaseValue    int    `json:"baseValue"`
}

// InventoryEntry is one row of a character's item inventory. Stackable
// items merge per (character, item, quality); non-stackable items get a
// fresh row per craft.
type InventoryEntry struct {
	EntryID     int     `json:"entryId"`
	CharacterID string  `json:"characterId"`
	ItemID      int     `json:"itemId"`
	Quality     Quality `json:"quality"`
	Quantity    int     `json:"quantity"`
}

// CraftedItem is the presentation form of a produced item with the
// quality multiplier applied to every numeric bonus field (rounded).
type CraftedItem struct {
	ItemID       int     `json:"itemId"`
	Name         string  `json:"name"`
	DisplayName  string  `json:"displayName"`
	Quality      Quality `json:"quality"`
	Stackable    bool    `json:"stackable"`
	AttackBonus  int     `json:"attackBonus"`
	DefenseBonus int     `json:"defenseBonus"`
	UtilityBonus int     `json:"utilityBonus"`
	BaseValue    int     `json:"baseValue"`
}
