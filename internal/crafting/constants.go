package crafting

// Minigame field geometry. The pin and target live on a bounded integer
// grid; the pin spawns on the field rim and walks one unit per
// successful action.
const (
	// GridMin and GridMax bound both axes of the minigame field
	GridMin = -10
	GridMax = 10

	// PinStartRadius is the fixed spawn distance from the origin
	PinStartRadius = 9.0

	// TargetMaxDistance bounds how far from the origin the hidden
	// target may land
	TargetMaxDistance = 7.0

	// Target radius tuning: base size shrinks as recipe difficulty
	// rises above the crafter's level and grows when over-leveled
	TargetRadiusBase    = 3.5
	TargetRadiusPerDiff = 0.3
	TargetRadiusMin     = 2.0
	TargetRadiusMax     = 5.0
)

// XP multiplier applied to a failed craft's base experience
const failedCraftXPMultiplier = 0.25

// Minimum weight any eligible output carries into the weighted draw
const minOutputWeight = 1

// Component tag used in logs emitted by this package
const componentName = "crafting"
