package profession

// LevelXPBase is the experience required per profession level: a
// character levels up when experience reaches LevelXPBase * level.
const LevelXPBase = 125

// Success-rate curve bounds for the minigame action roll.
const (
	baseSuccessRate = 0.70
	maxSuccessRate  = 0.95
	successRateSpan = 0.25
	successRateCap  = 60
)

// MaxCraftingLevel returns the highest profession level a character of
// the given level may hold. Level-1 characters keep a floor of 1.
func MaxCraftingLevel(characterLevel int) int {
	if characterLevel <= 1 {
		return 1
	}
	return characterLevel / 2
}

// SuccessRate returns the probability that a single minigame action
// succeeds at the given profession level. Starts at 0.70 near level 1
// and rises linearly to the 0.95 cap at level 60.
func SuccessRate(level int) float64 {
	rate := baseSuccessRate + float64(level)/successRateCap*successRateSpan
	if rate > maxSuccessRate {
		return maxSuccessRate
	}
	return rate
}

// LevelResult describes the outcome of applying experience to a
// character profession.
type LevelResult struct {
	NewLevel      int
	NewExperience int
	LeveledUp     bool
}

// ApplyExperience adds gained experience to the given level/experience
// pair and resolves at most one level-up, never past maxLevel. When the
// resulting level sits at the cap, experience is clamped so it cannot
// accumulate past the cap threshold.
func ApplyExperience(level, experience, gained, maxLevel int) LevelResult {
	newExp := experience + gained
	newLevel := level
	leveledUp := false

	if newExp >= LevelXPBase*level && level < maxLevel {
		newLevel = level + 1
		newExp -= LevelXPBase * level
		leveledUp = true
	}

	if newLevel >= maxLevel && newExp > LevelXPBase*maxLevel {
		newExp = LevelXPBase * maxLevel
	}

	return LevelResult{
		NewLevel:      newLevel,
		NewExperience: newExp,
		LeveledUp:     leveledUp,
	}
}

// XPToNextLevel returns how much experience remains before the next
// level-up, or 0 when already at or above the threshold.
func XPToNextLevel(level, experience int) int {
	needed := LevelXPBase*level - experience
	if needed < 0 {
		return 0
	}
	return needed
}
