package crafting

import "github.com/hearthvale/craftforge/internal/domain"

// eligibleOutputs filters a recipe group's outputs for one completion.
// Candidates must be within the profession level; gated outputs (named
// or carrying a rare-material requirement) are eligible only when the
// session consumed exactly the material they require.
func eligibleOutputs(outputs []domain.RecipeOutput, profLevel int, sessionRareMaterialID *int) []domain.RecipeOutput {
	var candidates []domain.RecipeOutput
	for _, out := range outputs {
		if out.MinProfessionLevel > profLevel {
			continue
		}
		if out.IsNamed || out.RequiresRareMaterialID != nil {
			if out.RequiresRareMaterialID == nil || sessionRareMaterialID == nil {
				continue
			}
			if *out.RequiresRareMaterialID != *sessionRareMaterialID {
				continue
			}
		}
		candidates = append(candidates, out)
	}
	return candidates
}

// outputWeight computes the draw weight for one candidate. The weight
// parameters are authored offline; the runtime only combines them:
// base + level-scaling above the output's own gate, plus the quality
// bonus for superior/masterwork crafts. Never below minOutputWeight.
func outputWeight(out domain.RecipeOutput, profLevel int, quality domain.Quality) int {
	w := out.BaseWeight + (profLevel-out.MinProfessionLevel)*out.WeightPerLevel
	if quality == domain.QualitySuperior || quality == domain.QualityMasterwork {
		w += out.QualityBonusWeight
	}
	if w < minOutputWeight {
		return minOutputWeight
	}
	return w
}

// selectOutput draws one candidate proportionally to its weight,
// walking the candidates in catalog order and subtracting weight from
// a uniform draw until it is exhausted. The first candidate backstops
// rounding at the upper edge of the draw.
func selectOutput(candidates []domain.RecipeOutput, profLevel int, quality domain.Quality, rnd func() float64) (domain.RecipeOutput, bool) {
	if len(candidates) == 0 {
		return domain.RecipeOutput{}, false
	}

	total := 0
	for _, c := range candidates {
		total += outputWeight(c, profLevel, quality)
	}

	remaining := rnd() * float64(total)
	for _, c := range candidates {
		remaining -= float64(outputWeight(c, profLevel, quality))
		if remaining <= 0 {
			return c, true
		}
	}
	return candidates[0], true
}
