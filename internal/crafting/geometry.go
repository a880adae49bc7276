package crafting

import "math"

// TargetRadius derives the minigame target tolerance from recipe
// difficulty (recipe min level minus profession level). Over-leveled
// crafters (negative difficulty) get a larger, easier target; the
// result clamps to [TargetRadiusMin, TargetRadiusMax].
func TargetRadius(difficulty int) float64 {
	r := TargetRadiusBase - TargetRadiusPerDiff*float64(difficulty)
	if r < TargetRadiusMin {
		return TargetRadiusMin
	}
	if r > TargetRadiusMax {
		return TargetRadiusMax
	}
	return r
}

// clampGrid bounds a coordinate to the playing field
func clampGrid(v int) int {
	if v < GridMin {
		return GridMin
	}
	if v > GridMax {
		return GridMax
	}
	return v
}

// randomPoint places a point at a uniform random angle and the given
// distance from the origin, rounded to integer grid coordinates.
func randomPoint(rnd func() float64, distance float64) (int, int) {
	angle := rnd() * 2 * math.Pi
	x := int(math.Round(distance * math.Cos(angle)))
	y := int(math.Round(distance * math.Sin(angle)))
	return clampGrid(x), clampGrid(y)
}

// rollTarget picks the hidden target: uniform angle, uniform distance
// in [0, TargetMaxDistance].
func rollTarget(rnd func() float64) (int, int) {
	return randomPoint(rnd, rnd()*TargetMaxDistance)
}

// rollPinStart picks the pin spawn on the field rim.
func rollPinStart(rnd func() float64) (int, int) {
	return randomPoint(rnd, PinStartRadius)
}
