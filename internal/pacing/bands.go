package pacing

import "math"

// band is the seven-tier deviation bucket shared by the percentage
// classifiers. The three ladders differ only in their inputs and code
// tables, so one bucketing function keeps the thresholds from drifting.
type band int

const (
	bandOnTarget band = iota
	bandWithin5Over
	bandWithin5Under
	bandNear10Over  // 5-10% over
	bandNear10Under // 5-10% under
	bandOver10
	bandUnder10
)

// sevenTier buckets actual against reference in +/-5% and +/-10% bands and
// returns the rounded absolute percentage difference as the delta. A zero
// reference guards the percentage to 0 instead of dividing; a rounded
// delta of 0 (or both values zero) is always on target, checked before any
// band comparison.
func sevenTier(actual, reference float64) (band, float64) {
	var pct float64
	if reference != 0 {
		pct = math.Abs((actual-reference)/reference) * 100
	}
	delta := math.Round(pct)

	if delta == 0 || (actual == 0 && reference == 0) {
		return bandOnTarget, 0
	}

	switch {
	case actual > reference && actual < reference+reference*0.05:
		return bandWithin5Over, delta
	case actual <= reference && actual > reference-reference*0.05:
		return bandWithin5Under, delta
	case actual >= reference+reference*0.05 && actual < reference+reference*0.10:
		return bandNear10Over, delta
	case actual <= reference-reference*0.05 && actual > reference-reference*0.10:
		return bandNear10Under, delta
	case actual >= reference+reference*0.10:
		return bandOver10, delta
	default:
		return bandUnder10, delta
	}
}
