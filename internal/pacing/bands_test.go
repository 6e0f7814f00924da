package pacing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSevenTier(t *testing.T) {
	tests := []struct {
		name      string
		actual    float64
		reference float64
		wantBand  band
		wantDelta float64
	}{
		{"exact match", 100, 100, bandOnTarget, 0},
		{"both zero", 0, 0, bandOnTarget, 0},
		{"sub-half-percent rounds to on target", 100.4, 100, bandOnTarget, 0},
		{"within 5 over", 103, 100, bandWithin5Over, 3},
		{"within 5 under", 97, 100, bandWithin5Under, 3},
		{"five to ten over", 107, 100, bandNear10Over, 7},
		{"exactly 5 over lands in upper band", 105, 100, bandNear10Over, 5},
		{"five to ten under", 93, 100, bandNear10Under, 7},
		{"ten or more over", 110, 100, bandOver10, 10},
		{"far over", 250, 100, bandOver10, 150},
		{"ten or more under", 90, 100, bandUnder10, 10},
		{"zero actual", 0, 100, bandUnder10, 100},
		{"zero reference guards the delta", 50, 0, bandOnTarget, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, delta := sevenTier(tt.actual, tt.reference)
			assert.Equal(t, tt.wantBand, b)
			assert.Equal(t, tt.wantDelta, delta)
			assert.GreaterOrEqual(t, delta, 0.0)
		})
	}
}

func TestSevenTier_EqualityBeatsBands(t *testing.T) {
	// Equality maps to on-target regardless of which side the band
	// comparisons would have chosen.
	for _, v := range []float64{-50, -1, 1, 50, 1000} {
		b, delta := sevenTier(v, v)
		assert.Equal(t, bandOnTarget, b)
		assert.Equal(t, 0.0, delta)
	}
}
