package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/growthrule/pacewatch/pkg/types"
)

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "200", FormatDelta(200))
	assert.Equal(t, "75.5", FormatDelta(75.5))
	assert.Equal(t, "-12.25", FormatDelta(-12.25))
	assert.Equal(t, "0", FormatDelta(0))
}

func TestToMartRecord_CoercesCatalogueValues(t *testing.T) {
	rec := types.AlertRecord{
		MetricsRecord: types.MetricsRecord{ProcessUID: "run-1"},
		ErrorID:       "4566bc06",
		DeltaValue:    200,
		PlatformValue: "1000",
		InputValue:    "not-a-number",
	}

	mart := ToMartRecord(rec)
	assert.Equal(t, "run-1", mart.ProcessUID)
	assert.Equal(t, "200", mart.DeltaValue)
	assert.Equal(t, 1000.0, mart.PlatformValue)
	assert.Zero(t, mart.InputValue)
	assert.True(t, mart.AlertVisibility)
}
