package publish

import (
	"strconv"

	"github.com/growthrule/pacewatch/pkg/types"
)

// FormatDelta renders a delta value the way it appears in templated
// messages and mart records: shortest decimal form, no exponent.
func FormatDelta(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// ToMartRecord coerces an interim alert record into the alerts datamart
// shape. The catalogue's platform and input values arrive as strings;
// unparseable ones become zero rather than blocking promotion.
func ToMartRecord(rec types.AlertRecord) types.AlertsMartRecord {
	return types.AlertsMartRecord{
		MetricsRecord:   rec.MetricsRecord,
		ErrorID:         rec.ErrorID,
		DeltaValue:      FormatDelta(rec.DeltaValue),
		RuleFields:      rec.RuleFields,
		PlatformValue:   parseOrZero(rec.PlatformValue),
		InputValue:      parseOrZero(rec.InputValue),
		AlertVisibility: true,
	}
}

func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
