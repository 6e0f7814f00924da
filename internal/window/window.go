// Package window derives the date boundaries that frame a campaign's
// pacing evaluation.
package window

import (
	"fmt"
	"time"

	"github.com/growthrule/pacewatch/pkg/types"
)

// Windows holds the five boundaries every aggregation range is built
// from. Start and EightDaysAgo are starts of day; End, Yesterday and
// TwoDaysAgo are ends of day. All range checks against them are
// inclusive.
type Windows struct {
	Start        time.Time
	End          time.Time
	Yesterday    time.Time
	TwoDaysAgo   time.Time
	EightDaysAgo time.Time
	Now          time.Time
}

// Compute parses the campaign's raw flight dates and derives the lookback
// boundaries relative to now, all evaluated in loc.
func Compute(now time.Time, startDate, endDate string, loc *time.Location) (Windows, error) {
	start, err := time.ParseInLocation(types.DateLayout, startDate, loc)
	if err != nil {
		return Windows{}, fmt.Errorf("parsing start date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation(types.DateLayout, endDate, loc)
	if err != nil {
		return Windows{}, fmt.Errorf("parsing end date %q: %w", endDate, err)
	}

	now = now.In(loc)
	return Windows{
		Start:        startOfDay(start),
		End:          endOfDay(end),
		Yesterday:    endOfDay(now.AddDate(0, 0, -1)),
		TwoDaysAgo:   endOfDay(now.AddDate(0, 0, -2)),
		EightDaysAgo: startOfDay(now.AddDate(0, 0, -8)),
		Now:          now,
	}, nil
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
