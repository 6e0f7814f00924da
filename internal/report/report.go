// Package report reduces a daily revenue report into the spend aggregates
// the pacing metrics are built from.
package report

import (
	"strconv"
	"time"

	"github.com/growthrule/pacewatch/internal/window"
	"github.com/growthrule/pacewatch/pkg/types"
)

// Aggregates holds the spend accumulators over the campaign's windows.
type Aggregates struct {
	// CampaignCost is total spend from the flight start through yesterday.
	CampaignCost float64
	// YesterdayCampaignCost is total spend from the flight start through
	// two days ago.
	YesterdayCampaignCost float64
	// SevenDayTotal and SevenDayCount cover rows inside the 8-day
	// lookback ending yesterday.
	SevenDayTotal float64
	SevenDayCount int
	// YesterdaySpent is the spend recorded on yesterday's calendar day.
	YesterdaySpent float64
	// Skipped counts rows excluded for an unparseable date or revenue.
	Skipped int
}

// Aggregate classifies each report row against the window boundaries and
// accumulates the spend buckets. Rows whose revenue is missing or
// non-numeric contribute to no bucket at all. All range checks are
// inclusive.
func Aggregate(rows []types.RevenueRow, w window.Windows, loc *time.Location) Aggregates {
	var agg Aggregates
	for _, row := range rows {
		date, err := time.ParseInLocation(types.DateLayout, row.Date, loc)
		if err != nil {
			agg.Skipped++
			continue
		}
		revenue, err := strconv.ParseFloat(row.Revenue, 64)
		if err != nil {
			agg.Skipped++
			continue
		}

		if !date.Before(w.Start) && !date.After(w.Yesterday) {
			agg.CampaignCost += revenue
		}
		if !date.Before(w.Start) && !date.After(w.TwoDaysAgo) {
			agg.YesterdayCampaignCost += revenue
		}
		if !date.Before(w.EightDaysAgo) && !date.After(w.Yesterday) {
			agg.SevenDayTotal += revenue
			agg.SevenDayCount++
		}
		if window.SameDay(date, w.Yesterday) {
			agg.YesterdaySpent += revenue
		}
	}
	return agg
}
