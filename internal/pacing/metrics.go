// Package pacing computes budget-pacing metrics and classifies them
// against the fixed rule-code catalogue.
package pacing

import (
	"math"
	"time"

	"github.com/growthrule/pacewatch/internal/report"
	"github.com/growthrule/pacewatch/internal/window"
)

// Metrics is the full pacing snapshot for one invocation. Classifiers are
// pure functions of this value.
type Metrics struct {
	Budget                  float64
	CampaignCost            float64
	YesterdayCampaignCost   float64
	SevenDayAvgCampaignCost float64
	YesterdaySpent          float64

	PercDaysPassed  float64 // 0-100, 2 decimals
	PercBudgetSpent float64 // fraction of budget, 2 decimals (see note)

	EstimatedCost               float64
	DailyEstimatedCost          float64
	YesterdayDailyEstimatedCost float64

	TotalDays   int
	ElapsedDays int
	DaysLeft    int
}

// Build combines the spend aggregates with the campaign budget.
//
// PercBudgetSpent is deliberately a fraction (cost/budget) while
// PercDaysPassed is scaled to 0-100. The asymmetry is inherited from the
// upstream rule definition and is pinned by tests; do not "fix" one side
// without product sign-off.
func Build(w window.Windows, agg report.Aggregates, budget float64) Metrics {
	m := Metrics{
		Budget:                budget,
		CampaignCost:          agg.CampaignCost,
		YesterdayCampaignCost: agg.YesterdayCampaignCost,
		YesterdaySpent:        agg.YesterdaySpent,
	}

	if agg.SevenDayCount > 0 {
		m.SevenDayAvgCampaignCost = Round2(agg.SevenDayTotal / float64(min(agg.SevenDayCount, 7)))
	}

	m.TotalDays = wholeDays(w.End.Sub(w.Start)) + 1
	m.ElapsedDays = wholeDays(w.Yesterday.Sub(w.Start)) + 1
	if m.TotalDays > 0 {
		m.PercDaysPassed = Round2(float64(m.ElapsedDays) / float64(m.TotalDays) * 100)
	}
	if budget > 0 {
		m.PercBudgetSpent = Round2(agg.CampaignCost / budget)
	}

	m.DaysLeft = wholeDays(w.End.Sub(w.Now)) + 2

	// Denominators floor at 1: a flight past its end date must not divide
	// by zero or flip the sign of the estimate.
	if !window.SameDay(w.Start, w.Now) {
		m.EstimatedCost = (budget - agg.YesterdayCampaignCost) / float64(max(m.DaysLeft, 1))
	}
	m.DailyEstimatedCost = (budget - agg.CampaignCost) / float64(max(m.DaysLeft-1, 1))
	m.YesterdayDailyEstimatedCost = (budget - agg.YesterdayCampaignCost) / float64(max(m.DaysLeft, 1))

	return m
}

// Round2 rounds to two decimals, half away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}
