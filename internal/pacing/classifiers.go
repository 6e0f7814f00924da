package pacing

import (
	"math"

	"github.com/growthrule/pacewatch/pkg/types"
)

// Classification is the outcome of one classifier: a rule code from the
// catalogue (or the "no alert" sentinel) and a non-negative deviation
// magnitude. The delta is an absolute currency difference for the budget
// classifier and a rounded percentage for the others.
type Classification struct {
	Code  string
	Delta float64
}

var costCodes = [7]string{
	types.CodeCostOnTarget,
	types.CodeCostWithin5Over,
	types.CodeCostWithin5Under,
	types.CodeCostNear10Over,
	types.CodeCostNear10Under,
	types.CodeCostOver10,
	types.CodeCostUnder10,
}

var yesterdayCodes = [7]string{
	types.CodeYesterdayOnTarget,
	types.CodeYesterdayWithin5Over,
	types.CodeYesterdayWithin5Under,
	types.CodeYesterdayNear10Over,
	types.CodeYesterdayNear10Under,
	types.CodeYesterdayOver10,
	types.CodeYesterdayUnder10,
}

var sevenDayCodes = [7]string{
	types.CodeSevenDayOnTarget,
	types.CodeSevenDayWithin5Over,
	types.CodeSevenDayWithin5Under,
	types.CodeSevenDayNear10Over,
	types.CodeSevenDayNear10Under,
	types.CodeSevenDayOver10,
	types.CodeSevenDayUnder10,
}

// ClassifyBudget compares total spend against the budget. Mid-flight it
// only flags exact pacing or over-spend; at or past the flight end it also
// flags under-delivery. The delta is the absolute currency gap.
func ClassifyBudget(m Metrics) Classification {
	delta := math.Abs(m.CampaignCost - m.Budget)
	code := types.CodeNone

	if m.PercDaysPassed < 100 {
		switch {
		case delta == 0:
			code = types.CodeBudgetOnTargetMidFlight
		case m.CampaignCost > m.Budget:
			code = types.CodeBudgetOverMidFlight
		}
	} else {
		switch {
		case delta == 0:
			code = types.CodeBudgetOnTargetAtEnd
		case m.CampaignCost > m.Budget:
			code = types.CodeBudgetOverAtEnd
		default:
			code = types.CodeBudgetUnderAtEnd
		}
	}

	return Classification{Code: code, Delta: Round2(delta)}
}

// ClassifyCampaignCost buckets total spend against the estimated cost.
// Only active on the first flight day (under 1% elapsed) while spend is
// still under budget.
func ClassifyCampaignCost(m Metrics) Classification {
	if m.CampaignCost >= m.Budget || m.PercDaysPassed >= 1 {
		return Classification{Code: types.CodeNone}
	}
	b, delta := sevenTier(m.CampaignCost, m.EstimatedCost)
	return Classification{Code: costCodes[b], Delta: delta}
}

// ClassifyYesterdaySpend buckets yesterday's spend against the daily
// estimated cost. Only active on the first flight day.
func ClassifyYesterdaySpend(m Metrics) Classification {
	if m.PercDaysPassed >= 1 {
		return Classification{Code: types.CodeNone}
	}
	b, delta := sevenTier(m.YesterdaySpent, m.DailyEstimatedCost)
	return Classification{Code: yesterdayCodes[b], Delta: delta}
}

// ClassifySevenDayAverage buckets the seven-day average spend against
// yesterday's daily estimate (computed from the two-days-ago window).
// Only active on the first flight day while the average is under budget.
func ClassifySevenDayAverage(m Metrics) Classification {
	if m.SevenDayAvgCampaignCost >= m.Budget || m.PercDaysPassed >= 1 {
		return Classification{Code: types.CodeNone}
	}
	b, delta := sevenTier(m.SevenDayAvgCampaignCost, m.YesterdayDailyEstimatedCost)
	return Classification{Code: sevenDayCodes[b], Delta: delta}
}
