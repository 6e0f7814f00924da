package pacing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/growthrule/pacewatch/pkg/types"
)

func TestClassifyBudget(t *testing.T) {
	tests := []struct {
		name      string
		m         Metrics
		wantCode  string
		wantDelta float64
	}{
		{
			name:      "on target mid flight",
			m:         Metrics{Budget: 1000, CampaignCost: 1000, PercDaysPassed: 50},
			wantCode:  types.CodeBudgetOnTargetMidFlight,
			wantDelta: 0,
		},
		{
			name:      "over budget mid flight",
			m:         Metrics{Budget: 1000, CampaignCost: 1100, PercDaysPassed: 50},
			wantCode:  types.CodeBudgetOverMidFlight,
			wantDelta: 100,
		},
		{
			name:      "under budget mid flight is not an alert",
			m:         Metrics{Budget: 1000, CampaignCost: 600, PercDaysPassed: 50},
			wantCode:  types.CodeNone,
			wantDelta: 400,
		},
		{
			name:      "on target at end",
			m:         Metrics{Budget: 1000, CampaignCost: 1000, PercDaysPassed: 100},
			wantCode:  types.CodeBudgetOnTargetAtEnd,
			wantDelta: 0,
		},
		{
			name:      "over budget at end",
			m:         Metrics{Budget: 1000, CampaignCost: 1200, PercDaysPassed: 100},
			wantCode:  types.CodeBudgetOverAtEnd,
			wantDelta: 200,
		},
		{
			name:      "under budget at end",
			m:         Metrics{Budget: 1000, CampaignCost: 700, PercDaysPassed: 120},
			wantCode:  types.CodeBudgetUnderAtEnd,
			wantDelta: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ClassifyBudget(tt.m)
			assert.Equal(t, tt.wantCode, c.Code)
			assert.Equal(t, tt.wantDelta, c.Delta)
			assert.GreaterOrEqual(t, c.Delta, 0.0)
		})
	}
}

func TestClassifyBudget_DeltaIsAbsolute(t *testing.T) {
	over := ClassifyBudget(Metrics{Budget: 1000, CampaignCost: 1200, PercDaysPassed: 100})
	under := ClassifyBudget(Metrics{Budget: 1000, CampaignCost: 800, PercDaysPassed: 100})
	assert.Equal(t, 200.0, over.Delta)
	assert.Equal(t, 200.0, under.Delta)
}

func TestClassifyCampaignCost(t *testing.T) {
	base := Metrics{Budget: 1000, PercDaysPassed: 0.5, EstimatedCost: 100}

	tests := []struct {
		name      string
		cost      float64
		wantCode  string
		wantDelta float64
	}{
		{"on target", 100, types.CodeCostOnTarget, 0},
		{"slightly over", 103, types.CodeCostWithin5Over, 3},
		{"slightly under", 97, types.CodeCostWithin5Under, 3},
		{"moderately over", 108, types.CodeCostNear10Over, 8},
		{"moderately under", 92, types.CodeCostNear10Under, 8},
		{"well over", 150, types.CodeCostOver10, 50},
		{"well under", 40, types.CodeCostUnder10, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			m.CampaignCost = tt.cost
			c := ClassifyCampaignCost(m)
			assert.Equal(t, tt.wantCode, c.Code)
			assert.Equal(t, tt.wantDelta, c.Delta)
		})
	}
}

func TestClassifyCampaignCost_InactiveOutsideWindow(t *testing.T) {
	// Past the first day.
	c := ClassifyCampaignCost(Metrics{Budget: 1000, CampaignCost: 150, PercDaysPassed: 5, EstimatedCost: 100})
	assert.Equal(t, types.CodeNone, c.Code)
	assert.Equal(t, 0.0, c.Delta)

	// Cost at or over budget.
	c = ClassifyCampaignCost(Metrics{Budget: 100, CampaignCost: 100, PercDaysPassed: 0.5, EstimatedCost: 100})
	assert.Equal(t, types.CodeNone, c.Code)
	assert.Equal(t, 0.0, c.Delta)
}

func TestClassifyYesterdaySpend(t *testing.T) {
	base := Metrics{PercDaysPassed: 0.5, DailyEstimatedCost: 200}

	tests := []struct {
		name      string
		spent     float64
		wantCode  string
		wantDelta float64
	}{
		{"on target", 200, types.CodeYesterdayOnTarget, 0},
		{"both zero", 0, types.CodeYesterdayOnTarget, 0},
		{"slightly over", 206, types.CodeYesterdayWithin5Over, 3},
		{"slightly under", 194, types.CodeYesterdayWithin5Under, 3},
		{"moderately over", 216, types.CodeYesterdayNear10Over, 8},
		{"moderately under", 184, types.CodeYesterdayNear10Under, 8},
		{"well over", 300, types.CodeYesterdayOver10, 50},
		{"well under", 100, types.CodeYesterdayUnder10, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			m.YesterdaySpent = tt.spent
			if tt.name == "both zero" {
				m.DailyEstimatedCost = 0
			}
			c := ClassifyYesterdaySpend(m)
			assert.Equal(t, tt.wantCode, c.Code)
			assert.Equal(t, tt.wantDelta, c.Delta)
		})
	}
}

func TestClassifyYesterdaySpend_InactiveAfterFirstDay(t *testing.T) {
	c := ClassifyYesterdaySpend(Metrics{PercDaysPassed: 1, YesterdaySpent: 500, DailyEstimatedCost: 100})
	assert.Equal(t, types.CodeNone, c.Code)
	assert.Equal(t, 0.0, c.Delta)
}

func TestClassifySevenDayAverage(t *testing.T) {
	base := Metrics{Budget: 1000, PercDaysPassed: 0.5, YesterdayDailyEstimatedCost: 100}

	tests := []struct {
		name      string
		avg       float64
		wantCode  string
		wantDelta float64
	}{
		{"on target", 100, types.CodeSevenDayOnTarget, 0},
		{"slightly over", 104, types.CodeSevenDayWithin5Over, 4},
		{"slightly under", 96, types.CodeSevenDayWithin5Under, 4},
		{"moderately over", 107, types.CodeSevenDayNear10Over, 7},
		{"moderately under", 93, types.CodeSevenDayNear10Under, 7},
		{"well over", 120, types.CodeSevenDayOver10, 20},
		{"well under", 80, types.CodeSevenDayUnder10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			m.SevenDayAvgCampaignCost = tt.avg
			c := ClassifySevenDayAverage(m)
			assert.Equal(t, tt.wantCode, c.Code)
			assert.Equal(t, tt.wantDelta, c.Delta)
		})
	}
}

func TestClassifySevenDayAverage_ZeroReferenceGuarded(t *testing.T) {
	c := ClassifySevenDayAverage(Metrics{
		Budget:                      1000,
		PercDaysPassed:              0.5,
		SevenDayAvgCampaignCost:     50,
		YesterdayDailyEstimatedCost: 0,
	})
	// The guarded percentage is 0, so the tie-break maps it on target
	// instead of producing a division artifact.
	assert.Equal(t, types.CodeSevenDayOnTarget, c.Code)
	assert.Equal(t, 0.0, c.Delta)
}

func TestClassifySevenDayAverage_InactiveWhenAverageMeetsBudget(t *testing.T) {
	c := ClassifySevenDayAverage(Metrics{
		Budget:                      100,
		PercDaysPassed:              0.5,
		SevenDayAvgCampaignCost:     100,
		YesterdayDailyEstimatedCost: 80,
	})
	assert.Equal(t, types.CodeNone, c.Code)
}
