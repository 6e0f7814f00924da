package types

// Rule codes are opaque 8-hex tags drawn from the reference catalogue.
// The literal values are load-bearing: they key the warehouse lookup and
// downstream reporting, so they must not be renumbered.

// CodeNone is the explicit "no alert" sentinel. The catalogue carries no
// row for it, so records tagged with it are silently dropped before the
// interim write.
const CodeNone = "null"

// Budget pacing codes.
const (
	CodeBudgetOnTargetMidFlight = "1d3ba4fd" // spend equals budget before the flight ends
	CodeBudgetOverMidFlight     = "4566bc06" // over budget before the flight ends
	CodeBudgetOnTargetAtEnd     = "18ade8c8" // spend equals budget at or past the end
	CodeBudgetOverAtEnd         = "0dae6c23" // over budget at or past the end
	CodeBudgetUnderAtEnd        = "c83e8c86" // under budget at or past the end
)

// Campaign-cost pacing codes (cost vs. estimated cost, first flight day).
const (
	CodeCostOnTarget     = "d58127f6"
	CodeCostWithin5Over  = "7b217b04"
	CodeCostWithin5Under = "9861010f"
	CodeCostNear10Over   = "2d027066"
	CodeCostNear10Under  = "29f12f5f"
	CodeCostOver10       = "6eee195a"
	CodeCostUnder10      = "daded50d"
)

// Yesterday-spend pacing codes (yesterday spend vs. daily estimate).
const (
	CodeYesterdayOnTarget     = "3b642aa5"
	CodeYesterdayWithin5Over  = "b9fb7a17"
	CodeYesterdayWithin5Under = "dfc012e0"
	CodeYesterdayNear10Over   = "605c135b"
	CodeYesterdayNear10Under  = "c16ceede"
	CodeYesterdayOver10       = "d1380845"
	CodeYesterdayUnder10      = "4a190115"
)

// Seven-day-average pacing codes (7-day average vs. yesterday's daily
// estimate).
const (
	CodeSevenDayOnTarget     = "2e093f9c"
	CodeSevenDayWithin5Over  = "0a7eb791"
	CodeSevenDayWithin5Under = "1d82c801"
	CodeSevenDayNear10Over   = "3397e6ab"
	CodeSevenDayNear10Under  = "81410757"
	CodeSevenDayOver10       = "c92c27e3"
	CodeSevenDayUnder10      = "397a5257"
)
