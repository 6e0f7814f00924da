package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthrule/pacewatch/internal/directory"
	"github.com/growthrule/pacewatch/internal/publish"
	"github.com/growthrule/pacewatch/internal/refdata"
	"github.com/growthrule/pacewatch/internal/store/storetest"
	"github.com/growthrule/pacewatch/pkg/types"
)

type failingCatalog struct{ err error }

func (c failingCatalog) Lookup(context.Context, []string) ([]types.RuleMetadata, error) {
	return nil, c.err
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testDirectory() *directory.Memory {
	dir := directory.NewMemory()
	dir.Searches["cs-1"] = types.CampaignSearch{
		ID:           "cs-1",
		UserID:       "u-1",
		CampaignName: "spring-launch",
		PartnerName:  "Acme Media",
		Budget:       1000,
		StartDate:    "2024/03/01",
		EndDate:      "2024/03/31",
		Campaigns: []types.CampaignRef{
			{CampaignID: "12345"},
			{CampaignID: "67890"},
		},
	}
	dir.Users["u-1"] = types.User{ID: "u-1", Email: "ops@example.com"}
	return dir
}

func overBudgetCatalog() refdata.Static {
	return refdata.Static{
		types.CodeBudgetOverMidFlight: {
			ErrorID: types.CodeBudgetOverMidFlight,
			RuleFields: types.RuleFields{
				ErrorPillar:      "Pacing",
				ErrorRuleMessage: "Campaign overspent by X",
				ErrorRuleScore:   3,
			},
			PlatformValue: "1000",
			InputValue:    "1200",
		},
	}
}

// Spend 1200 against a 1000 budget, mid-flight. Only the budget
// classifier has a catalogue row, so exactly one alert survives.
func newTestEngine(mem *storetest.Memory, catalog refdata.Catalog, opts ...Option) *Engine {
	pub := publish.New(mem)
	base := []Option{
		WithClock(fixedClock(time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC))),
		WithUIDFunc(func() string { return "01RUN" }),
	}
	return New(testDirectory(), catalog, mem, pub, time.UTC, append(base, opts...)...)
}

func reportRows() []types.RevenueRow {
	return []types.RevenueRow{
		{Date: "2024/03/10", Revenue: "700"},
		{Date: "2024/03/20", Revenue: "500"},
		{Date: "2024/03/25", Revenue: "abc"}, // excluded, not coerced to zero
	}
}

func TestProcess_EndToEnd(t *testing.T) {
	mem := storetest.NewMemory()
	e := newTestEngine(mem, overBudgetCatalog())

	resp, err := e.Process(context.Background(), "cs-1", reportRows())
	require.NoError(t, err)

	assert.Equal(t, "01RUN", resp.ProcessUID)
	assert.Equal(t, "2024-03-31", resp.ProcessDate)
	assert.Equal(t, "spring-launch", resp.CampaignName)
	assert.Equal(t, 1, resp.Appended)
	assert.Equal(t, 1, resp.Publish.Published)
	assert.Equal(t, 1, resp.Publish.Templated)

	recs, err := mem.ListInterim(context.Background())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	rec := recs[0]
	assert.Equal(t, types.CodeBudgetOverMidFlight, rec.ErrorID)
	assert.Equal(t, 200.0, rec.DeltaValue)
	assert.Equal(t, "Campaign overspent by 200", rec.ErrorRuleMessage)
	assert.Equal(t, "ops@example.com", rec.CreatedBy)
	assert.Equal(t, "Acme Media", rec.ClientName)
	assert.Equal(t, "12345;67890", rec.CampaignID)
	assert.Equal(t, types.PlatformDV360, rec.Platform)
	assert.Equal(t, types.StatusNew, rec.ProcessStatus)
	assert.Equal(t, 1200.0, rec.CampaignCost)

	assert.Equal(t, 1, mem.PacingCount())
	assert.Equal(t, 1, mem.AlertsCount())

	mart, ok := mem.AlertsRecord("01RUN#2024-03-31#DV360")
	require.True(t, ok)
	assert.Equal(t, "200", mart.DeltaValue)
	assert.Equal(t, 1000.0, mart.PlatformValue)
	assert.True(t, mart.AlertVisibility)
}

func TestProcess_RerunDoesNotDuplicateMarts(t *testing.T) {
	mem := storetest.NewMemory()
	e := newTestEngine(mem, overBudgetCatalog())

	_, err := e.Process(context.Background(), "cs-1", reportRows())
	require.NoError(t, err)

	resp, err := e.Process(context.Background(), "cs-1", reportRows())
	require.NoError(t, err)
	assert.Zero(t, resp.Publish.Published)
	assert.Equal(t, 2, resp.Publish.PacingDuplicates)
	assert.Equal(t, 1, mem.PacingCount())
	assert.Equal(t, 1, mem.AlertsCount())
}

func TestProcess_UnknownSearch(t *testing.T) {
	e := newTestEngine(storetest.NewMemory(), overBudgetCatalog())

	_, err := e.Process(context.Background(), "ghost", nil)
	assert.ErrorContains(t, err, "campaign search ghost not found")
}

func TestProcess_UnknownUser(t *testing.T) {
	mem := storetest.NewMemory()
	e := newTestEngine(mem, overBudgetCatalog())
	e.dir.(*directory.Memory).Searches["cs-2"] = types.CampaignSearch{
		ID: "cs-2", UserID: "nobody",
		StartDate: "2024/03/01", EndDate: "2024/03/31",
	}

	_, err := e.Process(context.Background(), "cs-2", nil)
	assert.ErrorContains(t, err, "user nobody not found")
}

func TestProcess_BadFlightDates(t *testing.T) {
	mem := storetest.NewMemory()
	e := newTestEngine(mem, overBudgetCatalog())
	e.dir.(*directory.Memory).Searches["cs-bad"] = types.CampaignSearch{
		ID: "cs-bad", UserID: "u-1",
		StartDate: "03/01/2024", EndDate: "2024/03/31",
	}

	_, err := e.Process(context.Background(), "cs-bad", nil)
	assert.ErrorContains(t, err, "computing flight window")
}

func TestProcess_CatalogueFailureIsFatal(t *testing.T) {
	mem := storetest.NewMemory()
	e := newTestEngine(mem, failingCatalog{err: fmt.Errorf("warehouse unavailable")})

	_, err := e.Process(context.Background(), "cs-1", reportRows())
	require.Error(t, err)
	assert.ErrorContains(t, err, "warehouse unavailable")

	recs, _ := mem.ListInterim(context.Background())
	assert.Empty(t, recs, "nothing staged when enrichment fails")
}

func TestProcess_NoCatalogueRowsMeansNoAlerts(t *testing.T) {
	mem := storetest.NewMemory()
	e := newTestEngine(mem, refdata.Static{})

	resp, err := e.Process(context.Background(), "cs-1", reportRows())
	require.NoError(t, err)
	assert.Zero(t, resp.Appended)
	assert.Zero(t, mem.PacingCount())
}

func TestPromote_ReplaysAProcessDate(t *testing.T) {
	mem := storetest.NewMemory()
	e := newTestEngine(mem, overBudgetCatalog())

	_, err := e.Process(context.Background(), "cs-1", reportRows())
	require.NoError(t, err)

	res, err := e.Promote(context.Background(), "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, 1, res.PacingDuplicates, "already promoted by the run itself")
}
