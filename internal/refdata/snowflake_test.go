package refdata

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var metadataColumns = []string{
	"error_id", "error_platform", "error_platform_level", "error_pillar",
	"error_pillar_type", "error_metric", "error_metric_definition",
	"error_metric_category", "error_rule", "error_rule_timeframe",
	"error_rule_status", "error_rule_message", "error_rule_score",
	"platform_value", "input_value",
}

func TestWarehouseLookup_BatchQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("(?s)SELECT error_id,.*FROM REF_ALERTS_TABLE").
		WithArgs("1d3ba4fd", "d58127f6").
		WillReturnRows(sqlmock.NewRows(metadataColumns).
			AddRow("1d3ba4fd", "DV360", "campaign", "Pacing", "budget",
				"budget_spend", "total spend vs budget", "pacing",
				"spend == budget", "flight", "active", "Pacing at X", 3.0,
				"1000", "950").
			AddRow("d58127f6", "DV360", "campaign", "Pacing", "cost",
				"campaign_cost", "cost vs estimate", "pacing",
				"cost == estimate", "daily", "active", "Cost on target", 2.0,
				"", ""))

	w := newWarehouseWithDB(db, DefaultTable)
	metas, err := w.Lookup(context.Background(), []string{"1d3ba4fd", "d58127f6"})
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, "1d3ba4fd", metas[0].ErrorID)
	assert.Equal(t, "Pacing at X", metas[0].ErrorRuleMessage)
	assert.Equal(t, 3.0, metas[0].ErrorRuleScore)
	assert.Equal(t, "1000", metas[0].PlatformValue)
	assert.Equal(t, "d58127f6", metas[1].ErrorID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarehouseLookup_NoCodes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	w := newWarehouseWithDB(db, DefaultTable)

	metas, err := w.Lookup(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, metas)

	metas, err = w.Lookup(context.Background(), []string{""})
	require.NoError(t, err)
	assert.Empty(t, metas)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWarehouseLookup_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT error_id,").
		WillReturnError(fmt.Errorf("warehouse unavailable"))

	w := newWarehouseWithDB(db, DefaultTable)
	_, err = w.Lookup(context.Background(), []string{"1d3ba4fd"})
	assert.ErrorContains(t, err, "warehouse unavailable")
}

func TestWarehouseLookup_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 5; i++ {
		mock.ExpectQuery("SELECT error_id,").
			WillReturnError(fmt.Errorf("warehouse unavailable"))
	}

	w := newWarehouseWithDB(db, DefaultTable)
	for i := 0; i < 5; i++ {
		_, err = w.Lookup(context.Background(), []string{"1d3ba4fd"})
		require.Error(t, err)
	}

	// Breaker is now open: the next call fails fast without touching the
	// database (no further query expectation is registered).
	_, err = w.Lookup(context.Background(), []string{"1d3ba4fd"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
