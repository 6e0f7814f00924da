package lambda

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_RequiresTableName(t *testing.T) {
	t.Setenv("TABLE_NAME", "")
	t.Setenv("AWS_REGION", "us-east-1")

	_, err := Init(context.Background())
	assert.ErrorContains(t, err, "TABLE_NAME")
}

func TestInit_RequiresSecretARN(t *testing.T) {
	t.Setenv("TABLE_NAME", "pacewatch")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("SEARCH_TABLE", "searches")
	t.Setenv("USER_TABLE", "users")
	t.Setenv("SNOWFLAKE_SECRET_ARN", "")

	_, err := Init(context.Background())
	assert.ErrorContains(t, err, "SNOWFLAKE_SECRET_ARN")
}

func TestResolveProcessDate(t *testing.T) {
	loc, err := time.LoadLocation("America/Montreal")
	require.NoError(t, err)

	// 01:30 UTC is still the previous day in Montreal.
	now := time.Date(2024, 3, 16, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-15", ResolveProcessDate("", now, loc))
	assert.Equal(t, "2024-02-01", ResolveProcessDate("2024-02-01", now, loc))
}

func TestParseReport(t *testing.T) {
	rows, err := ParseReport(`[{"Date":"2024/03/10","Revenue (Adv Currency)":"700"}]`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024/03/10", rows[0].Date)
	assert.Equal(t, "700", rows[0].Revenue)
}

func TestParseReport_Empty(t *testing.T) {
	rows, err := ParseReport("")
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestParseReport_Invalid(t *testing.T) {
	_, err := ParseReport("{not json")
	assert.ErrorContains(t, err, "parsing revenue report")
}
