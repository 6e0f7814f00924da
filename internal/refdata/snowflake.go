package refdata

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	_ "github.com/snowflakedb/gosnowflake" // Snowflake driver

	"github.com/growthrule/pacewatch/pkg/types"
)

// DefaultTable is the catalogue table queried when none is configured.
const DefaultTable = "REF_ALERTS_TABLE"

// Config holds Snowflake connection settings for the reference catalogue.
type Config struct {
	Account   string `yaml:"account" json:"account"`
	User      string `yaml:"user" json:"user"`
	Password  string `yaml:"password" json:"password"`
	Database  string `yaml:"database" json:"database"`
	Schema    string `yaml:"schema" json:"schema"`
	Warehouse string `yaml:"warehouse" json:"warehouse"`
	Table     string `yaml:"table" json:"table"`
}

// Warehouse is a Catalog backed by a Snowflake table. Lookups run through
// a circuit breaker: once the warehouse starts failing consistently,
// subsequent invocations fail fast instead of stacking timeouts.
type Warehouse struct {
	db      *sql.DB
	table   string
	breaker *gobreaker.CircuitBreaker
}

// Compile-time interface satisfaction check.
var _ Catalog = (*Warehouse)(nil)

// NewWarehouse opens a pooled connection to the configured Snowflake
// account.
func NewWarehouse(cfg Config) (*Warehouse, error) {
	if cfg.Account == "" || cfg.User == "" {
		return nil, fmt.Errorf("snowflake account and user are required")
	}

	dsn := fmt.Sprintf("%s:%s@%s/%s/%s", cfg.User, cfg.Password, cfg.Account, cfg.Database, cfg.Schema)
	if cfg.Warehouse != "" {
		dsn += "?warehouse=" + cfg.Warehouse
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening snowflake connection: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	table := cfg.Table
	if table == "" {
		table = DefaultTable
	}

	return &Warehouse{
		db:    db,
		table: table,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "refdata",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}, nil
}

// newWarehouseWithDB wires an existing database handle, used by tests.
func newWarehouseWithDB(db *sql.DB, table string) *Warehouse {
	return &Warehouse{
		db:    db,
		table: table,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "refdata",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Close releases the connection pool.
func (w *Warehouse) Close() error {
	return w.db.Close()
}

// Ping verifies warehouse connectivity.
func (w *Warehouse) Ping(ctx context.Context) error {
	return w.db.PingContext(ctx)
}

// Lookup fetches the metadata rows for all given codes in one query.
func (w *Warehouse) Lookup(ctx context.Context, codes []string) ([]types.RuleMetadata, error) {
	args := make([]interface{}, 0, len(codes))
	for _, code := range codes {
		if code == "" {
			continue
		}
		args = append(args, code)
	}
	if len(args) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	query := fmt.Sprintf(`
		SELECT error_id, error_platform, error_platform_level, error_pillar,
		       error_pillar_type, error_metric, error_metric_definition,
		       error_metric_category, error_rule, error_rule_timeframe,
		       error_rule_status, error_rule_message, error_rule_score,
		       platform_value, input_value
		FROM %s
		WHERE error_id IN (%s)`, w.table, placeholders)

	res, err := w.breaker.Execute(func() (interface{}, error) {
		rows, err := w.db.QueryContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("querying %s: %w", w.table, err)
		}
		defer rows.Close()

		var metas []types.RuleMetadata
		for rows.Next() {
			m, err := scanRuleMetadata(rows)
			if err != nil {
				return nil, err
			}
			metas = append(metas, m)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("reading %s rows: %w", w.table, err)
		}
		return metas, nil
	})
	if err != nil {
		return nil, err
	}
	return res.([]types.RuleMetadata), nil
}

func scanRuleMetadata(rows *sql.Rows) (types.RuleMetadata, error) {
	var (
		m     types.RuleMetadata
		score sql.NullFloat64
		str   [14]sql.NullString
	)
	if err := rows.Scan(
		&str[0], &str[1], &str[2], &str[3], &str[4], &str[5], &str[6],
		&str[7], &str[8], &str[9], &str[10], &str[11], &score, &str[12], &str[13],
	); err != nil {
		return types.RuleMetadata{}, fmt.Errorf("scanning rule metadata: %w", err)
	}

	m.ErrorID = str[0].String
	m.ErrorPlatform = str[1].String
	m.ErrorPlatformLevel = str[2].String
	m.ErrorPillar = str[3].String
	m.ErrorPillarType = str[4].String
	m.ErrorMetric = str[5].String
	m.ErrorMetricDefinition = str[6].String
	m.ErrorMetricCategory = str[7].String
	m.ErrorRule = str[8].String
	m.ErrorRuleTimeframe = str[9].String
	m.ErrorRuleStatus = str[10].String
	m.ErrorRuleMessage = str[11].String
	m.ErrorRuleScore = score.Float64
	m.PlatformValue = str[12].String
	m.InputValue = str[13].String

	return m, nil
}
