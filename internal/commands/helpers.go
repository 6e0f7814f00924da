// Package commands implements the CLI subcommands for the pacewatch binary.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/growthrule/pacewatch/internal/alert"
	"github.com/growthrule/pacewatch/internal/config"
	"github.com/growthrule/pacewatch/internal/directory"
	"github.com/growthrule/pacewatch/internal/engine"
	"github.com/growthrule/pacewatch/internal/publish"
	"github.com/growthrule/pacewatch/internal/refdata"
	ddbstore "github.com/growthrule/pacewatch/internal/store/dynamodb"
	"github.com/growthrule/pacewatch/pkg/types"
)

// buildEngine wires a full engine from the project config. The returned
// cleanup closes the warehouse connection pool.
func buildEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, func(), error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	st, err := ddbstore.New(cfg.DynamoDB)
	if err != nil {
		return nil, nil, fmt.Errorf("creating store: %w", err)
	}

	dir, err := buildDirectory(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := refdata.NewWarehouse(cfg.Snowflake)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to reference warehouse: %w", err)
	}
	cleanup := func() { _ = catalog.Close() }

	alertFn := func(types.OpsAlert) {}
	if len(cfg.Alerts) > 0 {
		dispatcher, err := alert.NewDispatcher(cfg.Alerts)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		alertFn = dispatcher.AlertFunc()
	}

	pub := publish.New(st, publish.WithAlertFunc(alertFn))
	eng := engine.New(dir, catalog, st, pub, loc,
		engine.WithAlertFunc(alertFn),
		engine.WithPlatform(cfg.Platform),
	)
	return eng, cleanup, nil
}

func buildDirectory(ctx context.Context, cfg *config.Config) (directory.Directory, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.DynamoDB.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.DynamoDB.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	var clientOpts []func(*awsdynamodb.Options)
	if cfg.DynamoDB.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *awsdynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.DynamoDB.Endpoint)
		})
	}
	client := awsdynamodb.NewFromConfig(awsCfg, clientOpts...)
	return directory.NewDynamoDB(client, cfg.Directory.SearchTable, cfg.Directory.UserTable), nil
}

// loadReport reads revenue report rows from a JSON file.
func loadReport(path string) ([]types.RevenueRow, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var rows []types.RevenueRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return rows, nil
}
