// Package lambda wires shared dependencies for the Lambda entrypoints.
package lambda

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"github.com/growthrule/pacewatch/internal/alert"
	"github.com/growthrule/pacewatch/internal/directory"
	"github.com/growthrule/pacewatch/internal/engine"
	"github.com/growthrule/pacewatch/internal/publish"
	"github.com/growthrule/pacewatch/internal/refdata"
	"github.com/growthrule/pacewatch/internal/store/dynamodb"
	"github.com/growthrule/pacewatch/internal/telemetry"
	"github.com/growthrule/pacewatch/pkg/types"
)

// Deps holds shared dependencies for Lambda handlers.
type Deps struct {
	Engine   *engine.Engine
	Store    *dynamodb.Store
	Catalog  *refdata.Warehouse
	AlertFn  func(types.OpsAlert)
	Logger   *slog.Logger
	Location *time.Location
	Shutdown func(context.Context) error
}

// Init creates shared dependencies from environment variables.
// Reads: TABLE_NAME, AWS_REGION, SEARCH_TABLE, USER_TABLE,
// SNOWFLAKE_SECRET_ARN, SNS_TOPIC_ARN, SQS_QUEUE_URL, TIMEZONE, PLATFORM.
func Init(ctx context.Context) (*Deps, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	tableName := os.Getenv("TABLE_NAME")
	region := os.Getenv("AWS_REGION")
	searchTable := os.Getenv("SEARCH_TABLE")
	userTable := os.Getenv("USER_TABLE")
	secretARN := os.Getenv("SNOWFLAKE_SECRET_ARN")
	switch {
	case tableName == "":
		return nil, fmt.Errorf("TABLE_NAME environment variable required")
	case region == "":
		return nil, fmt.Errorf("AWS_REGION environment variable required")
	case searchTable == "":
		return nil, fmt.Errorf("SEARCH_TABLE environment variable required")
	case userTable == "":
		return nil, fmt.Errorf("USER_TABLE environment variable required")
	case secretARN == "":
		return nil, fmt.Errorf("SNOWFLAKE_SECRET_ARN environment variable required")
	}

	loc, err := time.LoadLocation(envOrDefault("TIMEZONE", "America/Montreal"))
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}

	shutdown, err := telemetry.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("initializing telemetry: %w", err)
	}

	st, err := dynamodb.New(dynamodb.Config{TableName: tableName, Region: region})
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	dir := directory.NewDynamoDB(awsdynamodb.NewFromConfig(awsCfg), searchTable, userTable)

	sfCfg, err := refdata.ConfigFromSecret(ctx, secretsmanager.NewFromConfig(awsCfg), secretARN)
	if err != nil {
		return nil, err
	}
	catalog, err := refdata.NewWarehouse(sfCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to reference warehouse: %w", err)
	}

	alertFn, err := buildAlertFn(logger)
	if err != nil {
		return nil, err
	}

	pub := publish.New(st,
		publish.WithLogger(logger),
		publish.WithAlertFunc(alertFn),
	)
	eng := engine.New(dir, catalog, st, pub, loc,
		engine.WithLogger(logger),
		engine.WithAlertFunc(alertFn),
		engine.WithPlatform(envOrDefault("PLATFORM", types.PlatformDV360)),
	)

	return &Deps{
		Engine:   eng,
		Store:    st,
		Catalog:  catalog,
		AlertFn:  alertFn,
		Logger:   logger,
		Location: loc,
		Shutdown: shutdown,
	}, nil
}

func buildAlertFn(logger *slog.Logger) (func(types.OpsAlert), error) {
	var sinks []alert.Sink
	if topicARN := os.Getenv("SNS_TOPIC_ARN"); topicARN != "" {
		snsSink, err := alert.NewSNSSink(topicARN)
		if err != nil {
			return nil, fmt.Errorf("creating SNS sink: %w", err)
		}
		sinks = append(sinks, snsSink)
	}
	if queueURL := os.Getenv("SQS_QUEUE_URL"); queueURL != "" {
		sqsSink, err := alert.NewSQSSink(queueURL)
		if err != nil {
			return nil, fmt.Errorf("creating SQS sink: %w", err)
		}
		sinks = append(sinks, sqsSink)
	}
	if len(sinks) == 0 {
		return func(a types.OpsAlert) {
			logger.Info("ops alert", "level", a.Level, "stage", a.Stage, "message", a.Message)
		}, nil
	}
	return alert.NewDispatcherWithSinks(sinks...).AlertFunc(), nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
