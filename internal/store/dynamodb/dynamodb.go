// Package dynamodb implements the store.Store interface using AWS DynamoDB.
//
// A single table holds all three collections, partitioned by a PK prefix:
// interim documents under INTERIM, the pacing alerts mart under PACINGMART
// and the alerts datamart under ALERTMART. Mart items use the record's
// natural key as sort key, which makes promotion idempotent via a
// conditional put.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/growthrule/pacewatch/internal/store"
)

// Compile-time interface satisfaction check.
var _ store.Store = (*Store)(nil)

// DDBAPI is the subset of the DynamoDB client used by the store.
type DDBAPI interface {
	PutItem(ctx context.Context, input *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, input *dynamodb.QueryInput, opts ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	UpdateItem(ctx context.Context, input *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DescribeTable(ctx context.Context, input *dynamodb.DescribeTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	CreateTable(ctx context.Context, input *dynamodb.CreateTableInput, opts ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
}

// Config holds DynamoDB connection and table settings.
type Config struct {
	TableName   string `yaml:"tableName" json:"tableName"`
	Region      string `yaml:"region" json:"region"`
	Endpoint    string `yaml:"endpoint,omitempty" json:"endpoint,omitempty"`
	CreateTable bool   `yaml:"createTable,omitempty" json:"createTable,omitempty"`
}

// Store implements the store.Store interface backed by DynamoDB.
type Store struct {
	client      DDBAPI
	tableName   string
	logger      *slog.Logger
	createTable bool
	newDocID    func() string
}

// New creates a new Store.
func New(cfg Config) (*Store, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	// For DynamoDB Local: use static credentials and custom endpoint.
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	var clientOpts []func(*dynamodb.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &Store{
		client:      dynamodb.NewFromConfig(awsCfg, clientOpts...),
		tableName:   cfg.TableName,
		logger:      slog.Default(),
		createTable: cfg.CreateTable,
		newDocID:    newDocID,
	}, nil
}

// Start initializes the store: pings DynamoDB and optionally creates the table.
func (s *Store) Start(ctx context.Context) error {
	if s.createTable {
		if err := s.ensureTable(ctx); err != nil {
			return err
		}
	}
	return s.Ping(ctx)
}

// Ping checks connectivity by describing the table.
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: &s.tableName,
	})
	if err != nil {
		return fmt.Errorf("dynamodb ping failed: %w", err)
	}
	return nil
}

func (s *Store) ensureTable(ctx context.Context) error {
	_, err := s.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &s.tableName,
		KeySchema: []ddbtypes.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: ddbtypes.KeyTypeHash},
			{AttributeName: aws.String("SK"), KeyType: ddbtypes.KeyTypeRange},
		},
		AttributeDefinitions: []ddbtypes.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: ddbtypes.ScalarAttributeTypeS},
			{AttributeName: aws.String("SK"), AttributeType: ddbtypes.ScalarAttributeTypeS},
		},
		BillingMode: ddbtypes.BillingModePayPerRequest,
	})
	if err != nil {
		var riue *ddbtypes.ResourceInUseException
		if errors.As(err, &riue) {
			return nil // table already exists
		}
		return fmt.Errorf("creating table: %w", err)
	}
	return nil
}

// isConditionalCheckFailed returns true if the error is a DynamoDB ConditionalCheckFailedException.
func isConditionalCheckFailed(err error) bool {
	var ccfe *ddbtypes.ConditionalCheckFailedException
	return errors.As(err, &ccfe)
}
