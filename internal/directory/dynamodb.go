package directory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/growthrule/pacewatch/pkg/types"
)

// DDBAPI is the subset of the DynamoDB client used for directory lookups.
type DDBAPI interface {
	GetItem(ctx context.Context, input *dynamodb.GetItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// Compile-time interface satisfaction check.
var _ Directory = (*DynamoDB)(nil)

// DynamoDB reads campaign searches and users from two plain tables keyed
// by document ID.
type DynamoDB struct {
	client      DDBAPI
	searchTable string
	userTable   string
}

// NewDynamoDB wires a directory over an existing DynamoDB client.
func NewDynamoDB(client DDBAPI, searchTable, userTable string) *DynamoDB {
	return &DynamoDB{client: client, searchTable: searchTable, userTable: userTable}
}

// LookupCampaignSearch fetches one saved campaign search by ID.
func (d *DynamoDB) LookupCampaignSearch(ctx context.Context, searchID string) (types.CampaignSearch, error) {
	var search types.CampaignSearch
	if err := d.getItem(ctx, d.searchTable, searchID, &search); err != nil {
		return types.CampaignSearch{}, err
	}
	return search, nil
}

// LookupUser fetches one user by ID.
func (d *DynamoDB) LookupUser(ctx context.Context, userID string) (types.User, error) {
	var user types.User
	if err := d.getItem(ctx, d.userTable, userID, &user); err != nil {
		return types.User{}, err
	}
	return user, nil
}

func (d *DynamoDB) getItem(ctx context.Context, table, id string, out interface{}) error {
	resp, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &table,
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return fmt.Errorf("reading %s/%s: %w", table, id, err)
	}
	if resp.Item == nil {
		return fmt.Errorf("%s/%s: %w", table, id, ErrNotFound)
	}
	if err := attributevalue.UnmarshalMap(resp.Item, out); err != nil {
		return fmt.Errorf("unmarshaling %s/%s: %w", table, id, err)
	}
	return nil
}
