package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/growthrule/pacewatch/pkg/types"
)

// InsertPacingMart conditionally copies a record into the pacing alerts
// mart. Returns false without error when the natural key already exists.
func (s *Store) InsertPacingMart(ctx context.Context, rec types.AlertRecord) (bool, error) {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return false, fmt.Errorf("marshaling pacing mart record: %w", err)
	}
	return s.insertMart(ctx, pkPacingMart, rec.NaturalKey(), item)
}

// InsertAlertsMart conditionally copies a record into the alerts datamart.
// Returns false without error when the natural key already exists.
func (s *Store) InsertAlertsMart(ctx context.Context, rec types.AlertsMartRecord) (bool, error) {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return false, fmt.Errorf("marshaling alerts mart record: %w", err)
	}
	return s.insertMart(ctx, pkAlertsMart, rec.NaturalKey(), item)
}

func (s *Store) insertMart(ctx context.Context, pk, key string, item map[string]ddbtypes.AttributeValue) (bool, error) {
	item["PK"] = &ddbtypes.AttributeValueMemberS{Value: pk}
	item["SK"] = &ddbtypes.AttributeValueMemberS{Value: martSK(key)}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.tableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return false, nil
		}
		return false, fmt.Errorf("inserting mart record %s: %w", key, err)
	}
	return true, nil
}
