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

// AppendInterim writes a new interim alert document and returns its ID.
func (s *Store) AppendInterim(ctx context.Context, rec types.AlertRecord) (string, error) {
	docID := s.newDocID()

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return "", fmt.Errorf("marshaling interim record: %w", err)
	}
	item["PK"] = &ddbtypes.AttributeValueMemberS{Value: pkInterim}
	item["SK"] = &ddbtypes.AttributeValueMemberS{Value: docSK(docID)}
	item["docId"] = &ddbtypes.AttributeValueMemberS{Value: docID}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return "", fmt.Errorf("appending interim record: %w", err)
	}
	return docID, nil
}

// ListInterim returns every interim document in the collection.
func (s *Store) ListInterim(ctx context.Context) ([]types.AlertRecord, error) {
	return s.queryInterim(ctx, &dynamodb.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: aws.String("PK = :pk"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":pk": &ddbtypes.AttributeValueMemberS{Value: pkInterim},
		},
	})
}

// QueryInterim returns the interim documents matching the promotion
// predicate: process date, platform and status all equal.
func (s *Store) QueryInterim(ctx context.Context, processDate, platform, status string) ([]types.AlertRecord, error) {
	return s.queryInterim(ctx, &dynamodb.QueryInput{
		TableName:              &s.tableName,
		KeyConditionExpression: aws.String("PK = :pk"),
		FilterExpression:       aws.String("ProcessDate = :d AND Platform = :p AND ProcessStatus = :s"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":pk": &ddbtypes.AttributeValueMemberS{Value: pkInterim},
			":d":  &ddbtypes.AttributeValueMemberS{Value: processDate},
			":p":  &ddbtypes.AttributeValueMemberS{Value: platform},
			":s":  &ddbtypes.AttributeValueMemberS{Value: status},
		},
	})
}

func (s *Store) queryInterim(ctx context.Context, input *dynamodb.QueryInput) ([]types.AlertRecord, error) {
	var recs []types.AlertRecord
	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("querying interim records: %w", err)
		}
		for _, item := range out.Items {
			var rec types.AlertRecord
			if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
				s.logger.Warn("skipping corrupt interim record", "error", err)
				continue
			}
			if id, ok := item["docId"].(*ddbtypes.AttributeValueMemberS); ok {
				rec.DocID = id.Value
			}
			recs = append(recs, rec)
		}
		if out.LastEvaluatedKey == nil {
			return recs, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

// UpdateInterimMessage persists a substituted rule message in place.
func (s *Store) UpdateInterimMessage(ctx context.Context, docID, message string) error {
	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: &s.tableName,
		Key: map[string]ddbtypes.AttributeValue{
			"PK": &ddbtypes.AttributeValueMemberS{Value: pkInterim},
			"SK": &ddbtypes.AttributeValueMemberS{Value: docSK(docID)},
		},
		UpdateExpression: aws.String("SET error_rule_message = :m"),
		ExpressionAttributeValues: map[string]ddbtypes.AttributeValue{
			":m": &ddbtypes.AttributeValueMemberS{Value: message},
		},
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("interim record %s not found", docID)
		}
		return fmt.Errorf("updating interim message: %w", err)
	}
	return nil
}
