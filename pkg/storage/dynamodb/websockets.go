package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// accountConnectionsGSI partitions connections by account so pushes addressed
// to one account avoid scanning the whole table.
const accountConnectionsGSI = "account_id-index"

type connectionRecord struct {
	ConnectionID string `dynamodbav:"connection_id"`
	AccountID    string `dynamodbav:"account_id,omitempty"`
}

// AddConnection stores a WebSocket connection id for an account. accountID may
// be empty for anonymous listeners; those never match targeted pushes.
func (s *Store) AddConnection(ctx context.Context, connectionID, accountID string) error {
	item, err := attributevalue.MarshalMap(connectionRecord{ConnectionID: connectionID, AccountID: accountID})
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store connection: %w", err)
	}
	return nil
}

// RemoveConnection deletes a WebSocket connection id.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	key, err := attributevalue.MarshalMap(map[string]string{"connection_id": connectionID})
	if err != nil {
		return fmt.Errorf("failed to marshal connection id: %w", err)
	}

	_, err = s.Client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}
	return nil
}

// GetAllConnections returns every stored connection id.
func (s *Store) GetAllConnections(ctx context.Context) ([]string, error) {
	result, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.ConnectionsTableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan connections table: %w", err)
	}

	return connectionIDs(result.Items)
}

// GetConnectionsForAccount returns the connection ids opened by one account.
func (s *Store) GetConnectionsForAccount(ctx context.Context, accountID string) ([]string, error) {
	result, err := s.Client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.ConnectionsTableName),
		IndexName:              aws.String(accountConnectionsGSI),
		KeyConditionExpression: aws.String("account_id = :account"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":account": &types.AttributeValueMemberS{Value: accountID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections for account: %w", err)
	}

	return connectionIDs(result.Items)
}

func connectionIDs(items []map[string]types.AttributeValue) ([]string, error) {
	var records []connectionRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ConnectionID
	}
	return ids, nil
}
