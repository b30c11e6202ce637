package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/money"
	"github.com/courtside/prop-auctions/pkg/storage"
)

// ClaimAllowance credits the daily grant to both currencies and stamps the
// claim time. The two credits and the timestamp are one conditional update:
// either the whole claim lands or nothing does, so a crash can neither leave
// the account able to claim twice nor unable to claim at all. The condition
// on last_allowance_claim also serializes concurrent claims per account.
func (s *Store) ClaimAllowance(ctx context.Context, accountID string, at, threshold time.Time, grant money.Amount) (*models.Account, error) {
	if !grant.IsPositive() {
		return nil, storage.ErrInvalidAmount
	}

	// Resolve the account first so a missing id reports NotFound rather than
	// a failed condition.
	if _, err := s.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}

	grantAV, err := attributevalue.Marshal(grant)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grant: %w", err)
	}

	entries := make([]types.TransactWriteItem, 0, 3)
	entries = append(entries, types.TransactWriteItem{
		// Operation 0: the claim itself, guarded by the cycle threshold.
		Update: &types.Update{
			TableName: aws.String(s.AccountsTableName),
			Key: map[string]types.AttributeValue{
				"account_id": &types.AttributeValueMemberS{Value: accountID},
			},
			UpdateExpression:    aws.String("SET last_allowance_claim = :at, version = version + :inc ADD common :grant, premium :grant"),
			ConditionExpression: aws.String("attribute_not_exists(last_allowance_claim) OR last_allowance_claim < :threshold"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":at":        encodeTime(at),
				":threshold": encodeTime(threshold),
				":grant":     grantAV,
				":inc":       &types.AttributeValueMemberN{Value: "1"},
			},
		},
	})
	for _, kind := range []money.CurrencyKind{money.Common, money.Premium} {
		entryAV, err := attributevalue.MarshalMap(models.LedgerEntry{
			EntryID:     uuid.New().String(),
			AccountID:   accountID,
			Currency:    kind,
			Credit:      grant,
			Description: "Daily allowance",
			Timestamp:   at,
			GSI1PK:      ledgerPartition,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to marshal allowance entry: %w", err)
		}
		entries = append(entries, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.LedgerTableName),
				Item:                entryAV,
				ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
			},
		})
	}

	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: entries})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 0 && conditionFailed(tce.CancellationReasons[0]) {
			return nil, storage.ErrAlreadyClaimed
		}
		return nil, fmt.Errorf("failed to execute allowance claim: %w", err)
	}

	return s.GetAccount(ctx, accountID)
}
