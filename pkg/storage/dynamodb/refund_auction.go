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

	"github.com/courtside/prop-auctions/pkg/auction"
	"github.com/courtside/prop-auctions/pkg/models"
)

// RefundExpiredAuction returns the escrowed stake to the seller and
// transitions the auction OPEN -> REFUNDED. The refunded flag is set in the
// same transaction as the credit, so running the refund twice (worker and
// sweep racing, or a retried SQS message) credits the seller exactly once:
// the loser's condition check fails and it reports false, nil. A refund
// racing a buy is resolved the same way by the state condition.
func (s *Store) RefundExpiredAuction(ctx context.Context, a *models.Auction, at time.Time) (bool, error) {
	if !auction.RefundEligible(a, at) {
		return false, nil
	}

	balAttr, err := a.Currency.BalanceAttribute()
	if err != nil {
		return false, err
	}

	stakeAV, err := attributevalue.Marshal(a.Stake)
	if err != nil {
		return false, fmt.Errorf("failed to marshal stake: %w", err)
	}
	refundAV, err := attributevalue.MarshalMap(models.LedgerEntry{
		EntryID:     uuid.New().String(),
		AuctionID:   a.ID,
		AccountID:   a.SellerID,
		Currency:    a.Currency,
		Credit:      a.Stake,
		Description: fmt.Sprintf("Expiry refund for auction %s", a.ID),
		Timestamp:   at,
		GSI1PK:      ledgerPartition,
	})
	if err != nil {
		return false, fmt.Errorf("failed to marshal refund entry: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 0: return the stake to the seller.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"account_id": &types.AttributeValueMemberS{Value: a.SellerID},
					},
					UpdateExpression:    aws.String("SET #bal = #bal + :stake, version = version + :inc"),
					ConditionExpression: aws.String("attribute_exists(account_id)"),
					ExpressionAttributeNames: map[string]string{
						"#bal": balAttr,
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":stake": stakeAV,
						":inc":   &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 1: mark the auction refunded, only if it is
				// still open and unrefunded. This is the idempotence guard.
				Update: &types.Update{
					TableName: aws.String(s.AuctionsTableName),
					Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: a.ID}},
					UpdateExpression:    aws.String("SET #state = :refunded_state, refunded = :true"),
					ConditionExpression: aws.String("#state = :open AND refunded = :false"),
					ExpressionAttributeNames: map[string]string{
						"#state": "state",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":refunded_state": &types.AttributeValueMemberS{Value: string(models.REFUNDED)},
						":open":           &types.AttributeValueMemberS{Value: string(models.OPEN)},
						":true":           &types.AttributeValueMemberBOOL{Value: true},
						":false":          &types.AttributeValueMemberBOOL{Value: false},
					},
				},
			},
			{
				// Operation 2: record the refund in the ledger.
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                refundAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 1 {
			if conditionFailed(tce.CancellationReasons[1]) {
				// Sold or refunded since we read it; nothing to do.
				return false, nil
			}
		}
		return false, fmt.Errorf("failed to execute refund: %w", err)
	}

	return true, nil
}
