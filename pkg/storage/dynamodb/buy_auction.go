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
	"github.com/courtside/prop-auctions/pkg/storage"
)

// BuyAuction atomically debits the buyer for round2(stake * (multiplier - 1))
// and transitions the auction OPEN -> SOLD. The state condition on the
// auction update is the compare-and-swap that makes concurrent buys safe: of
// two racing purchases exactly one commits, the other observes
// ErrAlreadySold. The seller's stake stays escrowed; it is not credited here.
func (s *Store) BuyAuction(ctx context.Context, auctionID, buyerID string, at time.Time) (*models.Auction, error) {
	// 1. Resolve the auction and check eligibility up front. The checks run
	// again as condition expressions below; this pass exists to return the
	// precise error kind without burning a write.
	a, err := s.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	if err := auction.CanBuy(a, buyerID, at); err != nil {
		return nil, err
	}

	cost := auction.Cost(a.Stake, a.Multiplier)
	if !cost.IsPositive() {
		return nil, storage.ErrInvalidAmount
	}

	balAttr, err := a.Currency.BalanceAttribute()
	if err != nil {
		return nil, err
	}

	// 2. Resolve the buyer's account for optimistic locking.
	buyer, err := s.GetAccount(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get buyer's account: %w", err)
	}

	costAV, err := attributevalue.Marshal(cost)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cost: %w", err)
	}
	purchaseAV, err := attributevalue.MarshalMap(models.LedgerEntry{
		EntryID:     uuid.New().String(),
		AuctionID:   a.ID,
		AccountID:   buyerID,
		Currency:    a.Currency,
		Debit:       cost,
		Description: fmt.Sprintf("Purchase of auction %s", a.ID),
		Timestamp:   at,
		GSI1PK:      ledgerPartition,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal purchase entry: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 0: debit the buyer and count the transaction.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"account_id": &types.AttributeValueMemberS{Value: buyerID},
					},
					UpdateExpression:    aws.String("SET #bal = #bal - :cost, version = version + :inc ADD transactions :one"),
					ConditionExpression: aws.String("#bal >= :cost AND version = :version"),
					ExpressionAttributeNames: map[string]string{
						"#bal": balAttr,
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":cost":    costAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", buyer.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
						":one":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 1: count the transaction for the seller.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"account_id": &types.AttributeValueMemberS{Value: a.SellerID},
					},
					UpdateExpression:    aws.String("ADD transactions :one"),
					ConditionExpression: aws.String("attribute_exists(account_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":one": &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 2: compare-and-swap the auction OPEN -> SOLD.
				Update: &types.Update{
					TableName: aws.String(s.AuctionsTableName),
					Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: a.ID}},
					UpdateExpression:    aws.String("SET buyer_id = :buyer, #state = :sold"),
					ConditionExpression: aws.String("#state = :open AND attribute_not_exists(buyer_id) AND expires_at > :at"),
					ExpressionAttributeNames: map[string]string{
						"#state": "state",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":buyer": &types.AttributeValueMemberS{Value: buyerID},
						":sold":  &types.AttributeValueMemberS{Value: string(models.SOLD)},
						":open":  &types.AttributeValueMemberS{Value: string(models.OPEN)},
						":at":    encodeTime(at),
					},
				},
			},
			{
				// Operation 3: record the purchase in the ledger.
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                purchaseAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) && len(tce.CancellationReasons) > 2 {
			// The auction CAS losing means someone else bought (or the sweep
			// refunded) first; report that before a funds failure.
			if conditionFailed(tce.CancellationReasons[2]) {
				return nil, storage.ErrAlreadySold
			}
			if conditionFailed(tce.CancellationReasons[0]) {
				return nil, storage.ErrInsufficientFunds
			}
		}
		return nil, fmt.Errorf("failed to execute purchase: %w", err)
	}

	a.BuyerID = buyerID
	a.State = models.SOLD
	return a, nil
}
