package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/courtside/prop-auctions/pkg/auction"
	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/storage"
)

// CreateAuction atomically escrows the seller's stake and creates a new
// auction record in the OPEN state. The caller supplies CreatedAt, EventDate
// and ExpiresAt; ids and state are assigned here.
func (s *Store) CreateAuction(ctx context.Context, a *models.Auction) (*models.Auction, error) {
	// 1. Complete the record with server-side details, then validate.
	a.ID = uuid.New().String()
	a.State = models.OPEN
	a.Refunded = false
	if err := auction.ValidateNew(a); err != nil {
		return nil, err
	}

	// 2. Resolve the seller's account, for existence and optimistic locking.
	seller, err := s.GetAccount(ctx, a.SellerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get seller's account: %w", err)
	}

	balAttr, err := a.Currency.BalanceAttribute()
	if err != nil {
		return nil, err
	}

	slog.Log(ctx, slog.LevelDebug, "creating auction", "auction", a)

	auctionAV, err := attributevalue.MarshalMap(a)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auction: %w", err)
	}
	stakeAV, err := attributevalue.Marshal(a.Stake)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stake: %w", err)
	}
	escrowAV, err := attributevalue.MarshalMap(models.LedgerEntry{
		EntryID:     uuid.New().String(),
		AuctionID:   a.ID,
		AccountID:   a.SellerID,
		Currency:    a.Currency,
		Debit:       a.Stake,
		Description: fmt.Sprintf("Stake escrow for auction %s", a.ID),
		Timestamp:   a.CreatedAt,
		GSI1PK:      ledgerPartition,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal escrow entry: %w", err)
	}

	// 3. One transaction: debit the stake, persist the auction, record the
	// escrow. If the balance check fails nothing is written.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 0: escrow the stake from the seller's balance.
				Update: &types.Update{
					TableName: aws.String(s.AccountsTableName),
					Key: map[string]types.AttributeValue{
						"account_id": &types.AttributeValueMemberS{Value: a.SellerID},
					},
					UpdateExpression:    aws.String("SET #bal = #bal - :stake, version = version + :inc"),
					ConditionExpression: aws.String("#bal >= :stake AND version = :version"),
					ExpressionAttributeNames: map[string]string{
						"#bal": balAttr,
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":stake":   stakeAV,
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", seller.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 1: create the auction record.
				Put: &types.Put{
					TableName:           aws.String(s.AuctionsTableName),
					Item:                auctionAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: record the escrow in the ledger.
				Put: &types.Put{
					TableName:           aws.String(s.LedgerTableName),
					Item:                escrowAV,
					ConditionExpression: aws.String("attribute_not_exists(entry_id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			// The first operation carries the balance condition.
			if len(tce.CancellationReasons) > 0 && conditionFailed(tce.CancellationReasons[0]) {
				return nil, storage.ErrInsufficientFunds
			}
		}
		return nil, fmt.Errorf("failed to execute auction creation: %w", err)
	}

	return a, nil
}

// conditionFailed reports whether a cancellation reason is a failed condition check.
func conditionFailed(reason types.CancellationReason) bool {
	return reason.Code != nil && *reason.Code == "ConditionalCheckFailed"
}
