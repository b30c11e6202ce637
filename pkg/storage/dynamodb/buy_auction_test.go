package dynamodb

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/money"
	"github.com/courtside/prop-auctions/pkg/storage"
	"github.com/courtside/prop-auctions/pkg/storage/dynamodb/mocks"
)

func TestBuyAuction(t *testing.T) {
	now := time.Now().UTC()
	buyer := &models.Account{AccountID: "buyer1", Common: money.Amount(500_00), Version: 3}

	openAuction := func() *models.Auction {
		a := newTestAuction()
		a.ID = "auction-1"
		a.State = models.OPEN
		a.CreatedAt = now.Add(-10 * time.Minute)
		a.ExpiresAt = now.Add(50 * time.Minute)
		return a
	}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", AuctionsTableName: "auctions", LedgerTableName: "ledger"}

		auctionAV, _ := attributevalue.MarshalMap(openAuction())
		buyerAV, _ := attributevalue.MarshalMap(buyer)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: auctionAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: buyerAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		result, err := store.BuyAuction(context.Background(), "auction-1", "buyer1", now)

		assert.NoError(t, err)
		assert.Equal(t, models.SOLD, result.State)
		assert.Equal(t, "buyer1", result.BuyerID)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Sold", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", AuctionsTableName: "auctions"}

		a := openAuction()
		a.State = models.SOLD
		a.BuyerID = "someone-else"
		auctionAV, _ := attributevalue.MarshalMap(a)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: auctionAV}, nil)

		_, err := store.BuyAuction(context.Background(), "auction-1", "buyer1", now)

		assert.ErrorIs(t, err, storage.ErrAlreadySold)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Expired", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", AuctionsTableName: "auctions"}

		a := openAuction()
		a.ExpiresAt = now.Add(-time.Minute)
		auctionAV, _ := attributevalue.MarshalMap(a)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: auctionAV}, nil)

		_, err := store.BuyAuction(context.Background(), "auction-1", "buyer1", now)

		assert.ErrorIs(t, err, storage.ErrAuctionExpired)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Self Purchase", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", AuctionsTableName: "auctions"}

		auctionAV, _ := attributevalue.MarshalMap(openAuction())
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: auctionAV}, nil)

		_, err := store.BuyAuction(context.Background(), "auction-1", "seller1", now)

		assert.ErrorIs(t, err, storage.ErrSelfPurchase)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Lost The Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", AuctionsTableName: "auctions", LedgerTableName: "ledger"}

		auctionAV, _ := attributevalue.MarshalMap(openAuction())
		buyerAV, _ := attributevalue.MarshalMap(buyer)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: auctionAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: buyerAV}, nil)
		// The auction CAS is operation 2: a concurrent purchase won.
		reasons := []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		_, err := store.BuyAuction(context.Background(), "auction-1", "buyer1", now)

		assert.ErrorIs(t, err, storage.ErrAlreadySold)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", AuctionsTableName: "auctions", LedgerTableName: "ledger"}

		auctionAV, _ := attributevalue.MarshalMap(openAuction())
		buyerAV, _ := attributevalue.MarshalMap(buyer)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: auctionAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: buyerAV}, nil)
		reasons := []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
			{Code: aws.String("None")},
			{Code: aws.String("None")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		_, err := store.BuyAuction(context.Background(), "auction-1", "buyer1", now)

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockClient.AssertExpectations(t)
	})

	t.Run("Expiry Condition Orders Sub-Second Instants", func(t *testing.T) {
		// RFC3339Nano drops trailing zeros, so "…00.1Z" compares above
		// "…00.15Z" byte-wise. The stored expires_at and the :at operand both
		// encode as epoch seconds; an auction already expired at purchase time
		// must not satisfy expires_at > :at.
		a := openAuction()
		a.ExpiresAt = time.Date(2026, 8, 27, 12, 0, 0, 100_000_000, time.UTC)
		at := time.Date(2026, 8, 27, 12, 0, 0, 150_000_000, time.UTC)

		auctionAV, err := attributevalue.MarshalMap(a)
		require.NoError(t, err)
		stored, ok := auctionAV["expires_at"].(*types.AttributeValueMemberN)
		require.True(t, ok, "expiry timestamps must be stored as numbers")
		operand, ok := encodeTime(at).(*types.AttributeValueMemberN)
		require.True(t, ok)

		storedN, err := strconv.ParseInt(stored.Value, 10, 64)
		require.NoError(t, err)
		atN, err := strconv.ParseInt(operand.Value, 10, 64)
		require.NoError(t, err)

		assert.False(t, storedN > atN, "expired auction must fail the purchase condition")
	})

	t.Run("Auction Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", AuctionsTableName: "auctions"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.BuyAuction(context.Background(), "missing", "buyer1", now)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertExpectations(t)
	})
}
