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

func TestClaimAllowance(t *testing.T) {
	now := time.Now().UTC()
	threshold := now.Add(-6 * time.Hour)
	grant := money.Amount(100_00)

	account := &models.Account{AccountID: "user1", Common: money.Amount(50_00), Premium: money.Amount(20_00), Version: 2}

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", LedgerTableName: "ledger"}

		accountAV, _ := attributevalue.MarshalMap(account)
		claimed := *account
		claimed.Common += grant
		claimed.Premium += grant
		claimed.LastAllowanceClaim = &now
		claimedAV, _ := attributevalue.MarshalMap(&claimed)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: claimedAV}, nil)

		result, err := store.ClaimAllowance(context.Background(), "user1", now, threshold, grant)

		assert.NoError(t, err)
		assert.Equal(t, money.Amount(150_00), result.Common)
		assert.Equal(t, money.Amount(120_00), result.Premium)
		assert.NotNil(t, result.LastAllowanceClaim)
		mockClient.AssertExpectations(t)
	})

	t.Run("New Cycle After Early Morning Claim", func(t *testing.T) {
		// A claim stored at 03:59 Eastern (07:59 UTC) belongs to the previous
		// cycle; a claim at 04:01 the same morning compares against the 04:00
		// Eastern threshold. The stored attribute and the :threshold operand
		// carry different zone renderings of their instants, so the condition
		// only holds if both sides marshal to epoch seconds.
		eastern, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		prevClaim := time.Date(2026, 8, 27, 7, 59, 0, 0, time.UTC)
		at := time.Date(2026, 8, 27, 4, 1, 0, 0, eastern)
		threshold := time.Date(2026, 8, 27, 4, 0, 0, 0, eastern)

		prior := *account
		prior.LastAllowanceClaim = &prevClaim
		priorAV, err := attributevalue.MarshalMap(&prior)
		require.NoError(t, err)

		stored, ok := priorAV["last_allowance_claim"].(*types.AttributeValueMemberN)
		require.True(t, ok, "claim timestamps must be stored as numbers")
		storedN, err := strconv.ParseInt(stored.Value, 10, 64)
		require.NoError(t, err)

		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", LedgerTableName: "ledger"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: priorAV}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			operand, ok := input.TransactItems[0].Update.ExpressionAttributeValues[":threshold"].(*types.AttributeValueMemberN)
			if !ok {
				return false
			}
			thresholdN, err := strconv.ParseInt(operand.Value, 10, 64)
			// last_allowance_claim < :threshold must hold for the new cycle.
			return err == nil && storedN < thresholdN
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		_, err = store.ClaimAllowance(context.Background(), "user1", at, threshold, grant)

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Already Claimed", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts", LedgerTableName: "ledger"}

		accountAV, _ := attributevalue.MarshalMap(account)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
		reasons := []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
			{Code: aws.String("None")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		_, err := store.ClaimAllowance(context.Background(), "user1", now, threshold, grant)

		assert.ErrorIs(t, err, storage.ErrAlreadyClaimed)
		mockClient.AssertExpectations(t)
	})

	t.Run("Account Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: nil}, nil)

		_, err := store.ClaimAllowance(context.Background(), "missing", now, threshold, grant)

		assert.ErrorIs(t, err, storage.ErrNotFound)
		mockClient.AssertNotCalled(t, "TransactWriteItems", mock.Anything, mock.Anything)
	})

	t.Run("Non-Positive Grant", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := &Store{Client: mockClient, AccountsTableName: "accounts"}

		_, err := store.ClaimAllowance(context.Background(), "user1", now, threshold, money.Amount(0))

		assert.ErrorIs(t, err, storage.ErrInvalidAmount)
		mockClient.AssertNotCalled(t, "GetItem", mock.Anything, mock.Anything)
	})
}
