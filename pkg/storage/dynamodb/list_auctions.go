package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/storage"
)

// stateExpiryGSI partitions auctions by state with expiry as the range key,
// which serves both the active-listing queries and the expiration sweep.
const stateExpiryGSI = "state-expires_at-index"

// GetAuction retrieves an auction from DynamoDB by its id.
func (s *Store) GetAuction(ctx context.Context, auctionID string) (*models.Auction, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": auctionID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal auction id: %w", err)
	}

	result, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.AuctionsTableName),
		Key:       key,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get auction from DynamoDB: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("auction %s: %w", auctionID, storage.ErrNotFound)
	}

	var a models.Auction
	if err := attributevalue.UnmarshalMap(result.Item, &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auction: %w", err)
	}
	return &a, nil
}

// ListOpenBySeller returns the seller's open, unexpired auctions.
func (s *Store) ListOpenBySeller(ctx context.Context, sellerID string, at time.Time) ([]models.Auction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.AuctionsTableName),
		IndexName:              aws.String(stateExpiryGSI),
		KeyConditionExpression: aws.String("#state = :open AND expires_at > :at"),
		FilterExpression:       aws.String("seller_id = :seller"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":open":   &types.AttributeValueMemberS{Value: string(models.OPEN)},
			":at":     encodeTime(at),
			":seller": &types.AttributeValueMemberS{Value: sellerID},
		},
	}

	return s.queryAuctions(ctx, input)
}

// ListOpenMarketplace returns every other user's open, unexpired auctions.
func (s *Store) ListOpenMarketplace(ctx context.Context, excludeSellerID string, at time.Time) ([]models.Auction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.AuctionsTableName),
		IndexName:              aws.String(stateExpiryGSI),
		KeyConditionExpression: aws.String("#state = :open AND expires_at > :at"),
		FilterExpression:       aws.String("seller_id <> :exclude"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":open":    &types.AttributeValueMemberS{Value: string(models.OPEN)},
			":at":      encodeTime(at),
			":exclude": &types.AttributeValueMemberS{Value: excludeSellerID},
		},
	}

	return s.queryAuctions(ctx, input)
}

// ListSoldInvolving returns sold auctions where the account is buyer or
// seller, created at or after since.
func (s *Store) ListSoldInvolving(ctx context.Context, accountID string, since time.Time) ([]models.Auction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.AuctionsTableName),
		IndexName:              aws.String(stateExpiryGSI),
		KeyConditionExpression: aws.String("#state = :sold"),
		FilterExpression:       aws.String("(seller_id = :id OR buyer_id = :id) AND created_at >= :since"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sold":  &types.AttributeValueMemberS{Value: string(models.SOLD)},
			":id":    &types.AttributeValueMemberS{Value: accountID},
			":since": encodeTime(since),
		},
	}

	return s.queryAuctions(ctx, input)
}

// ListExpiredOpen returns open auctions whose expiry has passed and that have
// not yet been refunded. Read-only: settling them is the sweep's job.
func (s *Store) ListExpiredOpen(ctx context.Context, at time.Time) ([]models.Auction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.AuctionsTableName),
		IndexName:              aws.String(stateExpiryGSI),
		KeyConditionExpression: aws.String("#state = :open AND expires_at <= :at"),
		FilterExpression:       aws.String("refunded = :false"),
		ExpressionAttributeNames: map[string]string{
			"#state": "state",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":open":  &types.AttributeValueMemberS{Value: string(models.OPEN)},
			":at":    encodeTime(at),
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
	}

	return s.queryAuctions(ctx, input)
}

func (s *Store) queryAuctions(ctx context.Context, input *dynamodb.QueryInput) ([]models.Auction, error) {
	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query auctions: %w", err)
	}

	var auctions []models.Auction
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &auctions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auctions: %w", err)
	}
	return auctions, nil
}
