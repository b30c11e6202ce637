package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/scheduler"
	"github.com/courtside/prop-auctions/pkg/storage"
	dydbstore "github.com/courtside/prop-auctions/pkg/storage/dynamodb"
	"github.com/courtside/prop-auctions/pkg/websockets"
)

var store storage.Storage
var refundScheduler scheduler.RefundScheduler
var publisher websockets.Publisher

func init() {
	// Load environment variables from .env file (useful for local testing).
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	auctionsTable := os.Getenv("DYNAMODB_AUCTIONS_TABLE_NAME")
	ledgerTable := os.Getenv("DYNAMODB_LEDGER_TABLE_NAME")

	if accountsTable == "" || auctionsTable == "" || ledgerTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	ddb := dydbstore.New(dbClient, accountsTable, auctionsTable, ledgerTable, os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"))
	store = ddb

	sqsQueueURL := os.Getenv("SQS_REFUND_QUEUE_URL")
	if sqsQueueURL == "" {
		log.Fatal("SQS_REFUND_QUEUE_URL environment variable not set")
	}
	refundScheduler = scheduler.NewSQSScheduler(sqs.NewFromConfig(cfg), sqsQueueURL)

	publisher = &websockets.NoOpPublisher{}
	if endpoint := os.Getenv("WEBSOCKET_API_ENDPOINT"); endpoint != "" {
		p, err := websockets.NewPublisher(ddb, ddb, endpoint)
		if err != nil {
			log.Fatalf("failed to create websocket publisher: %v", err)
		}
		publisher = p
	}
}

// publishRefund pushes the seller's restored balance. Failures are logged and
// never fail the refund; the money already moved.
func publishRefund(ctx context.Context, a *models.Auction) {
	account, err := store.GetAccount(ctx, a.SellerID)
	if err != nil {
		log.Printf("ERROR: failed to get account for websocket message: %v", err)
		return
	}
	balance, err := account.Balance(a.Currency)
	if err != nil {
		log.Printf("ERROR: failed to resolve balance for websocket message: %v", err)
		return
	}

	msg := websockets.Message{
		Type:      websockets.MessageTypeBalanceUpdate,
		Recipient: a.SellerID,
		Payload: websockets.BalanceUpdatePayload{
			AccountID:  a.SellerID,
			AuctionID:  a.ID,
			Currency:   a.Currency,
			Change:     a.Stake,
			NewBalance: balance,
		},
	}
	if err := publisher.Publish(ctx, msg); err != nil {
		log.Printf("ERROR: failed to publish websocket message: %v", err)
	}
}

// HandleRequest processes refund-check messages. A message that arrives
// before the auction expires goes back on the queue; SQS caps per-message
// delay below typical auction lifetimes, so long-lived auctions hop through
// the queue until their expiry passes.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var msg scheduler.RefundMessage
		if err := json.Unmarshal([]byte(message.Body), &msg); err != nil {
			log.Printf("ERROR: failed to unmarshal refund message %s: %v", message.MessageId, err)
			// Returning an error makes SQS retry the message.
			return err
		}

		auction, err := store.GetAuction(ctx, msg.AuctionID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				log.Printf("Auction %s no longer exists, dropping message", msg.AuctionID)
				continue
			}
			log.Printf("ERROR: failed to load auction %s: %v", msg.AuctionID, err)
			return err
		}

		now := time.Now().UTC()
		if now.Before(auction.ExpiresAt) {
			delay := auction.ExpiresAt.Sub(now)
			log.Printf("Auction %s not yet expired, re-enqueuing with delay %s", auction.ID, delay)
			if err := refundScheduler.ScheduleRefund(ctx, auction.ID, delay); err != nil {
				log.Printf("ERROR: failed to re-enqueue auction %s: %v", auction.ID, err)
				return err
			}
			continue
		}

		refunded, err := store.RefundExpiredAuction(ctx, auction, now)
		if err != nil {
			log.Printf("ERROR: failed to refund auction %s: %v", auction.ID, err)
			return err
		}
		if refunded {
			log.Printf("Refunded expired auction %s", auction.ID)
			publishRefund(ctx, auction)
		} else {
			log.Printf("Auction %s needed no refund (sold or already refunded)", auction.ID)
		}
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
