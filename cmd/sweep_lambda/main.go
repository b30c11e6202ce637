package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/storage"
	dydbstore "github.com/courtside/prop-auctions/pkg/storage/dynamodb"
	"github.com/courtside/prop-auctions/pkg/websockets"
)

var store storage.Storage
var publisher websockets.Publisher

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	accountsTable := os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME")
	auctionsTable := os.Getenv("DYNAMODB_AUCTIONS_TABLE_NAME")
	ledgerTable := os.Getenv("DYNAMODB_LEDGER_TABLE_NAME")

	ddb := dydbstore.New(dbClient, accountsTable, auctionsTable, ledgerTable, os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME"))
	store = ddb

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
// never fail the sweep.
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

// HandleRequest is triggered by an EventBridge Schedule. It is the backstop
// behind the queue-driven refund worker: any open auction whose expiry has
// passed gets its escrowed stake returned to the seller. The refund is
// idempotent, so overlap with the worker is harmless.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting sweep for expired open auctions...")

	now := time.Now().UTC()
	expired, err := store.ListExpiredOpen(ctx, now)
	if err != nil {
		log.Printf("ERROR: failed to list expired auctions: %v", err)
		return err
	}

	if len(expired) == 0 {
		log.Println("No expired open auctions found.")
		return nil
	}

	log.Printf("Found %d expired open auctions. Refunding...", len(expired))

	for i := range expired {
		auction := &expired[i]
		refunded, err := store.RefundExpiredAuction(ctx, auction, now)
		if err != nil {
			log.Printf("ERROR: failed to refund auction %s: %v", auction.ID, err)
			// Continue to the next auction, don't let one failure stop the whole batch.
			continue
		}
		if refunded {
			log.Printf("Refunded expired auction %s", auction.ID)
			publishRefund(ctx, auction)
		}
	}

	log.Println("Sweep finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
