// Package dynamodb implements the storage interfaces on AWS DynamoDB.
// Monetary invariants are enforced with condition expressions inside
// TransactWriteItems calls: balance checks, per-account version counters and
// compare-and-swap on auction state, so concurrent callers can never
// double-sell, double-refund or overdraw.
package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/courtside/prop-auctions/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client used by the Store.
// Declared here so tests can substitute a mock.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the Storage interface using AWS DynamoDB.
type Store struct {
	Client               DynamoDBAPI
	AccountsTableName    string
	AuctionsTableName    string
	LedgerTableName      string
	ConnectionsTableName string
}

// New creates a new Store.
func New(client DynamoDBAPI, accountsTable, auctionsTable, ledgerTable, connectionsTable string) *Store {
	return &Store{
		Client:               client,
		AccountsTableName:    accountsTable,
		AuctionsTableName:    auctionsTable,
		LedgerTableName:      ledgerTable,
		ConnectionsTableName: connectionsTable,
	}
}

// Make sure we conform to the interfaces.
var _ storage.Storage = (*Store)(nil)
var _ storage.WebSocketManager = (*Store)(nil)
