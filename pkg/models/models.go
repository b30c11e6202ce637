package models

import (
	"time"

	"github.com/courtside/prop-auctions/pkg/money"
)

// AuctionState defines the lifecycle states of a posted auction.
type AuctionState string

const (
	OPEN     AuctionState = "OPEN"
	SOLD     AuctionState = "SOLD"
	REFUNDED AuctionState = "REFUNDED"
)

// Account represents a user's ledger account. Balances are mutated only
// through conditional writes in the storage layer; they can never go
// negative. The stat fields are observability counters.
//
// Timestamps persist as epoch seconds (unixtime) so condition expressions
// compare them numerically rather than as strings.
type Account struct {
	AccountID          string       `json:"account_id" dynamodbav:"account_id"`
	Common             money.Amount `json:"common" dynamodbav:"common"`
	Premium            money.Amount `json:"premium" dynamodbav:"premium"`
	Version            int64        `json:"version" dynamodbav:"version"`
	Transactions       int64        `json:"transactions" dynamodbav:"transactions"`
	WinRate            float64      `json:"win_rate" dynamodbav:"win_rate"`
	Winnings           money.Amount `json:"winnings" dynamodbav:"winnings"`
	LastAllowanceClaim *time.Time   `json:"last_allowance_claim,omitempty" dynamodbav:"last_allowance_claim,omitempty,unixtime"`
	CreatedAt          time.Time    `json:"created_at" dynamodbav:"created_at,unixtime"`
}

// Balance returns the balance held in the given currency kind.
func (a *Account) Balance(kind money.CurrencyKind) (money.Amount, error) {
	switch kind {
	case money.Common:
		return a.Common, nil
	case money.Premium:
		return a.Premium, nil
	default:
		return 0, kind.Validate()
	}
}

// Auction represents one posted wager. The descriptive fields (game, player,
// metric, condition, line) are opaque to the core; they are stored and
// returned but never interpreted.
type Auction struct {
	ID              string           `dynamodbav:"id"`
	SellerID        string           `dynamodbav:"seller_id"`
	BuyerID         string           `dynamodbav:"buyer_id,omitempty"`
	Game            string           `dynamodbav:"game"`
	Player          string           `dynamodbav:"player"`
	Metric          string           `dynamodbav:"metric"`
	Condition       string           `dynamodbav:"condition"`
	Line            float64          `dynamodbav:"line"`
	Stake           money.Amount     `dynamodbav:"stake"`
	Currency        money.CurrencyKind `dynamodbav:"currency"`
	Multiplier      money.Multiplier `dynamodbav:"multiplier"`
	DurationMinutes int32            `dynamodbav:"duration_minutes"`
	CreatedAt       time.Time        `dynamodbav:"created_at,unixtime"`
	EventDate       time.Time        `dynamodbav:"event_date,unixtime"`
	ExpiresAt       time.Time        `dynamodbav:"expires_at,unixtime"`
	State           AuctionState     `dynamodbav:"state"`
	Refunded        bool             `dynamodbav:"refunded"`
}

// LedgerEntry is a single entry in the double-entry audit trail. Every escrow,
// purchase, refund and allowance credit writes entries in the same storage
// transaction as the balance change it records.
type LedgerEntry struct {
	EntryID   string             `dynamodbav:"entry_id"`
	AuctionID string             `dynamodbav:"auction_id,omitempty"`
	AccountID string             `dynamodbav:"account_id"`
	Currency  money.CurrencyKind `dynamodbav:"currency"`
	Debit     money.Amount       `dynamodbav:"debit,omitempty"`
	Credit    money.Amount       `dynamodbav:"credit,omitempty"`
	Description string           `dynamodbav:"description"`
	Timestamp time.Time          `dynamodbav:"timestamp,unixtime"`
	GSI1PK    string             `dynamodbav:"gsi1pk"`
}
