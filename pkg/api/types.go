// Package api holds the transport models exchanged with clients. Handlers
// decode into these, map to domain models, and encode them back out; domain
// types never cross the HTTP boundary directly.
package api

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/courtside/prop-auctions/pkg/money"
)

// NewAccount is the request body for provisioning a ledger account.
type NewAccount struct {
	AccountId string `json:"account_id"`
}

// Account is a ledger account as returned to clients.
type Account struct {
	AccountId          string       `json:"account_id"`
	Common             money.Amount `json:"common"`
	Premium            money.Amount `json:"premium"`
	Transactions       int64        `json:"transactions"`
	WinRate            float64      `json:"win_rate"`
	Winnings           money.Amount `json:"winnings"`
	LastAllowanceClaim *time.Time   `json:"last_allowance_claim,omitempty"`
}

// NewAuction is the request body for posting an auction.
type NewAuction struct {
	Game            string              `json:"game"`
	Player          string              `json:"player"`
	Metric          string              `json:"metric"`
	Condition       string              `json:"condition"`
	Line            float64             `json:"line"`
	EventDate       *openapi_types.Date `json:"event_date,omitempty"`
	DurationMinutes int32               `json:"duration_minutes"`
	Stake           money.Amount        `json:"stake"`
	Currency        money.CurrencyKind  `json:"currency"`
	Multiplier      money.Multiplier    `json:"multiplier"`
}

// Auction is a posted auction as returned to clients.
type Auction struct {
	Id              string             `json:"id"`
	SellerId        string             `json:"seller_id"`
	BuyerId         *string            `json:"buyer_id,omitempty"`
	Game            string             `json:"game"`
	Player          string             `json:"player"`
	Metric          string             `json:"metric"`
	Condition       string             `json:"condition"`
	Line            float64            `json:"line"`
	Stake           money.Amount       `json:"stake"`
	Currency        money.CurrencyKind `json:"currency"`
	Multiplier      money.Multiplier   `json:"multiplier"`
	DurationMinutes int32              `json:"duration_minutes"`
	CreatedAt       time.Time          `json:"created_at"`
	EventDate       time.Time          `json:"event_date"`
	ExpiresAt       time.Time          `json:"expires_at"`
	State           string             `json:"state"`
	Refunded        bool               `json:"refunded"`
}

// BuyRequest is the request body for purchasing an auction.
type BuyRequest struct {
	AuctionId openapi_types.UUID `json:"auction_id"`
}

// AllowanceReceipt is returned after a successful daily allowance claim.
type AllowanceReceipt struct {
	Message string       `json:"message"`
	Common  money.Amount `json:"common"`
	Premium money.Amount `json:"premium"`
}

// LedgerEntry is one audit-trail entry as returned to clients.
type LedgerEntry struct {
	EntryId     string             `json:"entry_id"`
	AuctionId   string             `json:"auction_id,omitempty"`
	AccountId   string             `json:"account_id"`
	Currency    money.CurrencyKind `json:"currency"`
	Debit       *money.Amount      `json:"debit,omitempty"`
	Credit      *money.Amount      `json:"credit,omitempty"`
	Description string             `json:"description"`
	Timestamp   time.Time          `json:"timestamp"`
}
