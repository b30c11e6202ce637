package storage

import (
	"errors"

	"github.com/courtside/prop-auctions/pkg/money"
)

// Sentinel errors forming the core's error taxonomy. Every storage operation
// returns one of these (possibly wrapped) for expected failures; the API
// layer translates them into transport responses.
var (
	// ErrInvalidAmount is returned when a debit or credit amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds is returned when an account's balance cannot cover a debit.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAlreadySold is returned when an auction is no longer open for purchase.
	ErrAlreadySold = errors.New("auction already sold")

	// ErrAuctionExpired is returned when a buy arrives at or after the auction's expiry.
	ErrAuctionExpired = errors.New("auction expired")

	// ErrSelfPurchase is returned when a seller attempts to buy their own auction.
	ErrSelfPurchase = errors.New("seller cannot buy their own auction")

	// ErrAlreadyClaimed is returned when the daily allowance was already collected this cycle.
	ErrAlreadyClaimed = errors.New("daily allowance already collected")

	// ErrNotFound is returned when an account or auction id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when creating an account that already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidAuctionParameters is returned for non-positive stake or
	// duration, a multiplier outside (1, 100], or malformed dates.
	ErrInvalidAuctionParameters = errors.New("invalid auction parameters")

	// ErrInvalidCurrencyKind rejects any currency outside the closed enum.
	ErrInvalidCurrencyKind = money.ErrInvalidCurrencyKind
)
