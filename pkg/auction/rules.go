// Package auction holds the pure rules of the auction lifecycle: parameter
// validation, buyer cost derivation and transition eligibility. The rules are
// evaluated again as condition expressions inside the storage layer; this
// package is the single place they are written down.
package auction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/money"
	"github.com/courtside/prop-auctions/pkg/storage"
)

// MaxMultiplier caps the payout ratio a seller may offer.
var MaxMultiplier = decimal.NewFromInt(100)

var one = decimal.NewFromInt(1)

// ValidateNew checks the parameters of an auction about to be created: a
// positive stake in a valid currency, a positive duration, a multiplier in
// (1, MaxMultiplier], and an expiry after creation.
func ValidateNew(a *models.Auction) error {
	if err := a.Currency.Validate(); err != nil {
		return err
	}
	if !a.Stake.IsPositive() {
		return fmt.Errorf("%w: stake must be positive", storage.ErrInvalidAuctionParameters)
	}
	if a.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", storage.ErrInvalidAuctionParameters)
	}
	m := a.Multiplier.Decimal
	if !m.GreaterThan(one) || m.GreaterThan(MaxMultiplier) {
		return fmt.Errorf("%w: multiplier must be in (1, %s]", storage.ErrInvalidAuctionParameters, MaxMultiplier)
	}
	if !a.ExpiresAt.After(a.CreatedAt) {
		return fmt.Errorf("%w: expiry must follow creation", storage.ErrInvalidAuctionParameters)
	}
	return nil
}

// PrepareNew stamps the server-assigned timestamps on an auction about to be
// created. CreatedAt always comes from the system clock, never from user
// input; EventDate defaults to CreatedAt when the caller supplied none;
// ExpiresAt is CreatedAt plus the requested duration.
func PrepareNew(a *models.Auction, now time.Time) {
	a.CreatedAt = now
	if a.EventDate.IsZero() {
		a.EventDate = now
	}
	a.ExpiresAt = now.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Cost derives what a buyer pays to take the opposite side:
// round2(stake * (multiplier - 1)). Rounding happens here, at the boundary,
// so the debited amount is always exact to two decimal places.
func Cost(stake money.Amount, m money.Multiplier) money.Amount {
	return money.FromDecimal(stake.Decimal().Mul(m.Decimal.Sub(one)))
}

// CanBuy reports whether buyerID may purchase the auction at instant at.
func CanBuy(a *models.Auction, buyerID string, at time.Time) error {
	if a.State != models.OPEN {
		return storage.ErrAlreadySold
	}
	if !at.Before(a.ExpiresAt) {
		return storage.ErrAuctionExpired
	}
	if a.SellerID == buyerID {
		return storage.ErrSelfPurchase
	}
	return nil
}

// RefundEligible reports whether the auction qualifies for the expiry refund:
// still open, past expiry, not yet refunded.
func RefundEligible(a *models.Auction, at time.Time) bool {
	return a.State == models.OPEN && !at.Before(a.ExpiresAt) && !a.Refunded
}
