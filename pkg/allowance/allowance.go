// Package allowance grants the recurring daily currency allowance, gated by
// the reference-timezone cycle window.
package allowance

import (
	"context"

	"github.com/courtside/prop-auctions/pkg/clock"
	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/money"
	"github.com/courtside/prop-auctions/pkg/storage"
)

// Grant is what one claim credits to each currency: 100.00.
const Grant = money.Amount(100_00)

// Service coordinates allowance claims. The storage layer holds the atomic
// claim-or-reject; the service only derives the cycle threshold.
type Service struct {
	Store  storage.AllowanceStore
	Clock  clock.Clock
	Window *clock.TimeWindow
}

// NewService creates a new allowance Service.
func NewService(store storage.AllowanceStore, clk clock.Clock, window *clock.TimeWindow) *Service {
	return &Service{Store: store, Clock: clk, Window: window}
}

// Claim collects the daily allowance for the account. It fails with
// storage.ErrAlreadyClaimed when the account already claimed inside the
// current cycle, and returns the refreshed account on success.
func (s *Service) Claim(ctx context.Context, accountID string) (*models.Account, error) {
	at := s.Clock.Now()
	threshold := s.Window.AllowanceThreshold(at)
	return s.Store.ClaimAllowance(ctx, accountID, at, threshold, Grant)
}
