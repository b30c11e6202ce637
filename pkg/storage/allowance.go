package storage

import (
	"context"
	"time"

	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/money"
)

// AllowanceStore defines the interface for collecting the daily allowance.
type AllowanceStore interface {
	// ClaimAllowance credits grant to both currencies and stamps the claim
	// time in one atomic unit, conditional on the last claim predating
	// threshold. Fails with ErrAlreadyClaimed inside the current cycle.
	ClaimAllowance(ctx context.Context, accountID string, at, threshold time.Time, grant money.Amount) (*models.Account, error)
}
