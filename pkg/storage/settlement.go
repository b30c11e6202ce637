package storage

import (
	"context"
	"time"

	"github.com/courtside/prop-auctions/pkg/models"
)

// RefundStore defines the privileged interface for settling expired auctions.
// It is exposed only to the refund worker and the sweep, not to the API.
type RefundStore interface {
	// RefundExpiredAuction returns the escrowed stake to the seller and
	// transitions the auction OPEN -> REFUNDED. The credit and the refunded
	// flag commit together or not at all, and the operation is idempotent:
	// it reports false, nil when the auction was already sold or refunded.
	RefundExpiredAuction(ctx context.Context, auction *models.Auction, at time.Time) (bool, error)
}
