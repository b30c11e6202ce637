package storage

import (
	"context"
	"time"

	"github.com/courtside/prop-auctions/pkg/models"
)

// AuctionReader defines the read-only auction queries. None of these mutate
// state; expiration sweeping is a separate, explicit operation.
type AuctionReader interface {
	// GetAuction retrieves an auction by its id.
	GetAuction(ctx context.Context, auctionID string) (*models.Auction, error)

	// ListOpenBySeller returns the seller's open, unexpired auctions.
	ListOpenBySeller(ctx context.Context, sellerID string, at time.Time) ([]models.Auction, error)

	// ListOpenMarketplace returns every other user's open, unexpired auctions.
	ListOpenMarketplace(ctx context.Context, excludeSellerID string, at time.Time) ([]models.Auction, error)

	// ListSoldInvolving returns sold auctions where the account is buyer or
	// seller, created at or after since.
	ListSoldInvolving(ctx context.Context, accountID string, since time.Time) ([]models.Auction, error)

	// ListExpiredOpen returns open auctions whose expiry has passed and that
	// have not yet been refunded.
	ListExpiredOpen(ctx context.Context, at time.Time) ([]models.Auction, error)
}

// AuctionWriter defines the state-changing auction operations.
type AuctionWriter interface {
	// CreateAuction atomically escrows the seller's stake and persists the
	// auction in the OPEN state. All-or-nothing: if the debit fails no
	// auction is stored.
	CreateAuction(ctx context.Context, auction *models.Auction) (*models.Auction, error)

	// BuyAuction atomically debits the buyer and transitions the auction
	// OPEN -> SOLD. A concurrent second buy observes ErrAlreadySold.
	BuyAuction(ctx context.Context, auctionID, buyerID string, at time.Time) (*models.Auction, error)
}

// AuctionStore combines the reader and writer interfaces.
type AuctionStore interface {
	AuctionReader
	AuctionWriter
}
