package storage

import (
	"context"

	"github.com/courtside/prop-auctions/pkg/models"
)

// LedgerReader defines the interface for reading the audit trail.
type LedgerReader interface {
	// ListLedgerEntries retrieves the most recent ledger entries.
	ListLedgerEntries(ctx context.Context, limit int32) ([]models.LedgerEntry, error)
}
