// Package mapping converts between API transport models and domain models.
package mapping

import (
	"time"

	"github.com/courtside/prop-auctions/pkg/api"
	"github.com/courtside/prop-auctions/pkg/models"
)

// ToApiAccount converts a domain Account model to an API Account model.
func ToApiAccount(account *models.Account) *api.Account {
	return &api.Account{
		AccountId:          account.AccountID,
		Common:             account.Common,
		Premium:            account.Premium,
		Transactions:       account.Transactions,
		WinRate:            account.WinRate,
		Winnings:           account.Winnings,
		LastAllowanceClaim: account.LastAllowanceClaim,
	}
}

// ToDomainNewAccount converts an API NewAccount model to a domain Account model.
// Balances start at zero; the first allowance claim funds the account.
func ToDomainNewAccount(newAccount *api.NewAccount) *models.Account {
	return &models.Account{
		AccountID: newAccount.AccountId,
		Version:   1,
	}
}

// ToApiAuction converts a domain Auction model to an API Auction model.
func ToApiAuction(auction *models.Auction) *api.Auction {
	out := &api.Auction{
		Id:              auction.ID,
		SellerId:        auction.SellerID,
		Game:            auction.Game,
		Player:          auction.Player,
		Metric:          auction.Metric,
		Condition:       auction.Condition,
		Line:            auction.Line,
		Stake:           auction.Stake,
		Currency:        auction.Currency,
		Multiplier:      auction.Multiplier,
		DurationMinutes: auction.DurationMinutes,
		CreatedAt:       auction.CreatedAt,
		EventDate:       auction.EventDate,
		ExpiresAt:       auction.ExpiresAt,
		State:           string(auction.State),
		Refunded:        auction.Refunded,
	}
	if auction.BuyerID != "" {
		buyer := auction.BuyerID
		out.BuyerId = &buyer
	}
	return out
}

// ToApiAuctions converts a slice of domain auctions.
func ToApiAuctions(auctions []models.Auction) []api.Auction {
	out := make([]api.Auction, 0, len(auctions))
	for i := range auctions {
		out = append(out, *ToApiAuction(&auctions[i]))
	}
	return out
}

// ToDomainNewAuction converts an API NewAuction model to a domain Auction model.
// Note: This is a simplified mapping; identifiers and timestamps are assigned
// when the auction is prepared for creation.
func ToDomainNewAuction(newAuction *api.NewAuction, sellerID string) *models.Auction {
	a := &models.Auction{
		SellerID:        sellerID,
		Game:            newAuction.Game,
		Player:          newAuction.Player,
		Metric:          newAuction.Metric,
		Condition:       newAuction.Condition,
		Line:            newAuction.Line,
		Stake:           newAuction.Stake,
		Currency:        newAuction.Currency,
		Multiplier:      newAuction.Multiplier,
		DurationMinutes: newAuction.DurationMinutes,
	}
	if newAuction.EventDate != nil {
		a.EventDate = time.Date(
			newAuction.EventDate.Year(), newAuction.EventDate.Month(), newAuction.EventDate.Day(),
			0, 0, 0, 0, time.UTC,
		)
	}
	return a
}

// ToApiLedgerEntry converts a domain LedgerEntry model to an API LedgerEntry model.
func ToApiLedgerEntry(entry *models.LedgerEntry) *api.LedgerEntry {
	out := &api.LedgerEntry{
		EntryId:     entry.EntryID,
		AuctionId:   entry.AuctionID,
		AccountId:   entry.AccountID,
		Currency:    entry.Currency,
		Description: entry.Description,
		Timestamp:   entry.Timestamp,
	}
	if entry.Debit != 0 {
		debit := entry.Debit
		out.Debit = &debit
	}
	if entry.Credit != 0 {
		credit := entry.Credit
		out.Credit = &credit
	}
	return out
}

// ToApiLedgerEntries converts a slice of domain ledger entries.
func ToApiLedgerEntries(entries []models.LedgerEntry) []api.LedgerEntry {
	out := make([]api.LedgerEntry, 0, len(entries))
	for i := range entries {
		out = append(out, *ToApiLedgerEntry(&entries[i]))
	}
	return out
}
