package storage

import (
	"context"

	"github.com/courtside/prop-auctions/pkg/models"
)

// AccountStore defines the interface for managing ledger accounts.
type AccountStore interface {
	// CreateAccount provisions a new account with zero balances. Fails with
	// ErrAlreadyExists if the id is taken.
	CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error)

	// GetAccount retrieves an account by its id.
	GetAccount(ctx context.Context, accountID string) (*models.Account, error)

	// ListAccounts retrieves all accounts.
	ListAccounts(ctx context.Context) ([]models.Account, error)
}
