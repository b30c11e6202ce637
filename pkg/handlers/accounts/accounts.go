package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/courtside/prop-auctions/pkg/allowance"
	"github.com/courtside/prop-auctions/pkg/api"
	"github.com/courtside/prop-auctions/pkg/mapping"
	"github.com/courtside/prop-auctions/pkg/middleware"
	"github.com/courtside/prop-auctions/pkg/storage"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Store     storage.AccountStore
	Allowance *allowance.Service
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(store storage.AccountStore, allowanceSvc *allowance.Service) *AccountsHandler {
	return &AccountsHandler{Store: store, Allowance: allowanceSvc}
}

// CreateAccount handles the logic for provisioning a new ledger account.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&newAccount); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if newAccount.AccountId == "" {
		http.Error(w, "account_id is required", http.StatusBadRequest)
		return
	}

	domainAccount := mapping.ToDomainNewAccount(&newAccount)
	domainAccount.CreatedAt = time.Now().UTC()

	createdAccount, err := h.Store.CreateAccount(r.Context(), domainAccount)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			http.Error(w, "Account already exists", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAccount := mapping.ToApiAccount(createdAccount)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetProfile handles the logic for retrieving the caller's own account.
func (h *AccountsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AccountID(r.Context())

	domainAccount, err := h.Store.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAccount := mapping.ToApiAccount(domainAccount)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetAccountById handles the logic for retrieving an account by its id.
func (h *AccountsHandler) GetAccountById(w http.ResponseWriter, r *http.Request, accountId string) {
	domainAccount, err := h.Store.GetAccount(r.Context(), accountId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAccount := mapping.ToApiAccount(domainAccount)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ClaimAllowance handles the logic for collecting the daily allowance.
func (h *AccountsHandler) ClaimAllowance(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AccountID(r.Context())

	updatedAccount, err := h.Allowance.Claim(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyClaimed):
			http.Error(w, "Daily allowance already collected", http.StatusConflict)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Account not found", http.StatusNotFound)
		default:
			http.Error(w, fmt.Sprintf("Failed to claim allowance: %v", err), http.StatusInternalServerError)
		}
		return
	}

	receipt := api.AllowanceReceipt{
		Message: "Daily allowance collected",
		Common:  updatedAccount.Common,
		Premium: updatedAccount.Premium,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(receipt); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
