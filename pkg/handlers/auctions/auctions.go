package auctions

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/courtside/prop-auctions/pkg/api"
	"github.com/courtside/prop-auctions/pkg/auction"
	"github.com/courtside/prop-auctions/pkg/clock"
	"github.com/courtside/prop-auctions/pkg/mapping"
	"github.com/courtside/prop-auctions/pkg/middleware"
	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/money"
	"github.com/courtside/prop-auctions/pkg/scheduler"
	"github.com/courtside/prop-auctions/pkg/storage"
	"github.com/courtside/prop-auctions/pkg/websockets"
)

// AuctionsHandler holds the dependencies for auction-related handlers.
type AuctionsHandler struct {
	Store     storage.ApiStore
	Scheduler scheduler.RefundScheduler
	Publisher websockets.Publisher
	Clock     clock.Clock
	Window    *clock.TimeWindow
}

// NewAuctionsHandler creates a new AuctionsHandler.
func NewAuctionsHandler(store storage.ApiStore, sched scheduler.RefundScheduler, publisher websockets.Publisher, clk clock.Clock, window *clock.TimeWindow) *AuctionsHandler {
	return &AuctionsHandler{Store: store, Scheduler: sched, Publisher: publisher, Clock: clk, Window: window}
}

// CreateAuction handles the logic for posting a new auction. The seller's
// stake is escrowed in the same storage transaction that persists the auction.
func (h *AuctionsHandler) CreateAuction(w http.ResponseWriter, r *http.Request) {
	var newAuction api.NewAuction
	if err := json.NewDecoder(r.Body).Decode(&newAuction); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	sellerID := middleware.AccountID(r.Context())
	domainAuction := mapping.ToDomainNewAuction(&newAuction, sellerID)
	auction.PrepareNew(domainAuction, h.Clock.Now())

	createdAuction, err := h.Store.CreateAuction(r.Context(), domainAuction)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidAuctionParameters), errors.Is(err, storage.ErrInvalidCurrencyKind):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, storage.ErrInsufficientFunds):
			http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Account not found", http.StatusNotFound)
		default:
			slog.Error("failed to create auction", "error", err)
			http.Error(w, fmt.Sprintf("Failed to create auction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	// The auction is committed; enqueue its expiry refund check.
	if h.Scheduler != nil {
		delay := createdAuction.ExpiresAt.Sub(h.Clock.Now())
		if err := h.Scheduler.ScheduleRefund(r.Context(), createdAuction.ID, delay); err != nil {
			slog.Error("auction created but refund check not enqueued", "auctionId", createdAuction.ID, "error", err)
		}
	}

	h.publishBalanceUpdate(r, createdAuction.SellerID, createdAuction.ID, createdAuction.Currency, -createdAuction.Stake)

	apiAuction := mapping.ToApiAuction(createdAuction)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiAuction); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// BuyAuction handles the logic for purchasing an open auction.
func (h *AuctionsHandler) BuyAuction(w http.ResponseWriter, r *http.Request) {
	var buyReq api.BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&buyReq); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	buyerID := middleware.AccountID(r.Context())

	soldAuction, err := h.Store.BuyAuction(r.Context(), buyReq.AuctionId.String(), buyerID, h.Clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadySold):
			http.Error(w, "Auction already sold", http.StatusConflict)
		case errors.Is(err, storage.ErrAuctionExpired):
			http.Error(w, "Auction expired", http.StatusGone)
		case errors.Is(err, storage.ErrSelfPurchase):
			http.Error(w, "Cannot buy your own auction", http.StatusForbidden)
		case errors.Is(err, storage.ErrInsufficientFunds):
			http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "Auction not found", http.StatusNotFound)
		default:
			slog.Error("failed to buy auction", "auctionId", buyReq.AuctionId, "error", err)
			http.Error(w, fmt.Sprintf("Failed to buy auction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	cost := auction.Cost(soldAuction.Stake, soldAuction.Multiplier)
	h.publishBalanceUpdate(r, buyerID, soldAuction.ID, soldAuction.Currency, -cost)
	h.publishAuctionSold(r, soldAuction)

	apiAuction := mapping.ToApiAuction(soldAuction)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAuction); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetAuctionById handles the logic for retrieving an auction by its id.
func (h *AuctionsHandler) GetAuctionById(w http.ResponseWriter, r *http.Request, auctionId string) {
	domainAuction, err := h.Store.GetAuction(r.Context(), auctionId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Auction not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve auction: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAuction := mapping.ToApiAuction(domainAuction)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAuction); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListMine handles the logic for listing the caller's open, unexpired auctions.
func (h *AuctionsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	sellerID := middleware.AccountID(r.Context())

	domainAuctions, err := h.Store.ListOpenBySeller(r.Context(), sellerID, h.Clock.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve auctions: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeAuctions(w, domainAuctions)
}

// ListMarketplace handles the logic for listing open, unexpired auctions
// posted by everyone except the caller.
func (h *AuctionsHandler) ListMarketplace(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AccountID(r.Context())

	domainAuctions, err := h.Store.ListOpenMarketplace(r.Context(), accountID, h.Clock.Now())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve auctions: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeAuctions(w, domainAuctions)
}

// ListSold handles the logic for listing today's sold auctions involving the
// caller, on either side of the wager.
func (h *AuctionsHandler) ListSold(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.AccountID(r.Context())
	since := h.Window.DayStart(h.Clock.Now())

	domainAuctions, err := h.Store.ListSoldInvolving(r.Context(), accountID, since)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve auctions: %v", err), http.StatusInternalServerError)
		return
	}

	h.writeAuctions(w, domainAuctions)
}

func (h *AuctionsHandler) writeAuctions(w http.ResponseWriter, domainAuctions []models.Auction) {
	apiAuctions := mapping.ToApiAuctions(domainAuctions)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAuctions); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// publishBalanceUpdate pushes the account's fresh balance over WebSocket.
// Failures are logged, never surfaced; the request already committed.
func (h *AuctionsHandler) publishBalanceUpdate(r *http.Request, accountID, auctionID string, currency money.CurrencyKind, change money.Amount) {
	account, err := h.Store.GetAccount(r.Context(), accountID)
	if err != nil {
		slog.Error("failed to get account for websocket message", "accountId", accountID, "error", err)
		return
	}
	balance, err := account.Balance(currency)
	if err != nil {
		slog.Error("failed to resolve balance for websocket message", "accountId", accountID, "error", err)
		return
	}

	msg := websockets.Message{
		Type:      websockets.MessageTypeBalanceUpdate,
		Recipient: accountID,
		Payload: websockets.BalanceUpdatePayload{
			AccountID:  accountID,
			AuctionID:  auctionID,
			Currency:   currency,
			Change:     change,
			NewBalance: balance,
		},
	}
	if err := h.Publisher.Publish(r.Context(), msg); err != nil {
		slog.Error("failed to publish websocket message", "error", err)
	}
}

func (h *AuctionsHandler) publishAuctionSold(r *http.Request, a *models.Auction) {
	msg := websockets.Message{
		Type: websockets.MessageTypeAuctionSold,
		Payload: websockets.AuctionSoldPayload{
			AuctionID: a.ID,
			SellerID:  a.SellerID,
			BuyerID:   a.BuyerID,
		},
	}
	if err := h.Publisher.Publish(r.Context(), msg); err != nil {
		slog.Error("failed to publish websocket message", "error", err)
	}
}
