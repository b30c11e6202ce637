package accounts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/courtside/prop-auctions/pkg/allowance"
	"github.com/courtside/prop-auctions/pkg/api"
	"github.com/courtside/prop-auctions/pkg/clock"
	"github.com/courtside/prop-auctions/pkg/middleware"
	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/money"
	"github.com/courtside/prop-auctions/pkg/storage"
	storage_mocks "github.com/courtside/prop-auctions/pkg/storage/mocks"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

var testNow = time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T, accounts *storage_mocks.AccountStore, allowances *storage_mocks.AllowanceStore) *AccountsHandler {
	t.Helper()
	window, err := clock.NewTimeWindow(clock.DefaultReferenceZone, clock.DefaultResetHour)
	require.NoError(t, err)
	svc := allowance.NewService(allowances, fixedClock{at: testNow}, window)
	return NewAccountsHandler(accounts, svc)
}

func authed(req *http.Request, accountID string) *http.Request {
	return req.WithContext(middleware.WithAccountID(req.Context(), accountID))
}

func TestCreateAccount(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockAccounts := new(storage_mocks.AccountStore)
		handler := newTestHandler(t, mockAccounts, new(storage_mocks.AllowanceStore))

		created := &models.Account{AccountID: "user1", Version: 1}
		mockAccounts.On("CreateAccount", mock.Anything, mock.AnythingOfType("*models.Account")).Run(func(args mock.Arguments) {
			a := args.Get(1).(*models.Account)
			assert.Equal(t, "user1", a.AccountID)
			assert.Equal(t, money.Amount(0), a.Common)
			assert.Equal(t, money.Amount(0), a.Premium)
		}).Return(created, nil)

		body, _ := json.Marshal(api.NewAccount{AccountId: "user1"})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateAccount(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockAccounts.AssertExpectations(t)
	})

	t.Run("Already Exists", func(t *testing.T) {
		mockAccounts := new(storage_mocks.AccountStore)
		handler := newTestHandler(t, mockAccounts, new(storage_mocks.AllowanceStore))

		mockAccounts.On("CreateAccount", mock.Anything, mock.Anything).Return(nil, storage.ErrAlreadyExists)

		body, _ := json.Marshal(api.NewAccount{AccountId: "user1"})
		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		handler.CreateAccount(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Missing Id", func(t *testing.T) {
		mockAccounts := new(storage_mocks.AccountStore)
		handler := newTestHandler(t, mockAccounts, new(storage_mocks.AllowanceStore))

		req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader([]byte(`{}`)))
		rr := httptest.NewRecorder()

		handler.CreateAccount(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockAccounts.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockAccounts := new(storage_mocks.AccountStore)
		handler := newTestHandler(t, mockAccounts, new(storage_mocks.AllowanceStore))

		account := &models.Account{
			AccountID:    "user1",
			Common:       money.Amount(800_00),
			Premium:      money.Amount(100_00),
			Transactions: 7,
			WinRate:      0.43,
			Winnings:     money.Amount(250_00),
		}
		mockAccounts.On("GetAccount", mock.Anything, "user1").Return(account, nil)

		req := authed(httptest.NewRequest(http.MethodGet, "/profile", nil), "user1")
		rr := httptest.NewRecorder()

		handler.GetProfile(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Account
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "user1", got.AccountId)
		assert.Equal(t, money.Amount(800_00), got.Common)
		assert.Equal(t, int64(7), got.Transactions)
		mockAccounts.AssertExpectations(t)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockAccounts := new(storage_mocks.AccountStore)
		handler := newTestHandler(t, mockAccounts, new(storage_mocks.AllowanceStore))

		mockAccounts.On("GetAccount", mock.Anything, "ghost").Return(nil, storage.ErrNotFound)

		req := authed(httptest.NewRequest(http.MethodGet, "/profile", nil), "ghost")
		rr := httptest.NewRecorder()

		handler.GetProfile(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestClaimAllowance(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockAccounts := new(storage_mocks.AccountStore)
		mockAllowances := new(storage_mocks.AllowanceStore)
		handler := newTestHandler(t, mockAccounts, mockAllowances)

		claimed := &models.Account{
			AccountID: "user1",
			Common:    money.Amount(100_00),
			Premium:   money.Amount(100_00),
		}
		// 15:00 UTC is 11:00 Eastern, so the cycle began at 04:00 Eastern today.
		wantThreshold := time.Date(2026, 8, 27, 8, 0, 0, 0, time.UTC)
		mockAllowances.On("ClaimAllowance", mock.Anything, "user1", testNow, mock.MatchedBy(func(threshold time.Time) bool {
			return threshold.Equal(wantThreshold)
		}), allowance.Grant).Return(claimed, nil)

		req := authed(httptest.NewRequest(http.MethodPost, "/allowance", nil), "user1")
		rr := httptest.NewRecorder()

		handler.ClaimAllowance(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.AllowanceReceipt
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, money.Amount(100_00), got.Common)
		assert.Equal(t, money.Amount(100_00), got.Premium)
		mockAllowances.AssertExpectations(t)
	})

	t.Run("Already Claimed", func(t *testing.T) {
		mockAccounts := new(storage_mocks.AccountStore)
		mockAllowances := new(storage_mocks.AllowanceStore)
		handler := newTestHandler(t, mockAccounts, mockAllowances)

		mockAllowances.On("ClaimAllowance", mock.Anything, "user1", mock.Anything, mock.Anything, mock.Anything).Return(nil, storage.ErrAlreadyClaimed)

		req := authed(httptest.NewRequest(http.MethodPost, "/allowance", nil), "user1")
		rr := httptest.NewRecorder()

		handler.ClaimAllowance(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
