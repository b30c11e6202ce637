package auctions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/courtside/prop-auctions/pkg/api"
	"github.com/courtside/prop-auctions/pkg/clock"
	"github.com/courtside/prop-auctions/pkg/middleware"
	"github.com/courtside/prop-auctions/pkg/models"
	"github.com/courtside/prop-auctions/pkg/money"
	scheduler_mocks "github.com/courtside/prop-auctions/pkg/scheduler/mocks"
	"github.com/courtside/prop-auctions/pkg/storage"
	storage_mocks "github.com/courtside/prop-auctions/pkg/storage/mocks"
	"github.com/courtside/prop-auctions/pkg/websockets"
	ws_mocks "github.com/courtside/prop-auctions/pkg/websockets/publishermock"
)

// fixedClock pins "now" for handler tests.
type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

var testNow = time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T, store *storage_mocks.ApiStore, sched *scheduler_mocks.RefundScheduler) *AuctionsHandler {
	t.Helper()
	window, err := clock.NewTimeWindow(clock.DefaultReferenceZone, clock.DefaultResetHour)
	require.NoError(t, err)
	return NewAuctionsHandler(store, sched, &websockets.NoOpPublisher{}, fixedClock{at: testNow}, window)
}

func authed(req *http.Request, accountID string) *http.Request {
	return req.WithContext(middleware.WithAccountID(req.Context(), accountID))
}

func TestCreateAuction(t *testing.T) {
	mult, _ := money.MultiplierFromString("2.5")
	newAuction := &api.NewAuction{
		Game:            "LAL @ BOS",
		Player:          "J. Tatum",
		Metric:          "points",
		Condition:       "over",
		Line:            27.5,
		DurationMinutes: 60,
		Stake:           money.Amount(200_00),
		Currency:        money.Common,
		Multiplier:      mult,
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockScheduler := new(scheduler_mocks.RefundScheduler)
		handler := newTestHandler(t, mockStorage, mockScheduler)

		created := &models.Auction{
			ID:              uuid.New().String(),
			SellerID:        "seller1",
			Stake:           newAuction.Stake,
			Currency:        newAuction.Currency,
			Multiplier:      newAuction.Multiplier,
			DurationMinutes: newAuction.DurationMinutes,
			CreatedAt:       testNow,
			EventDate:       testNow,
			ExpiresAt:       testNow.Add(60 * time.Minute),
			State:           models.OPEN,
		}

		mockStorage.On("CreateAuction", mock.Anything, mock.AnythingOfType("*models.Auction")).Run(func(args mock.Arguments) {
			a := args.Get(1).(*models.Auction)
			assert.Equal(t, "seller1", a.SellerID)
			assert.Equal(t, testNow, a.CreatedAt)
			assert.Equal(t, testNow.Add(60*time.Minute), a.ExpiresAt)
		}).Return(created, nil)
		mockScheduler.On("ScheduleRefund", mock.Anything, created.ID, 60*time.Minute).Return(nil)
		mockStorage.On("GetAccount", mock.Anything, "seller1").Return(&models.Account{AccountID: "seller1", Common: money.Amount(800_00)}, nil).Maybe()

		body, _ := json.Marshal(newAuction)
		req := authed(httptest.NewRequest(http.MethodPost, "/auctions", bytes.NewReader(body)), "seller1")
		rr := httptest.NewRecorder()

		handler.CreateAuction(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Auction
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, created.ID, got.Id)
		assert.Equal(t, string(models.OPEN), got.State)
		mockStorage.AssertExpectations(t)
		mockScheduler.AssertExpectations(t)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockScheduler := new(scheduler_mocks.RefundScheduler)
		handler := newTestHandler(t, mockStorage, mockScheduler)

		mockStorage.On("CreateAuction", mock.Anything, mock.Anything).Return(nil, storage.ErrInsufficientFunds)

		body, _ := json.Marshal(newAuction)
		req := authed(httptest.NewRequest(http.MethodPost, "/auctions", bytes.NewReader(body)), "seller1")
		rr := httptest.NewRecorder()

		handler.CreateAuction(rr, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		mockScheduler.AssertNotCalled(t, "ScheduleRefund", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Invalid Parameters", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockScheduler := new(scheduler_mocks.RefundScheduler)
		handler := newTestHandler(t, mockStorage, mockScheduler)

		mockStorage.On("CreateAuction", mock.Anything, mock.Anything).Return(nil, storage.ErrInvalidAuctionParameters)

		body, _ := json.Marshal(newAuction)
		req := authed(httptest.NewRequest(http.MethodPost, "/auctions", bytes.NewReader(body)), "seller1")
		rr := httptest.NewRecorder()

		handler.CreateAuction(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Bad Body", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockScheduler := new(scheduler_mocks.RefundScheduler)
		handler := newTestHandler(t, mockStorage, mockScheduler)

		req := authed(httptest.NewRequest(http.MethodPost, "/auctions", bytes.NewReader([]byte("{not json"))), "seller1")
		rr := httptest.NewRecorder()

		handler.CreateAuction(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStorage.AssertNotCalled(t, "CreateAuction", mock.Anything, mock.Anything)
	})
}

func TestBuyAuction(t *testing.T) {
	auctionID := uuid.New()
	mult, _ := money.MultiplierFromString("3")

	sold := &models.Auction{
		ID:         auctionID.String(),
		SellerID:   "seller1",
		BuyerID:    "buyer1",
		Stake:      money.Amount(200_00),
		Currency:   money.Common,
		Multiplier: mult,
		ExpiresAt:  testNow.Add(time.Hour),
		State:      models.SOLD,
	}

	buyBody := func() *bytes.Reader {
		body, _ := json.Marshal(api.BuyRequest{AuctionId: auctionID})
		return bytes.NewReader(body)
	}

	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(t, mockStorage, new(scheduler_mocks.RefundScheduler))

		mockStorage.On("BuyAuction", mock.Anything, auctionID.String(), "buyer1", testNow).Return(sold, nil)
		mockStorage.On("GetAccount", mock.Anything, "buyer1").Return(&models.Account{AccountID: "buyer1", Common: money.Amount(100_00)}, nil).Maybe()

		req := authed(httptest.NewRequest(http.MethodPost, "/auctions/buy", buyBody()), "buyer1")
		rr := httptest.NewRecorder()

		handler.BuyAuction(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Auction
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, string(models.SOLD), got.State)
		require.NotNil(t, got.BuyerId)
		assert.Equal(t, "buyer1", *got.BuyerId)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Publishes Targeted Updates", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		mockPublisher := new(ws_mocks.Publisher)
		window, err := clock.NewTimeWindow(clock.DefaultReferenceZone, clock.DefaultResetHour)
		require.NoError(t, err)
		handler := NewAuctionsHandler(mockStorage, new(scheduler_mocks.RefundScheduler), mockPublisher, fixedClock{at: testNow}, window)

		mockStorage.On("BuyAuction", mock.Anything, auctionID.String(), "buyer1", testNow).Return(sold, nil)
		mockStorage.On("GetAccount", mock.Anything, "buyer1").Return(&models.Account{AccountID: "buyer1", Common: money.Amount(100_00)}, nil)

		// The buyer's balance update goes only to the buyer; the sold
		// announcement is a broadcast.
		mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(msg websockets.Message) bool {
			return msg.Type == websockets.MessageTypeBalanceUpdate && msg.Recipient == "buyer1"
		})).Return(nil)
		mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(msg websockets.Message) bool {
			return msg.Type == websockets.MessageTypeAuctionSold && msg.Recipient == ""
		})).Return(nil)

		req := authed(httptest.NewRequest(http.MethodPost, "/auctions/buy", buyBody()), "buyer1")
		rr := httptest.NewRecorder()

		handler.BuyAuction(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockPublisher.AssertExpectations(t)
	})

	errorCases := []struct {
		name string
		err  error
		code int
	}{
		{"Already Sold", storage.ErrAlreadySold, http.StatusConflict},
		{"Expired", storage.ErrAuctionExpired, http.StatusGone},
		{"Self Purchase", storage.ErrSelfPurchase, http.StatusForbidden},
		{"Insufficient Funds", storage.ErrInsufficientFunds, http.StatusUnprocessableEntity},
		{"Not Found", storage.ErrNotFound, http.StatusNotFound},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			mockStorage := new(storage_mocks.ApiStore)
			handler := newTestHandler(t, mockStorage, new(scheduler_mocks.RefundScheduler))

			mockStorage.On("BuyAuction", mock.Anything, auctionID.String(), "buyer1", testNow).Return(nil, tc.err)

			req := authed(httptest.NewRequest(http.MethodPost, "/auctions/buy", buyBody()), "buyer1")
			rr := httptest.NewRecorder()

			handler.BuyAuction(rr, req)

			assert.Equal(t, tc.code, rr.Code)
			mockStorage.AssertExpectations(t)
		})
	}
}

func TestListAuctions(t *testing.T) {
	mult, _ := money.MultiplierFromString("2")
	listing := models.Auction{
		ID:         uuid.New().String(),
		SellerID:   "seller1",
		Stake:      money.Amount(50_00),
		Currency:   money.Premium,
		Multiplier: mult,
		ExpiresAt:  testNow.Add(time.Hour),
		State:      models.OPEN,
	}

	t.Run("Mine", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(t, mockStorage, new(scheduler_mocks.RefundScheduler))

		mockStorage.On("ListOpenBySeller", mock.Anything, "seller1", testNow).Return([]models.Auction{listing}, nil)

		req := authed(httptest.NewRequest(http.MethodGet, "/auctions", nil), "seller1")
		rr := httptest.NewRecorder()

		handler.ListMine(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got []api.Auction
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, listing.ID, got[0].Id)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Marketplace Excludes Caller", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(t, mockStorage, new(scheduler_mocks.RefundScheduler))

		mockStorage.On("ListOpenMarketplace", mock.Anything, "buyer1", testNow).Return([]models.Auction{listing}, nil)

		req := authed(httptest.NewRequest(http.MethodGet, "/auctions/all", nil), "buyer1")
		rr := httptest.NewRecorder()

		handler.ListMarketplace(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Sold Today", func(t *testing.T) {
		mockStorage := new(storage_mocks.ApiStore)
		handler := newTestHandler(t, mockStorage, new(scheduler_mocks.RefundScheduler))

		// 15:00 UTC on Aug 27 is 11:00 in New York; the day started at
		// midnight Eastern, 04:00 UTC.
		wantSince := time.Date(2026, 8, 27, 4, 0, 0, 0, time.UTC)
		mockStorage.On("ListSoldInvolving", mock.Anything, "buyer1", mock.MatchedBy(func(since time.Time) bool {
			return since.Equal(wantSince)
		})).Return([]models.Auction{}, nil)

		req := authed(httptest.NewRequest(http.MethodGet, "/auctions/sold", nil), "buyer1")
		rr := httptest.NewRecorder()

		handler.ListSold(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockStorage.AssertExpectations(t)
	})
}
