package score

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = account.WithId(context.Background(), 1)

var readerStub = ledger.NewReaderStub()

var service Service

var march = period.NewMonthKey(3, 2025)

func setup(t *testing.T) func() {
	service = NewService(aggregate.NewService(readerStub), readerStub, cfg, aggregate.DefaultTrailingMonths)
	return func() {
		t.Log("Teardown after test")
		readerStub.Reset()
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestServiceImpl_Score(t *testing.T) {
	t.Run("should score the month from the stored ledger", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		readerStub.Fixed = []ledger.FixedCommitment{
			{AccountId: 1, Kind: ledger.KindIncome, Amount: amount(1000)},
			{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(300), StartDate: date(2024, 1, 1)},
		}
		readerStub.AdHoc = []ledger.AdHocEntry{
			{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(600), Date: date(2025, 1, 10)},
			{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(100), Date: date(2025, 3, 10)},
		}
		readerStub.Assets = []ledger.Asset{{AccountId: 1, Category: "stocks"}, {AccountId: 1, Category: "vehicle"}}

		// when
		result, err := service.Score(ctx, march)

		// then
		require.NoError(t, err)
		assert.Equal(t, 200, pillar(t, result, PillarSavings).Score)
		assert.Equal(t, 100, pillar(t, result, PillarBudget).Score)
		assert.Equal(t, 0, pillar(t, result, PillarReserve).Score)
		assert.Equal(t, 80, pillar(t, result, PillarDiversification).Score)
		assert.Equal(t, 200, pillar(t, result, PillarHabits).Score)
		assert.Equal(t, 580, result.Score)
		assert.Equal(t, LevelRegular, result.Level)
	})

	t.Run("should propagate unavailable data", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		readerStub.Err = errors.Join(ledger.ErrDataUnavailable, errors.New("timeout"))

		// when
		_, err := service.Score(ctx, march)

		// then
		assert.ErrorIs(t, err, ledger.ErrDataUnavailable)
	})

	t.Run("should return error when context has no account", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Score(context.Background(), march)

		assert.ErrorIs(t, err, account.ErrNoAccount)
	})
}

func TestHandler_GetScore(t *testing.T) {
	t.Run("should render the score shape", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		handler := NewHandler(service)
		req := httptest.NewRequest(http.MethodGet, "/api/score?month=3&year=2025", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		// when
		handler.GetScore(w, req)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var body ScoreDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 200, body.Score)
		assert.Equal(t, 1000, body.MaxScore)
		assert.Equal(t, "Critical", body.Level)
		assert.Len(t, body.Pillars, 5)
	})

	t.Run("should reject an invalid month", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		req := httptest.NewRequest(http.MethodGet, "/api/score?month=0&year=2025", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		NewHandler(service).GetScore(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should map unavailable data to 503", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		readerStub.Err = ledger.ErrDataUnavailable
		req := httptest.NewRequest(http.MethodGet, "/api/score?month=3&year=2025", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		NewHandler(service).GetScore(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
