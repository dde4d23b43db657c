package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/finpulse/internal/utils"
	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/asset"
	"github.com/klokku/finpulse/pkg/category_budget"
	"github.com/klokku/finpulse/pkg/comparison"
	"github.com/klokku/finpulse/pkg/contribution"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/market_rate"
	"github.com/klokku/finpulse/pkg/projection"
	"github.com/klokku/finpulse/pkg/score"
	"github.com/klokku/finpulse/pkg/skip"
	"github.com/klokku/finpulse/pkg/summary"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubRouter(reader *ledger.ReaderStub) *mux.Router {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)}
	aggregates := aggregate.NewService(reader)
	skipRegistry := skip.NewRegistry(skip.NewRepositoryStub())
	rates := market_rate.NewCachedProvider(&market_rate.ClientStub{}, market_rate.NewMemoryCache(time.Hour, clock), "432")

	deps := &Dependencies{
		SummaryHandler:        summary.NewHandler(summary.NewService(aggregates)),
		ScoreHandler:          score.NewHandler(score.NewService(aggregates, reader, score.Config{EmergencyMonths: 6, SavingsAssetCategory: "savings"}, 3)),
		ProjectionHandler:     projection.NewHandler(projection.NewService(aggregates, clock, 3), 6),
		ComparisonHandler:     comparison.NewHandler(comparison.NewService(aggregates)),
		ContributionHandler:   contribution.NewHandler(contribution.NewService(reader, clock)),
		SkipHandler:           skip.NewHandler(skipRegistry),
		CategoryBudgetHandler: category_budget.NewHandler(category_budget.NewService(category_budget.NewRepositoryStub(), reader)),
		AssetHandler:          asset.NewHandler(asset.NewService(asset.NewRepositoryStub(), reader, rates, clock, []string{"savings"})),
	}
	r := mux.NewRouter()
	SetupMiddleware(r)
	RegisterRoutes(r, deps)
	return r
}

func TestRoutes(t *testing.T) {
	reader := ledger.NewReaderStub()
	reader.Fixed = []ledger.FixedCommitment{
		{Id: 1, AccountId: 7, Kind: ledger.KindIncome, Amount: decimal.NewFromInt(5000), StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Id: 2, AccountId: 7, Kind: ledger.KindExpense, Amount: decimal.NewFromInt(2000), StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	router := stubRouter(reader)

	t.Run("should serve the summary for the account in the header", func(t *testing.T) {
		// given
		req := httptest.NewRequest(http.MethodGet, "/api/summary?month=3&year=2025", nil)
		req.Header.Set(account.HeaderName, "7")
		w := httptest.NewRecorder()

		// when
		router.ServeHTTP(w, req)

		// then
		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 3000, body["balance"])
		assert.NotEmpty(t, w.Header().Get(requestIdHeader))
	})

	t.Run("should reject a request without account", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/score?month=3&year=2025", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("should reject a malformed account header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/score?month=3&year=2025", nil)
		req.Header.Set(account.HeaderName, "abc")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should keep the incoming request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projection?months=2", nil)
		req.Header.Set(account.HeaderName, "7")
		req.Header.Set(requestIdHeader, "req-1")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "req-1", w.Header().Get(requestIdHeader))
	})

	t.Run("should route the budget upsert", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/budget", bytes.NewBufferString(`{"categoryId":1,"month":3,"year":2025,"amount":100}`))
		req.Header.Set(account.HeaderName, "7")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should return 404 for skip of unknown contribution", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/contribution/99/skip", bytes.NewBufferString(`{"month":3,"year":2025,"skip":true}`))
		req.Header.Set(account.HeaderName, "7")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
