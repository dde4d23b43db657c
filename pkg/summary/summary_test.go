package summary

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/aggregate"
	"github.com/klokku/finpulse/pkg/health"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = account.WithId(context.Background(), 1)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func givenLedger() *ledger.ReaderStub {
	reader := ledger.NewReaderStub()
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	reader.Fixed = []ledger.FixedCommitment{
		{AccountId: 1, Kind: ledger.KindIncome, Amount: amount(3000)},
		{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(1000), StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), EndDate: &end},
	}
	reader.AdHoc = []ledger.AdHocEntry{
		{AccountId: 1, Kind: ledger.KindExpense, Amount: amount(500), Date: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)},
	}
	return reader
}

func TestServiceImpl_Summary(t *testing.T) {
	t.Run("should summarize the reference month", func(t *testing.T) {
		// given
		service := NewService(aggregate.NewService(givenLedger()))

		// when
		summary, err := service.Summary(ctx, period.NewMonthKey(6, 2025))

		// then
		require.NoError(t, err)
		assert.True(t, amount(3000).Equal(summary.Aggregate.TotalIncome))
		assert.True(t, amount(1500).Equal(summary.Aggregate.TotalExpense))
		assert.True(t, amount(1500).Equal(summary.Aggregate.Balance))
		assert.True(t, amount(50).Equal(summary.Health.Percentage))
		assert.Equal(t, health.StatusExcellent, summary.Health.Status)
	})

	t.Run("should return error when context has no account", func(t *testing.T) {
		service := NewService(aggregate.NewService(givenLedger()))

		_, err := service.Summary(context.Background(), period.NewMonthKey(6, 2025))

		assert.ErrorIs(t, err, account.ErrNoAccount)
	})
}

func TestHandler_GetSummary(t *testing.T) {
	// given
	handler := NewHandler(NewService(aggregate.NewService(givenLedger())))
	req := httptest.NewRequest(http.MethodGet, "/api/summary?month=6&year=2025", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	// when
	handler.GetSummary(w, req)

	// then
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"month": 6,
		"year": 2025,
		"income": {"fixed": 3000, "extra": 0, "total": 3000},
		"expenses": {"fixed": {"total": 1000}, "variable": {"total": 500}, "piggyBanks": {"total": 0}, "total": 1500},
		"balance": 1500,
		"health": {"percentage": 50, "status": "excellent"}
	}`, w.Body.String())
}

func TestHandler_GetSummary_NoAccount(t *testing.T) {
	handler := NewHandler(NewService(aggregate.NewService(givenLedger())))
	req := httptest.NewRequest(http.MethodGet, "/api/summary?month=6&year=2025", nil)
	w := httptest.NewRecorder()

	handler.GetSummary(w, req)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Account not found", body["error"])
}
