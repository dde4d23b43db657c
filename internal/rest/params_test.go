package rest

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klokku/finpulse/pkg/account"
	"github.com/klokku/finpulse/pkg/ledger"
	"github.com/klokku/finpulse/pkg/period"
	"github.com/stretchr/testify/assert"
)

func TestMonthParam(t *testing.T) {
	t.Run("should parse month and year", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/summary?month=3&year=2025", nil)

		month, err := MonthParam(r, "month", "year")

		assert.NoError(t, err)
		assert.Equal(t, period.NewMonthKey(3, 2025), month)
	})

	for _, query := range []string{"month=0&year=2025", "month=13&year=2025", "month=x&year=2025", "month=3&year=1999", "month=3"} {
		t.Run("should reject "+query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/summary?"+query, nil)

			_, err := MonthParam(r, "month", "year")

			assert.Error(t, err)
		})
	}
}

func TestIntParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/projection?months=12", nil)
	value, err := IntParam(r, "months", 6)
	assert.NoError(t, err)
	assert.Equal(t, 12, value)

	r = httptest.NewRequest(http.MethodGet, "/api/projection", nil)
	value, err = IntParam(r, "months", 6)
	assert.NoError(t, err)
	assert.Equal(t, 6, value)

	r = httptest.NewRequest(http.MethodGet, "/api/projection?months=-1", nil)
	_, err = IntParam(r, "months", 6)
	assert.Error(t, err)
}

func TestWriteServiceError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{account.ErrNoAccount, http.StatusForbidden},
		{fmt.Errorf("%w: timeout", ledger.ErrDataUnavailable), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()

		WriteServiceError(w, c.err)

		assert.Equal(t, c.status, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	}
}
