package market_rate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klokku/finpulse/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestClientImpl_LatestRate(t *testing.T) {
	t.Run("should parse the latest series value", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/series/432", r.URL.Path)
			w.Write([]byte(`[{"data":"16/10/2025","valor":"14.90"},{"data":"17/10/2025","valor":"15.00"}]`))
		}))
		defer server.Close()
		client := NewClient(server.Client(), server.URL+"/series/%s")

		// when
		rate, err := client.LatestRate(ctx, "432")

		// then
		require.NoError(t, err)
		assert.Equal(t, "432", rate.Series)
		assert.Equal(t, "15", rate.AnnualPercent.String())
		assert.Equal(t, time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC), rate.Date)
	})

	t.Run("should fail on a non OK status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewClient(server.Client(), server.URL+"/%s").LatestRate(ctx, "432")

		assert.ErrorIs(t, err, ErrRateUnavailable)
	})

	t.Run("should fail on an empty series", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		_, err := NewClient(server.Client(), server.URL+"/%s").LatestRate(ctx, "432")

		assert.ErrorIs(t, err, ErrRateUnavailable)
	})
}

func TestRate_MonthlyFactor(t *testing.T) {
	rate := Rate{AnnualPercent: decimal.NewFromInt(12)}

	assert.Equal(t, "0.01", rate.MonthlyFactor().String())
}

func TestMemoryCache(t *testing.T) {
	// given
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
	cache := NewMemoryCache(time.Hour, clock)
	require.NoError(t, cache.Set(ctx, "432", Rate{Series: "432", AnnualPercent: decimal.NewFromInt(15)}))

	// when
	clock.Advance(59 * time.Minute)
	_, fresh, _ := cache.Get(ctx, "432")
	clock.Advance(time.Minute)
	_, expired, _ := cache.Get(ctx, "432")

	// then
	assert.True(t, fresh)
	assert.False(t, expired)
}

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) (Rate, bool, error) {
	return Rate{}, false, errors.New("connection refused")
}

func (failingCache) Set(ctx context.Context, key string, rate Rate) error {
	return errors.New("connection refused")
}

func TestCachedProvider_CurrentRate(t *testing.T) {
	t.Run("should fetch once within the ttl", func(t *testing.T) {
		// given
		clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
		client := &ClientStub{Rate: Rate{AnnualPercent: decimal.NewFromInt(15)}}
		provider := NewCachedProvider(client, NewMemoryCache(time.Hour, clock), "432")

		// when
		_, err := provider.CurrentRate(ctx)
		require.NoError(t, err)
		rate, err := provider.CurrentRate(ctx)
		require.NoError(t, err)

		// then
		assert.Equal(t, 1, client.Calls)
		assert.Equal(t, "432", rate.Series)

		clock.Advance(2 * time.Hour)
		_, err = provider.CurrentRate(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, client.Calls)
	})

	t.Run("should bypass a failing cache", func(t *testing.T) {
		client := &ClientStub{Rate: Rate{AnnualPercent: decimal.NewFromInt(10)}}
		provider := NewCachedProvider(client, failingCache{}, "432")

		rate, err := provider.CurrentRate(ctx)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(10).Equal(rate.AnnualPercent))
	})

	t.Run("should propagate client failures", func(t *testing.T) {
		client := &ClientStub{Err: ErrRateUnavailable}
		provider := NewCachedProvider(client, NewMemoryCache(time.Hour, &utils.MockClock{}), "432")

		_, err := provider.CurrentRate(ctx)

		assert.ErrorIs(t, err, ErrRateUnavailable)
	})
}
