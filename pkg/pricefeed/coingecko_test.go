package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCoinGecko_Refresh(t *testing.T) {
	var failing atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "secret", r.Header.Get("x-cg-pro-api-key"))
		if failing.Load() {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"status":{"error_code":429}}`))
			return
		}
		_, _ = w.Write([]byte(`{"ethereum":{"usd":3150.25}}`))
	}))
	defer srv.Close()

	cg := NewCoinGecko(CoinGeckoConfig{
		BaseURL: srv.URL,
		APIKey:  "secret",
		CoinID:  "ethereum",
		MaxAge:  time.Minute,
	}, zap.NewNop())
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cg.now = func() time.Time { return now }

	ctx := context.Background()
	_, valid, err := cg.LatestPrice(ctx)
	require.NoError(t, err)
	assert.False(t, valid, "no price before the first query")

	require.NoError(t, cg.Refresh(ctx))
	price, valid, err := cg.LatestPrice(ctx)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, "3150.25", price.String())

	// failed refresh keeps the last good price
	failing.Store(true)
	require.Error(t, cg.Refresh(ctx))
	price, valid, _ = cg.LatestPrice(ctx)
	assert.True(t, valid)
	assert.Equal(t, "3150.25", price.String())

	now = now.Add(2 * time.Minute)
	_, valid, _ = cg.LatestPrice(ctx)
	assert.False(t, valid, "cached price older than max age")
}

func TestCoinGecko_MissingCoin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":1}}`))
	}))
	defer srv.Close()

	cg := NewCoinGecko(CoinGeckoConfig{BaseURL: srv.URL, CoinID: "ethereum", MaxAge: time.Minute}, zap.NewNop())
	require.Error(t, cg.Refresh(context.Background()))
}
