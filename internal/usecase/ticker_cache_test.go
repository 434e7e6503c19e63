package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanner-backend/internal/domain"
)

func TestTickerCacheServesWithinTTL(t *testing.T) {
	source := &fakeSource{
		tickers: []domain.Ticker24h{{Symbol: "BTCUSDT", QuoteVolume: 100}},
	}
	cache := NewTickerCache(source, 30*time.Second)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	cache.now = func() time.Time { return now }

	first, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, source.tickerCalls)

	now = base.Add(29 * time.Second)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.tickerCalls, "fresh snapshot must not refetch")
}

func TestTickerCacheRefreshesAfterTTL(t *testing.T) {
	source := &fakeSource{
		tickers: []domain.Ticker24h{{Symbol: "BTCUSDT", QuoteVolume: 100}},
	}
	cache := NewTickerCache(source, 30*time.Second)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	cache.now = func() time.Time { return now }

	_, err := cache.Get(context.Background())
	require.NoError(t, err)

	source.mu.Lock()
	source.tickers = []domain.Ticker24h{
		{Symbol: "BTCUSDT", QuoteVolume: 100},
		{Symbol: "ETHUSDT", QuoteVolume: 50},
	}
	source.mu.Unlock()

	now = base.Add(31 * time.Second)
	tickers, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, tickers, 2)
	assert.Equal(t, 2, source.tickerCalls)
}

func TestTickerCachePropagatesRefreshError(t *testing.T) {
	source := &fakeSource{
		tickerErr: &domain.UpstreamError{Op: "ticker24h", Status: 500},
	}
	cache := NewTickerCache(source, time.Second)

	_, err := cache.Get(context.Background())
	var upstream *domain.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}
