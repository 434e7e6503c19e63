package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"scanner-backend/internal/domain"
)

// TickerSource supplies the 24h statistics snapshot.
type TickerSource interface {
	Ticker24h(ctx context.Context) ([]domain.Ticker24h, error)
}

type tickerSnapshot struct {
	fetchedAt time.Time
	tickers   []domain.Ticker24h
}

// TickerCache keeps the latest ticker snapshot in memory with a short
// TTL. Readers load the current snapshot through an atomic pointer and
// never block; only the refresh itself is serialized.
type TickerCache struct {
	source TickerSource
	ttl    time.Duration

	snap      atomic.Pointer[tickerSnapshot]
	refreshMu sync.Mutex

	now func() time.Time
}

func NewTickerCache(source TickerSource, ttl time.Duration) *TickerCache {
	return &TickerCache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Get returns the cached snapshot, refreshing it from the source when
// stale. A failed refresh propagates the error instead of serving the
// stale snapshot: discovery decisions made on expired data are worse
// than a visible failure.
func (c *TickerCache) Get(ctx context.Context) ([]domain.Ticker24h, error) {
	if s := c.snap.Load(); s != nil && c.now().Sub(s.fetchedAt) < c.ttl {
		return s.tickers, nil
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	// Another caller may have refreshed while we waited.
	if s := c.snap.Load(); s != nil && c.now().Sub(s.fetchedAt) < c.ttl {
		return s.tickers, nil
	}

	tickers, err := c.source.Ticker24h(ctx)
	if err != nil {
		return nil, err
	}

	c.snap.Store(&tickerSnapshot{fetchedAt: c.now(), tickers: tickers})
	return tickers, nil
}
