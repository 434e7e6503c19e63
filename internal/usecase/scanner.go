package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"scanner-backend/internal/domain"
	"scanner-backend/internal/infrastructure/binance"
	"scanner-backend/internal/infrastructure/fcm"
	"scanner-backend/internal/metrics"
)

// CandleSource is the upstream market-data boundary.
type CandleSource interface {
	TickerSource
	Klines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error)
}

// Config carries the scan-loop knobs wired in from the environment.
type Config struct {
	QuoteAsset    string
	TopN          int
	Interval      string
	CandleLimit   int
	Concurrency   int
	SymbolTimeout time.Duration
	ScanCycle     time.Duration
}

// ScanRequest describes one scan invocation. An empty Symbols list
// switches to discovery mode: top-N quote-asset pairs by quote volume.
type ScanRequest struct {
	Symbols  []string
	Interval string
	Limit    int
	TopN     int
}

// ScannerUsecase runs the fetch -> indicators -> signals -> score
// pipeline over a symbol universe with bounded concurrency.
type ScannerUsecase struct {
	source    CandleSource
	tickers   *TickerCache
	repo      domain.ScanRepository
	history   domain.SnapshotHistory
	tokenRepo domain.TokenRepository
	fcmClient *fcm.Client
	metrics   *metrics.Metrics
	log       *slog.Logger
	cfg       Config

	notifiedMu sync.Mutex
	notified   map[string]time.Time // symbol -> last alert

	now func() time.Time
}

func NewScannerUsecase(
	source CandleSource,
	tickers *TickerCache,
	repo domain.ScanRepository,
	history domain.SnapshotHistory,
	tokenRepo domain.TokenRepository,
	fcmClient *fcm.Client,
	m *metrics.Metrics,
	log *slog.Logger,
	cfg Config,
) *ScannerUsecase {
	return &ScannerUsecase{
		source:    source,
		tickers:   tickers,
		repo:      repo,
		history:   history,
		tokenRepo: tokenRepo,
		fcmClient: fcmClient,
		metrics:   m,
		log:       log,
		cfg:       cfg,
		notified:  make(map[string]time.Time),
		now:       time.Now,
	}
}

// Run drives the background scan loop until the context is cancelled.
func (uc *ScannerUsecase) Run(ctx context.Context) {
	ticker := time.NewTicker(uc.cfg.ScanCycle)
	defer ticker.Stop()

	uc.process(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.process(ctx)
		}
	}
}

func (uc *ScannerUsecase) process(ctx context.Context) {
	start := uc.now()
	uc.log.Info("starting scan cycle")

	snap, err := uc.Scan(ctx, ScanRequest{})
	if err != nil {
		uc.log.Error("scan cycle failed", "err", err)
		return
	}

	uc.repo.SaveSnapshot(snap)
	if uc.history != nil {
		if err := uc.history.Append(ctx, snap); err != nil {
			uc.log.Warn("snapshot history append failed", "err", err)
		}
	}
	uc.sendAlerts(ctx, snap)

	uc.metrics.ScanCyclesTotal.Inc()
	uc.metrics.ScanCycleDur.Observe(uc.now().Sub(start).Seconds())
	uc.log.Info("scan cycle completed",
		"symbols", len(snap.Results),
		"elapsed", uc.now().Sub(start).String())
}

// Scan resolves the symbol set, fans out bounded fetch+compute tasks
// and fans their outcomes back in. Individual symbol failures become
// skips; only total unavailability of the ticker snapshot (discovery
// mode) or an invalid request is an error.
func (uc *ScannerUsecase) Scan(ctx context.Context, req ScanRequest) (*domain.ScanSnapshot, error) {
	interval := req.Interval
	if interval == "" {
		interval = uc.cfg.Interval
	}
	if !binance.ValidInterval(interval) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidInterval, interval)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = uc.cfg.CandleLimit
	}
	if limit < MinCandles {
		limit = MinCandles
	}

	symbols, err := uc.resolveSymbols(ctx, req)
	if err != nil {
		return nil, err
	}

	outcomes := make([]domain.SymbolOutcome, 0, len(symbols))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	sem := make(chan struct{}, uc.cfg.Concurrency)

	for _, sym := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			outcome := uc.scanSymbol(ctx, symbol, interval, limit)
			mu.Lock()
			outcomes = append(outcomes, outcome)
			mu.Unlock()
		}(sym)
	}
	wg.Wait()

	results := make([]domain.ScanResult, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.OK() {
			uc.metrics.SymbolsSkipped.WithLabelValues(string(o.SkipKind)).Inc()
			uc.log.Debug("symbol skipped", "symbol", o.Symbol, "kind", o.SkipKind, "reason", o.SkipReason)
			continue
		}
		uc.metrics.SymbolsScanned.Inc()
		results = append(results, *o.Result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].TotalScore != results[j].TotalScore {
			return results[i].TotalScore > results[j].TotalScore
		}
		return results[i].Symbol < results[j].Symbol
	})

	return &domain.ScanSnapshot{
		GeneratedAt: uc.now().UTC(),
		Interval:    interval,
		Results:     results,
	}, nil
}

// resolveSymbols normalizes explicit symbols or, when none were given,
// discovers the top-N quote-asset pairs by quote volume.
func (uc *ScannerUsecase) resolveSymbols(ctx context.Context, req ScanRequest) ([]string, error) {
	if len(req.Symbols) > 0 {
		seen := make(map[string]bool, len(req.Symbols))
		symbols := make([]string, 0, len(req.Symbols))
		for _, s := range req.Symbols {
			norm := domain.NormalizeSymbol(s, uc.cfg.QuoteAsset)
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			symbols = append(symbols, norm)
		}
		if len(symbols) == 0 {
			return nil, domain.ErrNoSymbols
		}
		return symbols, nil
	}

	topN := req.TopN
	if topN <= 0 {
		topN = uc.cfg.TopN
	}

	tickers, err := uc.tickers.Get(ctx)
	if err != nil {
		return nil, err
	}

	universe := uc.filterUniverse(tickers, true)
	sort.Slice(universe, func(i, j int) bool {
		return universe[i].QuoteVolume > universe[j].QuoteVolume
	})
	if len(universe) > topN {
		universe = universe[:topN]
	}
	if len(universe) == 0 {
		return nil, domain.ErrNoSymbols
	}

	symbols := make([]string, len(universe))
	for i, t := range universe {
		symbols[i] = t.Symbol
	}
	return symbols, nil
}

// filterUniverse keeps quote-asset pairs and, when asked, drops
// leveraged-token names.
func (uc *ScannerUsecase) filterUniverse(tickers []domain.Ticker24h, excludeLeveraged bool) []domain.Ticker24h {
	out := make([]domain.Ticker24h, 0, len(tickers))
	for _, t := range tickers {
		if domain.NormalizeSymbol(t.Symbol, uc.cfg.QuoteAsset) != t.Symbol {
			continue
		}
		if excludeLeveraged && domain.IsLeveragedSymbol(t.Symbol, uc.cfg.QuoteAsset) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (uc *ScannerUsecase) scanSymbol(ctx context.Context, symbol, interval string, limit int) domain.SymbolOutcome {
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.SymbolTimeout)
	defer cancel()

	fetchStart := uc.now()
	candles, err := uc.source.Klines(ctx, symbol, interval, limit)
	uc.metrics.UpstreamReqDur.WithLabelValues("klines").Observe(uc.now().Sub(fetchStart).Seconds())
	if err != nil {
		return domain.SymbolOutcome{
			Symbol:     symbol,
			SkipKind:   domain.SkipFetchFailed,
			SkipReason: fmt.Sprintf("fetch failed: %v", err),
		}
	}
	if len(candles) < MinCandles {
		return domain.SymbolOutcome{
			Symbol:     symbol,
			SkipKind:   domain.SkipShortHistory,
			SkipReason: fmt.Sprintf("%d candles, need %d", len(candles), MinCandles),
		}
	}

	results := EvaluateIndicators(candles)
	total := TotalScore(results)

	return domain.SymbolOutcome{
		Symbol: symbol,
		Result: &domain.ScanResult{
			Symbol:         symbol,
			Price:          candles[len(candles)-1].Close,
			Indicators:     results,
			TotalScore:     total,
			Recommendation: Recommend(total),
		},
	}
}

// fetchCandlesFor fetches candles for a set of symbols with the same
// bounded fan-out as a scan. Failed symbols are simply absent from the
// returned map.
func (uc *ScannerUsecase) fetchCandlesFor(ctx context.Context, symbols []string, interval string, limit int) map[string][]domain.Candle {
	out := make(map[string][]domain.Candle, len(symbols))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	sem := make(chan struct{}, uc.cfg.Concurrency)

	for _, sym := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fctx, cancel := context.WithTimeout(ctx, uc.cfg.SymbolTimeout)
			defer cancel()

			candles, err := uc.source.Klines(fctx, symbol, interval, limit)
			if err != nil {
				uc.log.Debug("candle fetch skipped", "symbol", symbol, "err", err)
				return
			}
			mu.Lock()
			out[symbol] = candles
			mu.Unlock()
		}(sym)
	}
	wg.Wait()
	return out
}
