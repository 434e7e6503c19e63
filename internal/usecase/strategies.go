package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"

	"scanner-backend/internal/domain"
	"scanner-backend/internal/infrastructure/indicators"
)

// Strategy defaults. Callers override them through StrategyConfig; a
// zero floor still falls back to the default so no strategy ever runs
// without a volume filter.
const (
	defaultMinQuoteVolume = 1_000_000.0
	defaultResultLimit    = 20

	momentumMinChange = 3.0

	bouncePosition   = 0.2
	breakoutPosition = 0.85

	spikeMinRatio = 1.5

	dipMinChange = -15.0
	dipMaxChange = -2.0

	topPickVolumeCap = 10_000_000.0

	highPotentialCandidates = 50
	highPotentialMinScore   = 50.0
	adxPeriod               = 14
	atrPeriod               = 14
)

// DefaultStrategyConfig is the baseline every strategy starts from.
func DefaultStrategyConfig() domain.StrategyConfig {
	return domain.StrategyConfig{
		MinQuoteVolume:   defaultMinQuoteVolume,
		ExcludeLeveraged: true,
		Limit:            defaultResultLimit,
	}
}

// RunStrategy executes one of the fixed strategy views over the current
// ticker snapshot. Unknown names are rejected before any fetch.
func (uc *ScannerUsecase) RunStrategy(ctx context.Context, name domain.StrategyName, cfg domain.StrategyConfig) (*domain.StrategyResult, error) {
	if !domain.KnownStrategy(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, name)
	}

	if cfg.MinQuoteVolume <= 0 {
		cfg.MinQuoteVolume = defaultMinQuoteVolume
	}
	if cfg.Limit <= 0 {
		cfg.Limit = defaultResultLimit
	}

	tickers, err := uc.tickers.Get(ctx)
	if err != nil {
		return nil, err
	}

	universe := uc.filterUniverse(tickers, cfg.ExcludeLeveraged)
	kept := universe[:0:0]
	for _, t := range universe {
		if t.QuoteVolume >= cfg.MinQuoteVolume {
			kept = append(kept, t)
		}
	}

	uc.metrics.StrategyRunsTotal.WithLabelValues(string(name)).Inc()

	result := &domain.StrategyResult{Name: name}
	switch name {
	case domain.StrategyMomentum:
		result.Momentum = momentumFilter(kept, cfg)
	case domain.StrategySupportResistance:
		result.SupportResistance = supportResistanceFilter(kept, cfg)
	case domain.StrategyVolumeSpike:
		result.VolumeSpike = uc.volumeSpikeFilter(ctx, kept, cfg)
	case domain.StrategyTrendDip:
		result.TrendDip = trendDipFilter(kept, cfg)
	case domain.StrategyTopPicks:
		result.TopPicks = topPicksFilter(kept, cfg)
	case domain.StrategyHighPotential:
		result.HighPotential = uc.highPotentialFilter(ctx, kept, cfg)
	}
	return result, nil
}

func momentumFilter(tickers []domain.Ticker24h, cfg domain.StrategyConfig) []domain.MomentumRow {
	minChange := cfg.MinChangePercent
	if minChange <= 0 {
		minChange = momentumMinChange
	}

	rows := make([]domain.MomentumRow, 0, len(tickers))
	for _, t := range tickers {
		change := t.PriceChangePercent
		if math.Abs(change) <= minChange {
			continue
		}
		direction := domain.SignalBullish
		if change < 0 {
			direction = domain.SignalBearish
		}
		rows = append(rows, domain.MomentumRow{
			Symbol:        t.Symbol,
			Price:         t.LastPrice,
			ChangePercent: change,
			QuoteVolume:   t.QuoteVolume,
			Direction:     direction,
			Strength:      math.Min(math.Abs(change)/10, 1),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return math.Abs(rows[i].ChangePercent) > math.Abs(rows[j].ChangePercent)
	})
	return clamp(rows, cfg.Limit)
}

func supportResistanceFilter(tickers []domain.Ticker24h, cfg domain.StrategyConfig) []domain.SupportResistanceRow {
	mode := domain.RangeMode(cfg.Mode)
	if mode != domain.RangeBreakout {
		mode = domain.RangeBounce
	}

	rows := make([]domain.SupportResistanceRow, 0, len(tickers))
	for _, t := range tickers {
		span := t.HighPrice - t.LowPrice
		if span <= 0 {
			continue
		}
		pos := (t.LastPrice - t.LowPrice) / span
		if mode == domain.RangeBounce && pos >= bouncePosition {
			continue
		}
		if mode == domain.RangeBreakout && pos <= breakoutPosition {
			continue
		}
		rows = append(rows, domain.SupportResistanceRow{
			Symbol:          t.Symbol,
			Price:           t.LastPrice,
			HighPrice:       t.HighPrice,
			LowPrice:        t.LowPrice,
			PositionInRange: pos,
			Mode:            mode,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if mode == domain.RangeBounce {
			return rows[i].PositionInRange < rows[j].PositionInRange
		}
		return rows[i].PositionInRange > rows[j].PositionInRange
	})
	return clamp(rows, cfg.Limit)
}

// volumeSpikeFilter compares today's quote volume against a trailing
// daily baseline built from candle notional (volume * close), so a
// pair that always turns over a lot does not register as a spike.
func (uc *ScannerUsecase) volumeSpikeFilter(ctx context.Context, tickers []domain.Ticker24h, cfg domain.StrategyConfig) []domain.VolumeSpikeRow {
	candidates := topByQuoteVolume(tickers, highPotentialCandidates)
	symbols := make([]string, len(candidates))
	byName := make(map[string]domain.Ticker24h, len(candidates))
	for i, t := range candidates {
		symbols[i] = t.Symbol
		byName[t.Symbol] = t
	}

	candlesBySymbol := uc.fetchCandlesFor(ctx, symbols, "1d", volumeAvgPeriod+1)

	rows := make([]domain.VolumeSpikeRow, 0, len(candidates))
	for symbol, candles := range candlesBySymbol {
		// The last bar is the running day; the baseline uses only
		// completed days.
		if len(candles) < volumeAvgPeriod+1 {
			continue
		}
		baseline := 0.0
		complete := candles[:len(candles)-1]
		for _, c := range complete[len(complete)-volumeAvgPeriod:] {
			baseline += c.Volume * c.Close
		}
		baseline /= volumeAvgPeriod
		if baseline <= 0 {
			continue
		}

		t := byName[symbol]
		ratio := t.QuoteVolume / baseline
		if ratio <= spikeMinRatio {
			continue
		}
		rows = append(rows, domain.VolumeSpikeRow{
			Symbol:      symbol,
			Price:       t.LastPrice,
			QuoteVolume: t.QuoteVolume,
			VolumeRatio: ratio,
			Level:       spikeLevel(ratio),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].VolumeRatio > rows[j].VolumeRatio })
	return clamp(rows, cfg.Limit)
}

func spikeLevel(ratio float64) string {
	switch {
	case ratio >= 5:
		return "extreme"
	case ratio >= 3:
		return "very_high"
	case ratio >= 2:
		return "high"
	default:
		return "notable"
	}
}

func trendDipFilter(tickers []domain.Ticker24h, cfg domain.StrategyConfig) []domain.TrendDipRow {
	minChange := cfg.MinChangePercent
	if minChange >= 0 {
		minChange = dipMinChange
	}
	maxChange := cfg.MaxChangePercent
	if maxChange >= 0 {
		maxChange = dipMaxChange
	}

	rows := make([]domain.TrendDipRow, 0, len(tickers))
	for _, t := range tickers {
		change := t.PriceChangePercent
		if change <= minChange || change >= maxChange {
			continue
		}
		if t.HighPrice <= 0 {
			continue
		}
		dip := (t.HighPrice - t.LastPrice) / t.HighPrice * 100
		rows = append(rows, domain.TrendDipRow{
			Symbol:        t.Symbol,
			Price:         t.LastPrice,
			ChangePercent: change,
			DipFromHigh:   dip,
			Depth:         dipDepth(dip),
			BuyScore:      math.Min(math.Abs(change)*10, 100),
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].BuyScore > rows[j].BuyScore })
	return clamp(rows, cfg.Limit)
}

func dipDepth(dip float64) string {
	switch {
	case dip < 5:
		return "shallow"
	case dip < 10:
		return "moderate"
	default:
		return "deep"
	}
}

func topPicksFilter(tickers []domain.Ticker24h, cfg domain.StrategyConfig) []domain.TopPickRow {
	rows := make([]domain.TopPickRow, 0, len(tickers))
	for _, t := range tickers {
		volumeScore := math.Min(t.QuoteVolume/topPickVolumeCap, 1)
		momentumScore := math.Min(math.Abs(t.PriceChangePercent)/10, 1)

		rec := domain.Hold
		switch {
		case t.PriceChangePercent > 3:
			rec = domain.Buy
		case t.PriceChangePercent < -3:
			rec = domain.Sell
		}

		rows = append(rows, domain.TopPickRow{
			Symbol:         t.Symbol,
			Price:          t.LastPrice,
			ChangePercent:  t.PriceChangePercent,
			QuoteVolume:    t.QuoteVolume,
			VolumeScore:    volumeScore,
			MomentumScore:  momentumScore,
			Score:          volumeScore*0.4 + momentumScore*0.6,
			Recommendation: rec,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	return clamp(rows, cfg.Limit)
}

// highPotentialFilter shortlists pairs whose recent candles show a
// strong trend (ADX), real volatility (ATR as percent of price) and
// volume confirmation, with a bonus for trading above VWAP.
func (uc *ScannerUsecase) highPotentialFilter(ctx context.Context, tickers []domain.Ticker24h, cfg domain.StrategyConfig) []domain.HighPotentialRow {
	candidates := topByQuoteVolume(tickers, highPotentialCandidates)
	symbols := make([]string, len(candidates))
	byName := make(map[string]domain.Ticker24h, len(candidates))
	for i, t := range candidates {
		symbols[i] = t.Symbol
		byName[t.Symbol] = t
	}

	candlesBySymbol := uc.fetchCandlesFor(ctx, symbols, "4h", 100)

	rows := make([]domain.HighPotentialRow, 0, len(candidates))
	for symbol, candles := range candlesBySymbol {
		n := len(candles)
		if n < 2*adxPeriod+1 {
			continue
		}

		closes := make([]float64, n)
		highs := make([]float64, n)
		lows := make([]float64, n)
		volumes := make([]float64, n)
		for i, c := range candles {
			closes[i] = c.Close
			highs[i] = c.High
			lows[i] = c.Low
			volumes[i] = c.Volume
		}

		price := closes[n-1]
		if price <= 0 {
			continue
		}

		adxVals := indicators.ADX(highs, lows, closes, adxPeriod)
		atrVals := indicators.ATR(highs, lows, closes, atrPeriod)
		volAvg := indicators.SMA(volumes, volumeAvgPeriod)
		vwap := indicators.VWAP(highs, lows, closes, volumes)
		if len(adxVals) == 0 || len(atrVals) == 0 || len(volAvg) == 0 {
			continue
		}

		adx := adxVals[n-1]
		atrPct := atrVals[n-1] / price * 100
		volRatio := 0.0
		if volAvg[n-1] > 0 {
			volRatio = volumes[n-1] / volAvg[n-1]
		}

		score := highPotentialScore(adx, atrPct, volRatio, price > vwap[n-1])
		if score < highPotentialMinScore {
			continue
		}

		t := byName[symbol]
		rows = append(rows, domain.HighPotentialRow{
			Symbol:        symbol,
			Price:         t.LastPrice,
			ChangePercent: t.PriceChangePercent,
			ADX:           adx,
			ATRPercent:    atrPct,
			VolumeRatio:   volRatio,
			Score:         score,
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Score > rows[j].Score })
	return clamp(rows, cfg.Limit)
}

// highPotentialScore buckets the components into a 0..100 blend:
// trend strength 0-30, volatility 0-30, volume 0-30, VWAP bonus 10.
func highPotentialScore(adx, atrPct, volRatio float64, aboveVWAP bool) float64 {
	score := math.Min(adx, 50) / 50 * 30

	switch {
	case atrPct >= 4:
		score += 30
	case atrPct >= 3:
		score += 25
	case atrPct >= 2:
		score += 20
	case atrPct >= 1:
		score += 10
	}

	switch {
	case volRatio >= 3:
		score += 30
	case volRatio >= 2:
		score += 25
	case volRatio >= 1.5:
		score += 20
	case volRatio >= 1.2:
		score += 10
	}

	if aboveVWAP {
		score += 10
	}
	return math.Min(score, 100)
}

func topByQuoteVolume(tickers []domain.Ticker24h, n int) []domain.Ticker24h {
	sorted := make([]domain.Ticker24h, len(tickers))
	copy(sorted, tickers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].QuoteVolume > sorted[j].QuoteVolume })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func clamp[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}
