package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanner-backend/internal/domain"
)

func strategyTickers() []domain.Ticker24h {
	return []domain.Ticker24h{
		{Symbol: "BTCUSDT", LastPrice: 50_000, PriceChangePercent: 5, QuoteVolume: 40_000_000, HighPrice: 52_000, LowPrice: 48_000},
		{Symbol: "ETHUSDT", LastPrice: 3_000, PriceChangePercent: 1, QuoteVolume: 10_000_000, HighPrice: 3_100, LowPrice: 2_900},
		{Symbol: "ADAUSDT", LastPrice: 0.50, PriceChangePercent: -8, QuoteVolume: 5_000_000, HighPrice: 0.60, LowPrice: 0.48},
		{Symbol: "SOLUSDT", LastPrice: 148, PriceChangePercent: -4, QuoteVolume: 8_000_000, HighPrice: 160, LowPrice: 145},
		{Symbol: "DOGEUSDT", LastPrice: 0.30, PriceChangePercent: 12, QuoteVolume: 500_000, HighPrice: 0.32, LowPrice: 0.25}, // under volume floor
		{Symbol: "BTCUPUSDT", LastPrice: 10, PriceChangePercent: 15, QuoteVolume: 3_000_000, HighPrice: 11, LowPrice: 8},     // leveraged
		{Symbol: "ETHBTC", LastPrice: 0.06, PriceChangePercent: 6, QuoteVolume: 2_000_000, HighPrice: 0.07, LowPrice: 0.055}, // wrong quote
	}
}

func newStrategyUsecase(t *testing.T) *ScannerUsecase {
	t.Helper()
	return newTestUsecase(t, &fakeSource{tickers: strategyTickers()})
}

func TestRunStrategyRejectsUnknownName(t *testing.T) {
	uc := newStrategyUsecase(t)

	_, err := uc.RunStrategy(context.Background(), "martingale", DefaultStrategyConfig())
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}

func TestMomentumStrategy(t *testing.T) {
	uc := newStrategyUsecase(t)

	result, err := uc.RunStrategy(context.Background(), domain.StrategyMomentum, DefaultStrategyConfig())
	require.NoError(t, err)
	require.NotNil(t, result)

	// |change| must exceed 3% and pass the volume floor; the leveraged
	// token and the non-USDT pair never enter the universe.
	symbols := make([]string, 0, len(result.Momentum))
	for _, row := range result.Momentum {
		symbols = append(symbols, row.Symbol)
	}
	assert.Equal(t, []string{"ADAUSDT", "BTCUSDT", "SOLUSDT"}, symbols)

	assert.Equal(t, domain.SignalBullish, result.Momentum[1].Direction)
	assert.Equal(t, domain.SignalBearish, result.Momentum[0].Direction)
	// ADA at -8% is the strongest mover, so it sorts first.
	assert.InDelta(t, 0.8, result.Momentum[0].Strength, 1e-9)
}

func TestMomentumRespectsCustomThreshold(t *testing.T) {
	uc := newStrategyUsecase(t)

	cfg := DefaultStrategyConfig()
	cfg.MinChangePercent = 6
	result, err := uc.RunStrategy(context.Background(), domain.StrategyMomentum, cfg)
	require.NoError(t, err)
	require.Len(t, result.Momentum, 1)
	assert.Equal(t, "ADAUSDT", result.Momentum[0].Symbol)
}

func TestSupportResistanceBounce(t *testing.T) {
	uc := newStrategyUsecase(t)

	result, err := uc.RunStrategy(context.Background(), domain.StrategySupportResistance, DefaultStrategyConfig())
	require.NoError(t, err)

	// ADA sits at (0.50-0.48)/(0.60-0.48) ≈ 0.167 of its range and SOL
	// at 0.2; only ADA is under the bounce cutoff.
	require.Len(t, result.SupportResistance, 1)
	row := result.SupportResistance[0]
	assert.Equal(t, "ADAUSDT", row.Symbol)
	assert.Equal(t, domain.RangeBounce, row.Mode)
	assert.Less(t, row.PositionInRange, 0.2)
}

func TestSupportResistanceBreakout(t *testing.T) {
	uc := newStrategyUsecase(t)

	cfg := DefaultStrategyConfig()
	cfg.Mode = string(domain.RangeBreakout)
	result, err := uc.RunStrategy(context.Background(), domain.StrategySupportResistance, cfg)
	require.NoError(t, err)

	// Nothing in the fixture trades in the top 15% of its range.
	assert.Empty(t, result.SupportResistance)
}

func TestSupportResistanceBreakoutDetectsRangeTop(t *testing.T) {
	tickers := strategyTickers()
	tickers = append(tickers, domain.Ticker24h{
		Symbol: "LINKUSDT", LastPrice: 19.8, PriceChangePercent: 7,
		QuoteVolume: 6_000_000, HighPrice: 20, LowPrice: 18,
	})
	uc := newTestUsecase(t, &fakeSource{tickers: tickers})

	cfg := DefaultStrategyConfig()
	cfg.Mode = string(domain.RangeBreakout)
	result, err := uc.RunStrategy(context.Background(), domain.StrategySupportResistance, cfg)
	require.NoError(t, err)

	require.Len(t, result.SupportResistance, 1)
	row := result.SupportResistance[0]
	assert.Equal(t, "LINKUSDT", row.Symbol)
	assert.Equal(t, domain.RangeBreakout, row.Mode)
	assert.InDelta(t, 0.9, row.PositionInRange, 1e-9)
}

func TestTrendDipStrategy(t *testing.T) {
	uc := newStrategyUsecase(t)

	result, err := uc.RunStrategy(context.Background(), domain.StrategyTrendDip, DefaultStrategyConfig())
	require.NoError(t, err)

	// Dips between -15% and -2%: ADA (-8) and SOL (-4) qualify, sorted
	// by buy score so the deeper dip leads.
	require.Len(t, result.TrendDip, 2)
	assert.Equal(t, "ADAUSDT", result.TrendDip[0].Symbol)
	assert.Equal(t, "SOLUSDT", result.TrendDip[1].Symbol)
	assert.Greater(t, result.TrendDip[0].DipFromHigh, result.TrendDip[1].DipFromHigh)
}

func TestTopPicksStrategy(t *testing.T) {
	uc := newStrategyUsecase(t)

	result, err := uc.RunStrategy(context.Background(), domain.StrategyTopPicks, DefaultStrategyConfig())
	require.NoError(t, err)
	require.NotEmpty(t, result.TopPicks)

	for i := 1; i < len(result.TopPicks); i++ {
		assert.GreaterOrEqual(t, result.TopPicks[i-1].Score, result.TopPicks[i].Score)
	}

	for _, row := range result.TopPicks {
		switch row.Symbol {
		case "BTCUSDT":
			assert.Equal(t, domain.Buy, row.Recommendation)
			assert.InDelta(t, 1.0, row.VolumeScore, 1e-9) // capped
		case "ETHUSDT":
			assert.Equal(t, domain.Hold, row.Recommendation)
		case "ADAUSDT", "SOLUSDT":
			assert.Equal(t, domain.Sell, row.Recommendation)
		}
	}
}

func TestStrategyHonorsLimit(t *testing.T) {
	uc := newStrategyUsecase(t)

	cfg := DefaultStrategyConfig()
	cfg.Limit = 1
	result, err := uc.RunStrategy(context.Background(), domain.StrategyMomentum, cfg)
	require.NoError(t, err)
	assert.Len(t, result.Momentum, 1)
}

func TestVolumeSpikeStrategy(t *testing.T) {
	// Every symbol's daily baseline is 20 complete bars of 100k volume at
	// close 10, so 1M notional per day. The ratio is then just the 24h
	// quote volume in millions.
	baseline := flatCandles(21, 10, 100_000)
	source := &fakeSource{
		tickers: []domain.Ticker24h{
			{Symbol: "SPKAUSDT", LastPrice: 10, QuoteVolume: 5_000_000},
			{Symbol: "SPKBUSDT", LastPrice: 10, QuoteVolume: 3_500_000},
			{Symbol: "SPKCUSDT", LastPrice: 10, QuoteVolume: 2_500_000},
			{Symbol: "SPKDUSDT", LastPrice: 10, QuoteVolume: 1_600_000},
			{Symbol: "SPKEUSDT", LastPrice: 10, QuoteVolume: 1_400_000}, // under the keep threshold
			{Symbol: "SHRTUSDT", LastPrice: 10, QuoteVolume: 3_000_000}, // not enough daily history
		},
		candles: map[string][]domain.Candle{
			"SPKAUSDT": baseline,
			"SPKBUSDT": baseline,
			"SPKCUSDT": baseline,
			"SPKDUSDT": baseline,
			"SPKEUSDT": baseline,
			"SHRTUSDT": flatCandles(5, 10, 100_000),
		},
	}
	uc := newTestUsecase(t, source)

	result, err := uc.RunStrategy(context.Background(), domain.StrategyVolumeSpike, DefaultStrategyConfig())
	require.NoError(t, err)
	require.Len(t, result.VolumeSpike, 4)

	want := []struct {
		symbol string
		ratio  float64
		level  string
	}{
		{"SPKAUSDT", 5.0, "extreme"},
		{"SPKBUSDT", 3.5, "very_high"},
		{"SPKCUSDT", 2.5, "high"},
		{"SPKDUSDT", 1.6, "notable"},
	}
	for i, w := range want {
		row := result.VolumeSpike[i]
		assert.Equal(t, w.symbol, row.Symbol)
		assert.InDelta(t, w.ratio, row.VolumeRatio, 1e-9)
		assert.Equal(t, w.level, row.Level)
	}
}

func TestHighPotentialStrategy(t *testing.T) {
	// Two clean uptrends and one dead-flat pair. The trends pin ADX at
	// 100; the volume pop on the first adds the confirmation points that
	// separate their scores.
	trendA := makeCandles(100, 10, 1, 1000)
	trendA[len(trendA)-1].Volume = 3000
	trendB := makeCandles(100, 10, 1, 1000)

	source := &fakeSource{
		tickers: []domain.Ticker24h{
			{Symbol: "HPAUSDT", LastPrice: 109, PriceChangePercent: 4, QuoteVolume: 9_000_000},
			{Symbol: "HPBUSDT", LastPrice: 109, PriceChangePercent: 3, QuoteVolume: 8_000_000},
			{Symbol: "FLATUSDT", LastPrice: 50, PriceChangePercent: 0, QuoteVolume: 7_000_000},
		},
		candles: map[string][]domain.Candle{
			"HPAUSDT":  trendA,
			"HPBUSDT":  trendB,
			"FLATUSDT": flatCandles(100, 50, 1000),
		},
	}
	uc := newTestUsecase(t, source)

	result, err := uc.RunStrategy(context.Background(), domain.StrategyHighPotential, DefaultStrategyConfig())
	require.NoError(t, err)
	require.Len(t, result.HighPotential, 2)

	first := result.HighPotential[0]
	second := result.HighPotential[1]
	assert.Equal(t, "HPAUSDT", first.Symbol)
	assert.Equal(t, "HPBUSDT", second.Symbol)

	// Trend 30 + volatility 10 + volume 25 + above VWAP 10.
	assert.InDelta(t, 75.0, first.Score, 1e-9)
	// Same trend without the volume pop lands exactly on the cutoff.
	assert.InDelta(t, 50.0, second.Score, 1e-9)

	for _, row := range result.HighPotential {
		assert.InDelta(t, 100.0, row.ADX, 1e-9)
		assert.GreaterOrEqual(t, row.Score, 50.0)
	}
}

func TestStrategyIncludesLeveragedWhenAsked(t *testing.T) {
	uc := newStrategyUsecase(t)

	cfg := DefaultStrategyConfig()
	cfg.ExcludeLeveraged = false
	result, err := uc.RunStrategy(context.Background(), domain.StrategyMomentum, cfg)
	require.NoError(t, err)

	found := false
	for _, row := range result.Momentum {
		if row.Symbol == "BTCUPUSDT" {
			found = true
		}
	}
	assert.True(t, found)
}
