package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanner-backend/internal/domain"
)

func makeCandles(n int, start, step, volume float64) []domain.Candle {
	candles := make([]domain.Candle, n)
	for i := range candles {
		close := start + float64(i)*step
		candles[i] = domain.Candle{
			OpenTime: int64(i) * 60_000,
			Open:     close - step,
			High:     close + 0.5,
			Low:      close - 0.5,
			Close:    close,
			Volume:   volume,
		}
	}
	return candles
}

func flatCandles(n int, price, volume float64) []domain.Candle {
	return makeCandles(n, price, 0, volume)
}

func TestEvaluateIndicatorsBattery(t *testing.T) {
	results := EvaluateIndicators(makeCandles(250, 10, 1, 1000))

	for _, key := range []string{"rsi", "macd", "ema_crossover", "ema_200", "stochastic", "volume_ratio", "bollinger", "obv"} {
		assert.Contains(t, results, key)
	}
}

func TestRSIOverboughtOnLongClimb(t *testing.T) {
	// 91 ascending closes: no losses at all, RSI pins at 100, which
	// reads as overbought.
	results := EvaluateIndicators(makeCandles(91, 10, 1, 1000))

	rsi := results["rsi"]
	require.NotNil(t, rsi.Value)
	assert.InDelta(t, 100.0, *rsi.Value, 1e-9)
	assert.Equal(t, domain.SignalBearish, rsi.Signal)
	assert.Equal(t, -2, rsi.Score)
	assert.Equal(t, 2, rsi.Tier)
}

func TestStochasticNeutralOnFlatCandles(t *testing.T) {
	results := EvaluateIndicators(flatCandles(20, 42, 1000))

	stoch := results["stochastic"]
	require.NotNil(t, stoch.Value)
	// Close sits dead center of every constant high-low window.
	assert.InDelta(t, 50.0, *stoch.Value, 1e-9)
	assert.Equal(t, domain.SignalNeutral, stoch.Signal)
	assert.Zero(t, stoch.Score)
}

func TestShortHistoryDegradesToNeutral(t *testing.T) {
	// 10 candles are below every indicator's warm-up except OBV's base
	// case; nothing may panic and nothing may score.
	results := EvaluateIndicators(makeCandles(10, 10, 1, 1000))

	for key, r := range results {
		assert.Nil(t, r.Value, "indicator %s should have no value", key)
		assert.Equal(t, domain.SignalNeutral, r.Signal, "indicator %s", key)
		assert.Zero(t, r.Score, "indicator %s", key)
		assert.NotZero(t, r.Tier, "indicator %s keeps its tier", key)
	}
}

func TestEMA200NeutralBelowItsPeriod(t *testing.T) {
	// Enough candles for the rest of the battery, not for EMA200.
	results := EvaluateIndicators(makeCandles(100, 10, 1, 1000))

	ema := results["ema_200"]
	assert.Nil(t, ema.Value)
	assert.Equal(t, domain.SignalNeutral, ema.Signal)
	assert.Zero(t, ema.Score)

	macd := results["macd"]
	assert.NotNil(t, macd.Value)
	assert.Equal(t, domain.SignalBullish, macd.Signal)
}

func TestVolumeSpikeConfirmsMove(t *testing.T) {
	candles := makeCandles(60, 10, 1, 1000)
	candles[len(candles)-1].Volume = 2000 // 2x the trailing average

	results := EvaluateIndicators(candles)

	vol := results["volume_ratio"]
	require.NotNil(t, vol.Value)
	assert.Equal(t, domain.SignalBullish, vol.Signal)
	assert.Equal(t, 2, vol.Score)
}

func TestWeakVolumeIsBearish(t *testing.T) {
	candles := makeCandles(60, 10, 1, 1000)
	candles[len(candles)-1].Volume = 100 // well under half the average

	results := EvaluateIndicators(candles)
	assert.Equal(t, domain.SignalBearish, results["volume_ratio"].Signal)
}

func TestScoreSignConvention(t *testing.T) {
	results := EvaluateIndicators(makeCandles(250, 10, 1, 1000))

	for key, r := range results {
		switch r.Signal {
		case domain.SignalBullish:
			assert.Equal(t, r.Tier, r.Score, "indicator %s", key)
		case domain.SignalBearish:
			assert.Equal(t, -r.Tier, r.Score, "indicator %s", key)
		default:
			assert.Zero(t, r.Score, "indicator %s", key)
		}
	}
}
