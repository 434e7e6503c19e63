package usecase

import (
	"fmt"

	"scanner-backend/internal/domain"
	"scanner-backend/internal/infrastructure/indicators"
)

// Fixed indicator periods. The battery is closed: with these tiers the
// total score spans -15..+15.
const (
	rsiPeriod = 14

	emaShortPeriod = 20
	emaLongPeriod  = 50
	emaTrendPeriod = 200

	macdFast   = 12
	macdSlow   = 26
	macdSignal = 9

	stochPeriod  = 14
	stochSmoothD = 3

	bbPeriod     = 20
	bbMultiplier = 2.0

	volumeAvgPeriod = 20
	obvLookback     = 10
)

// MinCandles is the hard floor the orchestrator requires before scoring
// a symbol at all. It is MACD's requirement; EMA200 degrades gracefully
// below its own period instead of blocking the symbol.
const MinCandles = macdSlow + macdSignal

// Indicator tiers. Score contribution is +tier when bullish, -tier when
// bearish, zero when neutral.
const (
	tierTrend      = 1 // macd, ema crossover, price vs ema200
	tierOscillator = 2 // rsi, stochastic, volume ratio
	tierSecondary  = 3 // bollinger, obv
)

// EvaluateIndicators runs the full battery over one candle series and
// returns one IndicatorResult per indicator key. Indicators without
// enough history come back with a nil value, neutral signal and zero
// score; the symbol itself is never aborted here.
func EvaluateIndicators(candles []domain.Candle) map[string]domain.IndicatorResult {
	n := len(candles)
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

	return map[string]domain.IndicatorResult{
		"rsi":           rsiResult(closes),
		"macd":          macdResult(closes),
		"ema_crossover": emaCrossoverResult(closes),
		"ema_200":       emaTrendResult(closes),
		"stochastic":    stochasticResult(highs, lows, closes),
		"volume_ratio":  volumeRatioResult(volumes),
		"bollinger":     bollingerResult(closes),
		"obv":           obvResult(closes, volumes),
	}
}

func rsiResult(closes []float64) domain.IndicatorResult {
	vals := indicators.RSI(closes, rsiPeriod)
	if len(vals) == 0 {
		return insufficient(tierOscillator)
	}
	v := vals[len(vals)-1]
	switch {
	case v < 30:
		return scored(v, domain.SignalBullish, tierOscillator,
			fmt.Sprintf("RSI is %.1f, oversold bounce zone", v))
	case v > 70:
		return scored(v, domain.SignalBearish, tierOscillator,
			fmt.Sprintf("RSI is %.1f, overbought", v))
	}
	return scored(v, domain.SignalNeutral, tierOscillator,
		fmt.Sprintf("RSI is %.1f, neutral range", v))
}

func macdResult(closes []float64) domain.IndicatorResult {
	m := indicators.MACD(closes, macdFast, macdSlow, macdSignal)
	if len(m.Line) == 0 {
		return insufficient(tierTrend)
	}
	last := len(m.Line) - 1
	hist := m.Histogram[last]
	if m.Line[last] > m.Signal[last] {
		return scored(hist, domain.SignalBullish, tierTrend,
			fmt.Sprintf("MACD line above signal, histogram %.4f", hist))
	}
	return scored(hist, domain.SignalBearish, tierTrend,
		fmt.Sprintf("MACD line below signal, histogram %.4f", hist))
}

func emaCrossoverResult(closes []float64) domain.IndicatorResult {
	short := indicators.EMA(closes, emaShortPeriod)
	long := indicators.EMA(closes, emaLongPeriod)
	if len(long) == 0 {
		return insufficient(tierTrend)
	}
	last := len(closes) - 1
	spread := short[last] - long[last]
	if spread > 0 {
		return scored(spread, domain.SignalBullish, tierTrend,
			fmt.Sprintf("EMA%d above EMA%d by %.4f", emaShortPeriod, emaLongPeriod, spread))
	}
	return scored(spread, domain.SignalBearish, tierTrend,
		fmt.Sprintf("EMA%d below EMA%d by %.4f", emaShortPeriod, emaLongPeriod, -spread))
}

func emaTrendResult(closes []float64) domain.IndicatorResult {
	ema := indicators.EMA(closes, emaTrendPeriod)
	if len(ema) == 0 {
		return insufficient(tierTrend)
	}
	last := len(closes) - 1
	v := ema[last]
	if closes[last] > v {
		return scored(v, domain.SignalBullish, tierTrend,
			fmt.Sprintf("price above EMA%d (%.4f), long-term uptrend", emaTrendPeriod, v))
	}
	return scored(v, domain.SignalBearish, tierTrend,
		fmt.Sprintf("price below EMA%d (%.4f), long-term downtrend", emaTrendPeriod, v))
}

func stochasticResult(highs, lows, closes []float64) domain.IndicatorResult {
	k, d := indicators.Stochastic(highs, lows, closes, stochPeriod, stochSmoothD)
	if len(d) == 0 {
		return insufficient(tierOscillator)
	}
	last := len(closes) - 1
	kv, dv := k[last], d[last]
	switch {
	case kv > 80 && dv > 80:
		return scored(kv, domain.SignalBearish, tierOscillator,
			fmt.Sprintf("stochastic %%K %.1f and %%D %.1f overbought", kv, dv))
	case kv < 20 && dv < 20:
		return scored(kv, domain.SignalBullish, tierOscillator,
			fmt.Sprintf("stochastic %%K %.1f and %%D %.1f oversold", kv, dv))
	}
	return scored(kv, domain.SignalNeutral, tierOscillator,
		fmt.Sprintf("stochastic %%K %.1f and %%D %.1f, no extreme", kv, dv))
}

func volumeRatioResult(volumes []float64) domain.IndicatorResult {
	avg := indicators.SMA(volumes, volumeAvgPeriod)
	if len(avg) == 0 {
		return insufficient(tierOscillator)
	}
	last := len(volumes) - 1
	base := avg[last]
	if base == 0 {
		return scored(0, domain.SignalNeutral, tierOscillator, "no baseline volume")
	}
	ratio := volumes[last] / base
	switch {
	case ratio > 1.5:
		return scored(ratio, domain.SignalBullish, tierOscillator,
			fmt.Sprintf("volume %.1fx its %d-bar average, move confirmed", ratio, volumeAvgPeriod))
	case ratio < 0.5:
		return scored(ratio, domain.SignalBearish, tierOscillator,
			fmt.Sprintf("volume %.1fx its %d-bar average, weak conviction", ratio, volumeAvgPeriod))
	}
	return scored(ratio, domain.SignalNeutral, tierOscillator,
		fmt.Sprintf("volume %.1fx its %d-bar average", ratio, volumeAvgPeriod))
}

func bollingerResult(closes []float64) domain.IndicatorResult {
	bb := indicators.Bollinger(closes, bbPeriod, bbMultiplier)
	if len(bb.Upper) == 0 {
		return insufficient(tierSecondary)
	}
	last := len(closes) - 1
	price := closes[last]
	switch {
	case price < bb.Lower[last]:
		return scored(price, domain.SignalBullish, tierSecondary,
			fmt.Sprintf("close %.4f below lower band %.4f", price, bb.Lower[last]))
	case price > bb.Upper[last]:
		return scored(price, domain.SignalBearish, tierSecondary,
			fmt.Sprintf("close %.4f above upper band %.4f", price, bb.Upper[last]))
	}
	return scored(price, domain.SignalNeutral, tierSecondary, "close inside the bands")
}

func obvResult(closes, volumes []float64) domain.IndicatorResult {
	if len(closes) < obvLookback+1 {
		return insufficient(tierSecondary)
	}
	obv := indicators.OBV(closes, volumes)
	slope := indicators.Slope(obv[len(obv)-obvLookback:])

	// Flat is relative to typical bar volume, otherwise low-volume pairs
	// would always read as trending.
	avgVol := 0.0
	for _, v := range volumes {
		avgVol += v
	}
	avgVol /= float64(len(volumes))
	flat := avgVol * 0.05

	switch {
	case slope > flat:
		return scored(slope, domain.SignalBullish, tierSecondary,
			"on-balance volume rising, accumulation")
	case slope < -flat:
		return scored(slope, domain.SignalBearish, tierSecondary,
			"on-balance volume falling, distribution")
	}
	return scored(slope, domain.SignalNeutral, tierSecondary, "on-balance volume flat")
}

func insufficient(tier int) domain.IndicatorResult {
	return domain.IndicatorResult{
		Signal:      domain.SignalNeutral,
		Tier:        tier,
		Description: "not enough history",
	}
}

func scored(value float64, signal domain.Signal, tier int, desc string) domain.IndicatorResult {
	v := value
	score := 0
	switch signal {
	case domain.SignalBullish:
		score = tier
	case domain.SignalBearish:
		score = -tier
	}
	return domain.IndicatorResult{
		Value:       &v,
		Signal:      signal,
		Score:       score,
		Tier:        tier,
		Description: desc,
	}
}
