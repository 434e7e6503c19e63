package indicators

import "math"

// ATR computes the Average True Range with Wilder smoothing. The first
// value appears at index period-1. Returns nil when fewer than period+1
// bars exist.
func ATR(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	if period <= 0 || n < period+1 {
		return nil
	}

	trs := make([]float64, n)
	trs[0] = highs[0] - lows[0]
	for i := 1; i < n; i++ {
		hl := highs[i] - lows[i]
		hc := math.Abs(highs[i] - closes[i-1])
		lc := math.Abs(lows[i] - closes[i-1])
		trs[i] = math.Max(hl, math.Max(hc, lc))
	}

	atr := make([]float64, n)
	sum := 0.0
	for i := 0; i < period; i++ {
		sum += trs[i]
	}
	atr[period-1] = sum / float64(period)

	for i := period; i < n; i++ {
		atr[i] = (atr[i-1]*float64(period-1) + trs[i]) / float64(period)
	}
	return atr
}
