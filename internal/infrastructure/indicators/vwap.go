package indicators

// VWAP computes the cumulative volume-weighted average price over the
// whole series using the typical price (H+L+C)/3 per bar.
func VWAP(highs, lows, closes, volumes []float64) []float64 {
	n := len(closes)
	vwap := make([]float64, n)

	cumTPV := 0.0
	cumVol := 0.0
	for i := 0; i < n; i++ {
		typical := (highs[i] + lows[i] + closes[i]) / 3.0
		cumTPV += typical * volumes[i]
		cumVol += volumes[i]
		if cumVol > 0 {
			vwap[i] = cumTPV / cumVol
		}
	}
	return vwap
}
