package indicators

// SMA computes the simple moving average with a sliding-window running
// sum. The returned slice matches the input length with the warm-up
// region (first period-1 entries) left at zero. Returns nil when the
// input is shorter than the period.
func SMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	sma := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			sma[i] = sum / float64(period)
		}
	}
	return sma
}
