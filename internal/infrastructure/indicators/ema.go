package indicators

// EMA computes the exponential moving average, seeded with the SMA of
// the first period values. Warm-up entries before index period-1 are
// zero. Returns nil when the input is shorter than the period.
func EMA(values []float64, period int) []float64 {
	if period <= 0 || len(values) < period {
		return nil
	}

	ema := make([]float64, len(values))
	k := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema[period-1] = sum / float64(period)

	for i := period; i < len(values); i++ {
		ema[i] = values[i]*k + ema[i-1]*(1-k)
	}
	return ema
}
