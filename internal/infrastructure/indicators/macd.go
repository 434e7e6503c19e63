package indicators

// MACDResult holds the MACD line, its signal line and the histogram,
// all aligned to the input series. The histogram is valid from index
// slow+signal-2 onward.
type MACDResult struct {
	Line      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes the Moving Average Convergence Divergence. The line is
// EMA(fast) - EMA(slow); the signal line is an EMA of the line over its
// valid tail. Returns an empty result when len(values) < slow+signal.
func MACD(values []float64, fast, slow, signal int) MACDResult {
	if len(values) < slow+signal {
		return MACDResult{}
	}

	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)

	line := make([]float64, len(values))
	for i := slow - 1; i < len(values); i++ {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	// Signal EMA runs over the valid part of the line only, then is
	// copied back into an input-aligned slice.
	tail := EMA(line[slow-1:], signal)
	sig := make([]float64, len(values))
	copy(sig[slow-1:], tail)

	hist := make([]float64, len(values))
	for i := slow + signal - 2; i < len(values); i++ {
		hist[i] = line[i] - sig[i]
	}

	return MACDResult{Line: line, Signal: sig, Histogram: hist}
}
