package indicators

// Stochastic computes the %K oscillator and its SMA-smoothed %D. %K is
// the close's position inside the rolling high-low window, scaled to
// 0..100, with 50 as the fallback when the window range is zero. Both
// slices align to the input; %K is valid from index period-1, %D from
// index period+smoothD-2. Returns nil slices when the input is shorter
// than period.
func Stochastic(highs, lows, closes []float64, period, smoothD int) (k, d []float64) {
	n := len(closes)
	if period <= 0 || n < period || len(highs) < n || len(lows) < n {
		return nil, nil
	}

	k = make([]float64, n)
	for i := period - 1; i < n; i++ {
		hi := highs[i]
		lo := lows[i]
		for j := i - period + 1; j < i; j++ {
			if highs[j] > hi {
				hi = highs[j]
			}
			if lows[j] < lo {
				lo = lows[j]
			}
		}
		if hi == lo {
			k[i] = 50
		} else {
			k[i] = (closes[i] - lo) / (hi - lo) * 100
		}
	}

	if n-period+1 < smoothD {
		return k, nil
	}
	tail := SMA(k[period-1:], smoothD)
	d = make([]float64, n)
	copy(d[period-1:], tail)
	return k, d
}
