package indicators

import "math"

type BollingerBands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger computes the Bollinger Bands: an SMA middle band with upper
// and lower bands multiplier standard deviations away. Returns an empty
// result when the input is shorter than the period.
func Bollinger(closes []float64, period int, multiplier float64) BollingerBands {
	n := len(closes)
	if period <= 1 || n < period {
		return BollingerBands{}
	}

	upper := make([]float64, n)
	middle := make([]float64, n)
	lower := make([]float64, n)

	for i := period - 1; i < n; i++ {
		sum := 0.0
		for j := 0; j < period; j++ {
			sum += closes[i-j]
		}
		ma := sum / float64(period)
		middle[i] = ma

		sumSqDiff := 0.0
		for j := 0; j < period; j++ {
			diff := closes[i-j] - ma
			sumSqDiff += diff * diff
		}
		stdDev := math.Sqrt(sumSqDiff / float64(period))

		upper[i] = ma + multiplier*stdDev
		lower[i] = ma - multiplier*stdDev
	}

	return BollingerBands{Upper: upper, Middle: middle, Lower: lower}
}
