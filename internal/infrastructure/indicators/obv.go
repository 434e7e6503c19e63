package indicators

// OBV computes On-Balance Volume: a running total that adds the bar's
// volume on up-closes and subtracts it on down-closes.
func OBV(closes, volumes []float64) []float64 {
	n := len(closes)
	obv := make([]float64, n)
	for i := 1; i < n; i++ {
		switch {
		case closes[i] > closes[i-1]:
			obv[i] = obv[i-1] + volumes[i]
		case closes[i] < closes[i-1]:
			obv[i] = obv[i-1] - volumes[i]
		default:
			obv[i] = obv[i-1]
		}
	}
	return obv
}

// Slope fits a least-squares line through the values and returns its
// gradient per step. Zero for fewer than two points.
func Slope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	sumX, sumY, sumXY, sumX2 := 0.0, 0.0, 0.0, 0.0
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	den := float64(n)*sumX2 - sumX*sumX
	if den == 0 {
		return 0
	}
	return (float64(n)*sumXY - sumX*sumY) / den
}
