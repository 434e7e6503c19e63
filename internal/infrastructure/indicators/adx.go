package indicators

import "math"

// ADX computes Wilder's Average Directional Index, a 0..100 measure of
// trend strength regardless of direction. Values appear from index
// 2*period onward; earlier entries are zero. Returns nil when fewer
// than 2*period+1 bars exist.
func ADX(highs, lows, closes []float64, period int) []float64 {
	n := len(closes)
	if period <= 0 || n < 2*period+1 {
		return nil
	}

	adx := make([]float64, n)

	// Wilder-smoothed TR, +DM and -DM, seeded with simple sums over the
	// first period movements.
	tr, pdm, mdm := 0.0, 0.0, 0.0
	for i := 1; i <= period; i++ {
		t, p, m := directionalMovement(highs, lows, closes, i)
		tr += t
		pdm += p
		mdm += m
	}

	dxSum := 0.0
	dxCount := 0
	prevADX := 0.0

	for i := period + 1; i < n; i++ {
		t, p, m := directionalMovement(highs, lows, closes, i)
		tr = tr - tr/float64(period) + t
		pdm = pdm - pdm/float64(period) + p
		mdm = mdm - mdm/float64(period) + m

		if tr == 0 {
			continue
		}
		pdi := 100 * pdm / tr
		mdi := 100 * mdm / tr
		den := pdi + mdi
		if den == 0 {
			continue
		}
		dx := 100 * math.Abs(pdi-mdi) / den

		// First ADX point is the average of the first period DX values,
		// then Wilder smoothing takes over.
		if dxCount < period {
			dxSum += dx
			dxCount++
			if dxCount == period {
				prevADX = dxSum / float64(period)
				adx[i] = prevADX
			}
			continue
		}
		prevADX = (prevADX*float64(period-1) + dx) / float64(period)
		adx[i] = prevADX
	}
	return adx
}

func directionalMovement(highs, lows, closes []float64, i int) (tr, pdm, mdm float64) {
	up := highs[i] - highs[i-1]
	down := lows[i-1] - lows[i]
	if up > down && up > 0 {
		pdm = up
	}
	if down > up && down > 0 {
		mdm = down
	}

	hl := highs[i] - lows[i]
	hc := math.Abs(highs[i] - closes[i-1])
	lc := math.Abs(lows[i] - closes[i-1])
	tr = math.Max(hl, math.Max(hc, lc))
	return tr, pdm, mdm
}
