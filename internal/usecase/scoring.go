package usecase

import "scanner-backend/internal/domain"

// TotalScore sums the per-indicator scores. With the fixed battery the
// reachable range is -15..+15.
func TotalScore(results map[string]domain.IndicatorResult) int {
	total := 0
	for _, r := range results {
		total += r.Score
	}
	return total
}

// Recommend maps a total score onto the five-point scale. The mapping
// is total (every integer lands in exactly one band) and monotonic.
func Recommend(total int) domain.Recommendation {
	switch {
	case total >= 10:
		return domain.StrongBuy
	case total >= 4:
		return domain.Buy
	case total >= -3:
		return domain.Hold
	case total >= -9:
		return domain.Sell
	default:
		return domain.StrongSell
	}
}
