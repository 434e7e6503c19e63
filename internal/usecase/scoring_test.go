package usecase

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"scanner-backend/internal/domain"
)

func TestRecommendBands(t *testing.T) {
	cases := []struct {
		total int
		want  domain.Recommendation
	}{
		{15, domain.StrongBuy},
		{10, domain.StrongBuy},
		{9, domain.Buy},
		{4, domain.Buy},
		{3, domain.Hold},
		{0, domain.Hold},
		{-3, domain.Hold},
		{-4, domain.Sell},
		{-9, domain.Sell},
		{-10, domain.StrongSell},
		{-15, domain.StrongSell},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Recommend(tc.total), "total %d", tc.total)
	}
}

func TestRecommendIsMonotonicAndTotal(t *testing.T) {
	prev := Recommend(-20)
	for total := -19; total <= 20; total++ {
		cur := Recommend(total)
		assert.NotEmpty(t, cur)
		assert.GreaterOrEqual(t, cur.Rank(), prev.Rank(), "total %d", total)
		prev = cur
	}
}

func TestTotalScoreIsSumOfIndicatorScores(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		results := make(map[string]domain.IndicatorResult)
		want := 0
		for i := 0; i < 8; i++ {
			score := rng.Intn(11) - 5
			want += score
			results[string(rune('a'+i))] = domain.IndicatorResult{Score: score}
		}
		assert.Equal(t, want, TotalScore(results))
	}
}
