package domain

// StrategyName identifies one of the fixed strategy views.
type StrategyName string

const (
	StrategyMomentum          StrategyName = "momentum"
	StrategySupportResistance StrategyName = "support_resistance"
	StrategyVolumeSpike       StrategyName = "volume_spike"
	StrategyTrendDip          StrategyName = "trend_dip"
	StrategyTopPicks          StrategyName = "top_picks"
	StrategyHighPotential     StrategyName = "high_potential"
)

// KnownStrategy reports whether name maps to an implemented strategy.
func KnownStrategy(name StrategyName) bool {
	switch name {
	case StrategyMomentum, StrategySupportResistance, StrategyVolumeSpike,
		StrategyTrendDip, StrategyTopPicks, StrategyHighPotential:
		return true
	}
	return false
}

// MomentumRow is one momentum-leader entry.
type MomentumRow struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	QuoteVolume   float64 `json:"quoteVolume"`
	Direction     Signal  `json:"direction"`
	Strength      float64 `json:"strength"` // 0..1
}

// RangeMode selects which side of the 24h range the filter keeps.
type RangeMode string

const (
	RangeBounce   RangeMode = "bounce"
	RangeBreakout RangeMode = "breakout"
)

// SupportResistanceRow positions price inside its 24h high-low range.
type SupportResistanceRow struct {
	Symbol          string    `json:"symbol"`
	Price           float64   `json:"price"`
	HighPrice       float64   `json:"highPrice"`
	LowPrice        float64   `json:"lowPrice"`
	PositionInRange float64   `json:"positionInRange"` // 0 at the low, 1 at the high
	Mode            RangeMode `json:"mode"`
}

// VolumeSpikeRow flags unusual turnover against a trailing baseline.
type VolumeSpikeRow struct {
	Symbol      string  `json:"symbol"`
	Price       float64 `json:"price"`
	QuoteVolume float64 `json:"quoteVolume"`
	VolumeRatio float64 `json:"volumeRatio"`
	Level       string  `json:"level"` // notable, high, very_high, extreme
}

// TrendDipRow is a pullback candidate inside a broader uptrend.
type TrendDipRow struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	DipFromHigh   float64 `json:"dipFromHigh"` // percent below 24h high
	Depth         string  `json:"depth"`       // shallow, moderate, deep
	BuyScore      float64 `json:"buyScore"`    // 0..100
}

// TopPickRow blends volume and momentum into a single 0..1 score.
type TopPickRow struct {
	Symbol         string         `json:"symbol"`
	Price          float64        `json:"price"`
	ChangePercent  float64        `json:"changePercent"`
	QuoteVolume    float64        `json:"quoteVolume"`
	VolumeScore    float64        `json:"volumeScore"`
	MomentumScore  float64        `json:"momentumScore"`
	Score          float64        `json:"score"`
	Recommendation Recommendation `json:"recommendation"`
}

// HighPotentialRow blends trend strength, volatility and volume
// confirmation from recent candles into a 0..100 shortlist score.
type HighPotentialRow struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"changePercent"`
	ADX           float64 `json:"adx"`
	ATRPercent    float64 `json:"atrPercent"`
	VolumeRatio   float64 `json:"volumeRatio"`
	Score         float64 `json:"score"`
}

// StrategyResult wraps the rows of whichever strategy ran. Exactly one
// slice is populated, matching Name.
type StrategyResult struct {
	Name              StrategyName           `json:"name"`
	Momentum          []MomentumRow          `json:"momentum,omitempty"`
	SupportResistance []SupportResistanceRow `json:"supportResistance,omitempty"`
	VolumeSpike       []VolumeSpikeRow       `json:"volumeSpike,omitempty"`
	TrendDip          []TrendDipRow          `json:"trendDip,omitempty"`
	TopPicks          []TopPickRow           `json:"topPicks,omitempty"`
	HighPotential     []HighPotentialRow     `json:"highPotential,omitempty"`
}
