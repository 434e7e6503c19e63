package domain

import (
	"strings"
	"time"
)

// Candle is a single OHLCV bar. Series are ordered ascending by OpenTime
// with no duplicate timestamps and are never mutated after fetch.
type Candle struct {
	OpenTime int64   `json:"openTime"` // ms since epoch
	Open     float64 `json:"open"`
	High     float64 `json:"high"`
	Low      float64 `json:"low"`
	Close    float64 `json:"close"`
	Volume   float64 `json:"volume"`
}

// Signal is the three-way direction an indicator resolves to.
type Signal string

const (
	SignalBullish Signal = "bullish"
	SignalBearish Signal = "bearish"
	SignalNeutral Signal = "neutral"
)

// Recommendation is the five-point discretization of the total score.
type Recommendation string

const (
	StrongBuy  Recommendation = "strong_buy"
	Buy        Recommendation = "buy"
	Hold       Recommendation = "hold"
	Sell       Recommendation = "sell"
	StrongSell Recommendation = "strong_sell"
)

// Rank orders recommendations from strong_sell (0) to strong_buy (4).
func (r Recommendation) Rank() int {
	switch r {
	case StrongSell:
		return 0
	case Sell:
		return 1
	case Hold:
		return 2
	case Buy:
		return 3
	case StrongBuy:
		return 4
	}
	return 2
}

// IndicatorResult is one indicator's contribution to a symbol's scan.
// Value is nil when the series was too short for the indicator; in that
// case Signal is neutral and Score is zero, but Tier is still recorded
// for display ordering.
type IndicatorResult struct {
	Value       *float64 `json:"value"`
	Signal      Signal   `json:"signal"`
	Score       int      `json:"score"`
	Tier        int      `json:"tier"`
	Description string   `json:"description"`
}

// ScanResult is the scored outcome for a single symbol. It is created
// fresh per scan and never mutated afterwards.
type ScanResult struct {
	Symbol         string                     `json:"symbol"`
	Price          float64                    `json:"price"`
	Indicators     map[string]IndicatorResult `json:"indicators"`
	TotalScore     int                        `json:"totalScore"`
	Recommendation Recommendation             `json:"recommendation"`
}

// ScanSnapshot is one full scan cycle. GeneratedAt is the only
// time-dependent field; the results themselves are a pure function of
// the candle input.
type ScanSnapshot struct {
	GeneratedAt time.Time    `json:"generatedAt"`
	Interval    string       `json:"interval"`
	Results     []ScanResult `json:"results"`
}

// SkipKind classifies why a symbol was dropped from a scan. It is the
// stable label for metrics; SkipReason carries the free-form detail.
type SkipKind string

const (
	SkipFetchFailed  SkipKind = "fetch_failed"
	SkipShortHistory SkipKind = "short_history"
)

// SymbolOutcome is the tagged per-symbol result of a scan task: either a
// ScanResult or a skip with a kind and reason. Skips are dropped from
// the final snapshot but stay visible for logging and metrics.
type SymbolOutcome struct {
	Symbol     string
	Result     *ScanResult
	SkipKind   SkipKind
	SkipReason string
}

func (o SymbolOutcome) OK() bool { return o.Result != nil }

// Ticker24h is the parsed 24h statistics row for one market.
type Ticker24h struct {
	Symbol             string  `json:"symbol"`
	LastPrice          float64 `json:"lastPrice"`
	PriceChangePercent float64 `json:"priceChangePercent"`
	QuoteVolume        float64 `json:"quoteVolume"`
	Volume             float64 `json:"volume"`
	HighPrice          float64 `json:"highPrice"`
	LowPrice           float64 `json:"lowPrice"`
}

// StrategyConfig carries the caller-supplied thresholds shared by the
// strategy filters. It is never mutated by the filters.
type StrategyConfig struct {
	MinQuoteVolume   float64 `json:"minQuoteVolume"`
	MinChangePercent float64 `json:"minChangePercent"`
	MaxChangePercent float64 `json:"maxChangePercent"`
	ExcludeLeveraged bool    `json:"excludeLeveraged"`
	Limit            int     `json:"limit"`
	Mode             string  `json:"mode,omitempty"` // support_resistance: bounce or breakout
}

var leveragedMarkers = []string{"UP", "DOWN", "BULL", "BEAR", "2L", "2S", "3L", "3S", "4L", "4S", "5L", "5S"}

// Spot assets whose names merely end in a marker. Without this, JUP
// would read as a leveraged UP token and vanish from every scan.
var plainBases = map[string]bool{
	"JUP":   true,
	"SYRUP": true,
}

// IsLeveragedSymbol reports whether a pair name carries a leveraged-token
// marker directly before the quote asset (e.g. BTCUPUSDT, ETH3LUSDT).
func IsLeveragedSymbol(symbol, quoteAsset string) bool {
	base, ok := strings.CutSuffix(symbol, quoteAsset)
	if !ok || plainBases[base] {
		return false
	}
	for _, m := range leveragedMarkers {
		if strings.HasSuffix(base, m) {
			return true
		}
	}
	return false
}

// NormalizeSymbol upper-cases a symbol and appends the quote asset when
// the caller passed a bare base asset ("btc" -> "BTCUSDT").
func NormalizeSymbol(symbol, quoteAsset string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, quoteAsset) {
		s += quoteAsset
	}
	return s
}
