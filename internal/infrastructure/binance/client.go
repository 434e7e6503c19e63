package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"scanner-backend/internal/domain"
)

const DefaultBaseURL = "https://api.binance.com"

var validIntervals = map[string]bool{
	"1m": true, "3m": true, "5m": true, "15m": true, "30m": true,
	"1h": true, "2h": true, "4h": true, "6h": true, "8h": true, "12h": true,
	"1d": true, "3d": true, "1w": true, "1M": true,
}

// ValidInterval reports whether the exchange serves candles at this step.
func ValidInterval(interval string) bool {
	return validIntervals[interval]
}

// Client talks to the exchange REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type rawTicker struct {
	Symbol             string `json:"symbol"`
	PriceChangePercent string `json:"priceChangePercent"`
	LastPrice          string `json:"lastPrice"`
	QuoteVolume        string `json:"quoteVolume"`
	Volume             string `json:"volume"`
	HighPrice          string `json:"highPrice"`
	LowPrice           string `json:"lowPrice"`
}

// Ticker24h returns parsed 24h statistics for all markets. A transport
// failure or non-200 answer surfaces as *domain.UpstreamError because
// the whole discovery pass depends on it.
func (c *Client) Ticker24h(ctx context.Context) ([]domain.Ticker24h, error) {
	var raw []rawTicker
	if err := c.getJSON(ctx, "ticker24h", c.baseURL+"/api/v3/ticker/24hr", &raw); err != nil {
		return nil, err
	}

	tickers := make([]domain.Ticker24h, 0, len(raw))
	for _, r := range raw {
		tickers = append(tickers, domain.Ticker24h{
			Symbol:             r.Symbol,
			PriceChangePercent: parseFloat(r.PriceChangePercent),
			LastPrice:          parseFloat(r.LastPrice),
			QuoteVolume:        parseFloat(r.QuoteVolume),
			Volume:             parseFloat(r.Volume),
			HighPrice:          parseFloat(r.HighPrice),
			LowPrice:           parseFloat(r.LowPrice),
		})
	}
	return tickers, nil
}

// Klines returns parsed candles, oldest first. The exchange encodes each
// row as a mixed-type array:
// [openTime, open, high, low, close, volume, closeTime, ...]
func (c *Client) Klines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	if !ValidInterval(interval) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidInterval, interval)
	}

	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d", c.baseURL, symbol, interval, limit)
	var rows [][]interface{}
	if err := c.getJSON(ctx, "klines", url, &rows); err != nil {
		return nil, err
	}

	candles := make([]domain.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		candles = append(candles, domain.Candle{
			OpenTime: int64(asFloat(row[0])),
			Open:     asFloat(row[1]),
			High:     asFloat(row[2]),
			Low:      asFloat(row[3]),
			Close:    asFloat(row[4]),
			Volume:   asFloat(row[5]),
		})
	}
	return candles, nil
}

func (c *Client) getJSON(ctx context.Context, op, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.UpstreamError{Op: op, Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.UpstreamError{Op: op, Err: err}
	}
	return nil
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}

// asFloat handles the exchange's habit of mixing numbers and numeric
// strings inside kline rows.
func asFloat(v interface{}) float64 {
	switch val := v.(type) {
	case string:
		return parseFloat(val)
	case float64:
		return val
	}
	return 0
}
