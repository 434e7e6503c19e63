package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full runtime configuration, read once from the
// environment at startup.
type Config struct {
	ListenAddr string

	// Market universe
	QuoteAsset string
	TopN       int

	// Scan loop
	Interval      string
	CandleLimit   int
	Concurrency   int
	SymbolTimeout time.Duration
	ScanCycle     time.Duration

	// Ticker snapshot cache
	TickerCacheTTL time.Duration

	// Optional integrations
	DatabaseURL string
}

func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		QuoteAsset:     "USDT",
		TopN:           50,
		Interval:       "1h",
		CandleLimit:    250,
		Concurrency:    10,
		SymbolTimeout:  10 * time.Second,
		ScanCycle:      time.Minute,
		TickerCacheTTL: 30 * time.Second,
	}
}

// FromEnv overlays environment variables onto the defaults. Unset or
// malformed values keep the default.
func FromEnv() Config {
	cfg := Default()

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("QUOTE_ASSET")); v != "" {
		cfg.QuoteAsset = strings.ToUpper(v)
	}
	if v := strings.TrimSpace(os.Getenv("SCAN_TOP_N")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopN = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SCAN_INTERVAL")); v != "" {
		cfg.Interval = v
	}
	if v := strings.TrimSpace(os.Getenv("SCAN_CANDLE_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CandleLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SCAN_CONCURRENCY")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("SYMBOL_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SymbolTimeout = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("SCAN_CYCLE")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ScanCycle = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("TICKER_CACHE_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TickerCacheTTL = d
		}
	}
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	return cfg
}
