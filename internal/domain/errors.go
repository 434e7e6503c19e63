package domain

import (
	"errors"
	"fmt"
)

// UpstreamError means the market-data source itself is unavailable or
// answered with a server error. It fails the whole operation, unlike
// per-symbol fetch errors which only drop that symbol.
type UpstreamError struct {
	Op     string // e.g. "ticker24h", "klines"
	Status int    // HTTP-like status, 0 for transport errors
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

var (
	// ErrUnknownStrategy rejects strategy names outside the fixed set.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrNoSymbols means the request resolved to an empty symbol set
	// before any fetch was attempted.
	ErrNoSymbols = errors.New("no symbols to scan")

	// ErrInvalidInterval rejects candle intervals the source does not serve.
	ErrInvalidInterval = errors.New("invalid interval")
)
