package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLeveragedSymbol(t *testing.T) {
	cases := []struct {
		symbol string
		want   bool
	}{
		{"BTCUPUSDT", true},
		{"ETHDOWNUSDT", true},
		{"XRPBULLUSDT", true},
		{"EOSBEARUSDT", true},
		{"ADA3LUSDT", true},
		{"SOL5SUSDT", true},
		{"BTCUSDT", false},
		{"ETHUSDT", false},
		// Real spot assets that happen to end in a marker.
		{"JUPUSDT", false},
		{"SYRUPUSDT", false},
		// Wrong quote asset never matches.
		{"BTCUPBTC", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsLeveragedSymbol(tc.symbol, "USDT"), tc.symbol)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "BTCUSDT", NormalizeSymbol("btc", "USDT"))
	assert.Equal(t, "BTCUSDT", NormalizeSymbol(" BTCUSDT ", "USDT"))
	assert.Equal(t, "JUPUSDT", NormalizeSymbol("jup", "USDT"))
	assert.Equal(t, "", NormalizeSymbol("   ", "USDT"))
}
