package token

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const defaultDecimals = 8

type decimalRule struct {
	fragments []string
	decimals  int
}

// Matched on the lowercased symbol, first hit wins.
var decimalRules = []decimalRule{
	{fragments: []string{"usdc"}, decimals: 6},
	{fragments: []string{"aptos", "apt"}, decimals: 8},
	{fragments: []string{"usdt"}, decimals: 6},
	{fragments: []string{"weth"}, decimals: 18},
}

// Decimals returns the number of fractional digits assumed for symbol.
func Decimals(symbol string) int {
	lower := strings.ToLower(symbol)
	for _, rule := range decimalRules {
		for _, f := range rule.fragments {
			if strings.Contains(lower, f) {
				return rule.decimals
			}
		}
	}
	return defaultDecimals
}

// Normalize converts a raw on-chain integer amount into a decimal string
// with exactly Decimals(symbol) fractional digits. Non-numeric input is
// returned unchanged.
func Normalize(raw, symbol string) string {
	text := strings.TrimSpace(raw)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return raw
	}

	value, ok := new(big.Rat).SetString(text)
	if !ok {
		value = new(big.Rat).SetFloat64(f)
	}

	decimals := Decimals(symbol)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	value.Quo(value, new(big.Rat).SetInt(denom))
	return value.FloatString(decimals)
}
