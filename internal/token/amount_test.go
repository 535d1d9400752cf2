package token

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw    string
		symbol string
		want   string
	}{
		{raw: "1000000", symbol: "USDC", want: "1.000000"},
		{raw: "100000000", symbol: "AptosCoin", want: "1.00000000"},
		{raw: "2500000", symbol: "USDT", want: "2.500000"},
		{raw: "1000000000000000000", symbol: "WETH", want: "1.000000000000000000"},
		{raw: "123", symbol: "MoonCoin", want: "0.00000123"},
		{raw: "-50000000", symbol: "APT", want: "-0.50000000"},
		{raw: "abc", symbol: "USDC", want: "abc"},
		{raw: "", symbol: "USDC", want: ""},
		{raw: "N/A", symbol: "USDC", want: "N/A"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.raw, tc.symbol); got != tc.want {
			t.Fatalf("normalize(%q, %q): got %q want %q", tc.raw, tc.symbol, got, tc.want)
		}
	}
}

func TestDecimalsRuleOrder(t *testing.T) {
	cases := map[string]int{
		"usdc":          6,
		"AptosCoin":     8,
		"USDT":          6,
		"WETH":          18,
		"apt_usdt_pair": 8,
		"SUSHI":         8,
	}
	for symbol, want := range cases {
		if got := Decimals(symbol); got != want {
			t.Fatalf("decimals(%q): got %d want %d", symbol, got, want)
		}
	}
}
