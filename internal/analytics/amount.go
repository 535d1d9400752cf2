package analytics

import (
	"math"
	"strconv"
	"strings"
)

// parseAmount reads a normalized decimal amount, treating anything
// unparseable as zero.
func parseAmount(s string) float64 {
	v := parseAmountStrict(s)
	if math.IsNaN(v) {
		return 0
	}
	return v
}

// parseAmountStrict reads a normalized decimal amount, returning NaN when
// it cannot be parsed.
func parseAmountStrict(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
