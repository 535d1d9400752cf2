package leaderboard

import (
	"math"

	"github.com/0xali3n/gmgn/internal/model"
)

const minAddressLen = 10

// IsValid reports whether a ranked entry is worth displaying.
func IsValid(stats model.TraderStats) bool {
	return stats.TotalTrades > 0 &&
		stats.Address != "" &&
		stats.Address != model.NotAvailable &&
		len(stats.Address) > minAddressLen &&
		!math.IsNaN(stats.EstimatedPnL)
}

// FilterValid returns the entries accepted by IsValid, in order.
func FilterValid(stats []model.TraderStats) []model.TraderStats {
	out := make([]model.TraderStats, 0, len(stats))
	for _, s := range stats {
		if IsValid(s) {
			out = append(out, s)
		}
	}
	return out
}
