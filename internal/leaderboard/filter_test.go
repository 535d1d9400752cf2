package leaderboard

import (
	"math"
	"testing"

	"github.com/0xali3n/gmgn/internal/model"
)

func TestFilterValid(t *testing.T) {
	stats := []model.TraderStats{
		{Address: addrA, TotalTrades: 2, EstimatedPnL: 1},
		{Address: addrB, TotalTrades: 0},
		{Address: model.NotAvailable, TotalTrades: 1},
		{Address: "0x123", TotalTrades: 1},
		{Address: addrC, TotalTrades: 1, EstimatedPnL: math.NaN()},
		{Address: addrC, TotalTrades: 1, EstimatedPnL: -4},
	}

	got := FilterValid(stats)
	if len(got) != 2 || got[0].Address != addrA || got[1].EstimatedPnL != -4 {
		t.Fatalf("unexpected filtered stats: %+v", got)
	}
}
