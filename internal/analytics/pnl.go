package analytics

import "github.com/0xali3n/gmgn/internal/model"

type position struct {
	held    float64
	avgCost float64
}

// ComputePnL replays swaps as a weighted-average-cost ledger and returns the
// realized profit in quote terms. Swaps are expected oldest first; the
// order is not checked. Zero amounts can produce Inf or NaN, which are
// returned as-is.
func ComputePnL(swaps []model.SwapTransaction) float64 {
	ledger := make(map[string]*position)
	pnl := 0.0

	for _, s := range swaps {
		from := parseAmount(s.FromAmount)
		to := parseAmount(s.ToAmount)

		switch s.Action {
		case model.ActionBuy:
			price := from / to
			pos, ok := ledger[s.ToToken]
			if !ok {
				pos = &position{}
				ledger[s.ToToken] = pos
			}
			held := pos.held + to
			if pos.held > 0 {
				pos.avgCost = (pos.held*pos.avgCost + to*price) / held
			} else {
				pos.avgCost = price
			}
			pos.held = held

		case model.ActionSell:
			pos, ok := ledger[s.FromToken]
			if !ok || pos.held <= 0 {
				continue
			}
			pnl += to - from*pos.avgCost
			pos.held -= from
			if pos.held < 0 {
				pos.held = 0
			}
		}
	}

	return pnl
}
