package analytics

import (
	"sort"

	"github.com/0xali3n/gmgn/internal/model"
)

// AnalyzeByToken groups a most-recent-first history by subject token and
// returns one breakdown per token, busiest first.
func (a *Aggregator) AnalyzeByToken(swaps []model.SwapTransaction) []model.TradeAnalysis {
	order := make([]string, 0)
	groups := make(map[string][]model.SwapTransaction)
	for _, s := range swaps {
		subject := s.SubjectToken()
		if _, ok := groups[subject]; !ok {
			order = append(order, subject)
		}
		groups[subject] = append(groups[subject], s)
	}

	out := make([]model.TradeAnalysis, 0, len(order))
	for _, symbol := range order {
		trades := groups[symbol]
		analysis := model.TradeAnalysis{
			Token:        symbol,
			TotalTrades:  len(trades),
			FirstTrade:   trades[len(trades)-1].Timestamp,
			LastTrade:    trades[0].Timestamp,
			EstimatedPnL: a.pnl(trades),
		}

		for _, s := range trades {
			volume := parseAmountStrict(s.SettlementAmount())
			analysis.TotalVolume += volume
			if s.Action == model.ActionBuy {
				analysis.BuyTrades++
				analysis.BuyVolume += volume
			} else {
				analysis.SellTrades++
				analysis.SellVolume += volume
			}
		}
		analysis.AvgPrice = analysis.TotalVolume / float64(analysis.TotalTrades)

		out = append(out, analysis)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalTrades > out[j].TotalTrades
	})
	return out
}
