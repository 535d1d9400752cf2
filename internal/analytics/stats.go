package analytics

import (
	"sort"

	"github.com/0xali3n/gmgn/internal/model"
)

const topTokenLimit = 5

// Options controls how the aggregator replays history for PnL.
type Options struct {
	// ChronologicalPnL replays a most-recent-first history oldest first
	// before computing PnL. When false the list is replayed as given.
	ChronologicalPnL bool
}

// Aggregator derives trader statistics from swap histories.
type Aggregator struct {
	opts Options
}

func NewAggregator(opts Options) *Aggregator {
	return &Aggregator{opts: opts}
}

// Aggregate summarizes a most-recent-first swap history for address.
func (a *Aggregator) Aggregate(address string, swaps []model.SwapTransaction) model.TraderStats {
	stats := model.TraderStats{
		Address:       address,
		TotalTrades:   len(swaps),
		LastTradeTime: model.NotAvailable,
		TopTokens:     topTokens(swaps, topTokenLimit),
		EstimatedPnL:  a.pnl(swaps),
	}

	for _, s := range swaps {
		switch s.Action {
		case model.ActionBuy:
			stats.BuyTrades++
		case model.ActionSell:
			stats.SellTrades++
		}
		stats.TotalVolume += parseAmount(s.SettlementAmount())
	}

	if stats.TotalTrades > 0 {
		// Every record is a buy or a sell, so this is 100 whenever there are trades.
		stats.WinRate = float64(stats.BuyTrades+stats.SellTrades) / float64(stats.TotalTrades) * 100
		stats.AvgTradeSize = stats.TotalVolume / float64(stats.TotalTrades)
		stats.LastTradeTime = swaps[0].Timestamp
	}

	return stats
}

// ZeroStats is the placeholder reported for an address whose history could
// not be fetched.
func ZeroStats(address string) model.TraderStats {
	return model.TraderStats{
		Address:       address,
		LastTradeTime: model.NotAvailable,
		TopTokens:     []model.TokenCount{},
	}
}

func (a *Aggregator) pnl(swaps []model.SwapTransaction) float64 {
	if !a.opts.ChronologicalPnL {
		return ComputePnL(swaps)
	}
	return ComputePnL(reversed(swaps))
}

// topTokens counts the subject token of each swap (the acquired token on a
// buy, the disposed one on a sell) and returns the most frequent, ties kept
// in first-seen order.
func topTokens(swaps []model.SwapTransaction, limit int) []model.TokenCount {
	index := make(map[string]int)
	counts := make([]model.TokenCount, 0)

	for _, s := range swaps {
		symbol := s.SubjectToken()
		if i, ok := index[symbol]; ok {
			counts[i].Trades++
			continue
		}
		index[symbol] = len(counts)
		counts = append(counts, model.TokenCount{Token: symbol, Trades: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Trades > counts[j].Trades
	})

	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

func reversed(swaps []model.SwapTransaction) []model.SwapTransaction {
	out := make([]model.SwapTransaction, len(swaps))
	for i, s := range swaps {
		out[len(swaps)-1-i] = s
	}
	return out
}
