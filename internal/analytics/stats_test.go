package analytics

import (
	"math"
	"reflect"
	"testing"

	"github.com/0xali3n/gmgn/internal/model"
)

func withTime(s model.SwapTransaction, ts string) model.SwapTransaction {
	s.Timestamp = ts
	return s
}

func TestAggregate(t *testing.T) {
	history := []model.SwapTransaction{
		withTime(sell("MOON", "5", "USDC", "12"), "t3"),
		withTime(buy("AptosCoin", "10", "MOON", "5"), "t2"),
		withTime(buy("AptosCoin", "4", "USDC", "2"), "t1"),
	}

	got := NewAggregator(Options{}).Aggregate("0xabc", history)

	if got.Address != "0xabc" || got.TotalTrades != 3 || got.BuyTrades != 2 || got.SellTrades != 1 {
		t.Fatalf("counts mismatch: %+v", got)
	}
	if got.TotalVolume != 26 {
		t.Fatalf("volume mismatch: got %v want 26", got.TotalVolume)
	}
	if math.Abs(got.AvgTradeSize-26.0/3) > 1e-9 {
		t.Fatalf("avg trade size mismatch: %v", got.AvgTradeSize)
	}
	if got.LastTradeTime != "t3" {
		t.Fatalf("last trade time mismatch: %s", got.LastTradeTime)
	}

	// Only the traded side counts: MOON sold then bought, USDC bought.
	wantTop := []model.TokenCount{
		{Token: "MOON", Trades: 2},
		{Token: "USDC", Trades: 1},
	}
	if !reflect.DeepEqual(got.TopTokens, wantTop) {
		t.Fatalf("top tokens mismatch: %+v != %+v", got.TopTokens, wantTop)
	}
}

// The win rate counts buys and sells over all trades, which is every trade.
func TestAggregateWinRateIsAlwaysFull(t *testing.T) {
	history := []model.SwapTransaction{
		sell("MOON", "5", "AptosCoin", "1"),
		buy("AptosCoin", "10", "MOON", "5"),
	}
	got := NewAggregator(Options{}).Aggregate("0xabc", history)
	if got.WinRate != 100 {
		t.Fatalf("win rate: got %v want 100", got.WinRate)
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := NewAggregator(Options{}).Aggregate("0xabc", nil)
	want := model.TraderStats{
		Address:       "0xabc",
		LastTradeTime: model.NotAvailable,
		TopTokens:     []model.TokenCount{},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("empty stats mismatch: %+v != %+v", got, want)
	}
	if !reflect.DeepEqual(ZeroStats("0xabc"), want) {
		t.Fatalf("zero stats mismatch: %+v", ZeroStats("0xabc"))
	}
}

func TestAggregateTopTokensLimit(t *testing.T) {
	history := []model.SwapTransaction{
		buy("AptosCoin", "1", "B", "1"),
		buy("AptosCoin", "1", "C", "1"),
		sell("D", "1", "AptosCoin", "1"),
		buy("AptosCoin", "1", "E", "1"),
		buy("AptosCoin", "1", "F", "1"),
		buy("AptosCoin", "1", "G", "1"),
		sell("C", "1", "USDC", "1"),
	}
	got := NewAggregator(Options{}).Aggregate("0xabc", history)

	want := []model.TokenCount{
		{Token: "C", Trades: 2},
		{Token: "B", Trades: 1},
		{Token: "D", Trades: 1},
		{Token: "E", Trades: 1},
		{Token: "F", Trades: 1},
	}
	if !reflect.DeepEqual(got.TopTokens, want) {
		t.Fatalf("top tokens mismatch: %+v != %+v", got.TopTokens, want)
	}
}

func TestAggregateTopTokensSkipSettlementSide(t *testing.T) {
	history := []model.SwapTransaction{
		sell("MOON", "5", "AptosCoin", "12"),
		buy("AptosCoin", "10", "MOON", "5"),
		buy("AptosCoin", "4", "USDC", "2"),
	}
	got := NewAggregator(Options{}).Aggregate("0xabc", history)

	want := []model.TokenCount{
		{Token: "MOON", Trades: 2},
		{Token: "USDC", Trades: 1},
	}
	if !reflect.DeepEqual(got.TopTokens, want) {
		t.Fatalf("top tokens mismatch: %+v != %+v", got.TopTokens, want)
	}
}

func TestAggregatePnLOrdering(t *testing.T) {
	// Most recent first: the sell happened after the buy.
	history := []model.SwapTransaction{
		sell("MOON", "5", "AptosCoin", "12"),
		buy("AptosCoin", "10", "MOON", "5"),
	}

	asGiven := NewAggregator(Options{}).Aggregate("0xabc", history)
	if asGiven.EstimatedPnL != 0 {
		t.Fatalf("replay as given: got %v want 0", asGiven.EstimatedPnL)
	}

	chronological := NewAggregator(Options{ChronologicalPnL: true}).Aggregate("0xabc", history)
	if chronological.EstimatedPnL != 2 {
		t.Fatalf("chronological replay: got %v want 2", chronological.EstimatedPnL)
	}

	if history[0].Action != model.ActionSell {
		t.Fatalf("input history must not be reordered")
	}
}

func TestAggregateIdempotent(t *testing.T) {
	history := []model.SwapTransaction{
		buy("AptosCoin", "10", "MOON", "5"),
		sell("MOON", "5", "AptosCoin", "12"),
	}
	agg := NewAggregator(Options{})
	if !reflect.DeepEqual(agg.Aggregate("0xabc", history), agg.Aggregate("0xabc", history)) {
		t.Fatalf("aggregate not idempotent")
	}
}
