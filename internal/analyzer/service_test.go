package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/analytics"
	"github.com/0xali3n/gmgn/internal/chain"
	"github.com/0xali3n/gmgn/internal/model"
	"github.com/0xali3n/gmgn/internal/swap"
	"github.com/0xali3n/gmgn/internal/token"
)

const (
	aptType  = "0x1::aptos_coin::AptosCoin"
	usdcType = "0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC"
	addrA    = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	addrB    = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

type fakeNode struct {
	mu     sync.Mutex
	txs    map[string][]model.RawTransaction
	limits []int
	calls  int
}

func (f *fakeNode) FetchAccountTransactions(_ context.Context, address string, limit int) ([]model.RawTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.limits = append(f.limits, limit)
	txs, ok := f.txs[address]
	if !ok {
		return nil, &chain.FetchError{Address: address, StatusCode: 404, Err: chain.ErrNotFound}
	}
	return txs, nil
}

type memoryCache struct {
	entries map[string]model.TraderAnalysis
	ttls    map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]model.TraderAnalysis{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) GetAnalysis(_ context.Context, address string) (*model.TraderAnalysis, bool, error) {
	a, ok := c.entries[address]
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

func (c *memoryCache) SaveAnalysis(_ context.Context, address string, analysis model.TraderAnalysis, ttl time.Duration) error {
	c.entries[address] = analysis
	c.ttls[address] = ttl
	return nil
}

func rawSwap(hash, from, to, fromAmount, toAmount string) model.RawTransaction {
	return model.RawTransaction{
		Hash:      hash,
		Timestamp: "1700000000000000",
		Payload: &model.Payload{
			Function:      "0xabc::router::swap_exact_input",
			TypeArguments: []json.RawMessage{json.RawMessage(fmt.Sprintf("%q", from)), json.RawMessage(fmt.Sprintf("%q", to))},
			Arguments:     []json.RawMessage{json.RawMessage(fmt.Sprintf("%q", fromAmount)), json.RawMessage(fmt.Sprintf("%q", toAmount))},
		},
	}
}

func newTestService(node *fakeNode, opts Options) *Service {
	extractor := swap.NewExtractor(token.NewResolver(token.DefaultRegistry()), zap.NewNop())
	pipeline := swap.NewPipeline(extractor, swap.WithLocation(time.UTC))
	agg := analytics.NewAggregator(analytics.Options{ChronologicalPnL: true})
	return New(node, pipeline, agg, opts, zap.NewNop())
}

func TestBuildSwapHistoryDefaultLimit(t *testing.T) {
	node := &fakeNode{txs: map[string][]model.RawTransaction{
		addrA: {
			rawSwap("0x1", aptType, usdcType, "1000000000", "50000000"),
			{Hash: "0x2", Payload: &model.Payload{Function: "0x1::coin::transfer"}},
		},
	}}
	svc := newTestService(node, Options{})

	swaps, err := svc.BuildSwapHistory(context.Background(), addrA, 0)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(swaps) != 1 || swaps[0].Hash != "0x1" || swaps[0].FromAmount != "10.00000000" || swaps[0].ToAmount != "50.000000" {
		t.Fatalf("unexpected swaps: %+v", swaps)
	}
	if node.limits[0] != DefaultHistoryLimit {
		t.Fatalf("expected limit %d, got %d", DefaultHistoryLimit, node.limits[0])
	}
}

func TestBuildSwapHistoryPropagatesFetchError(t *testing.T) {
	svc := newTestService(&fakeNode{}, Options{})
	if _, err := svc.BuildSwapHistory(context.Background(), addrA, 10); !errors.Is(err, chain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRankTraders(t *testing.T) {
	node := &fakeNode{txs: map[string][]model.RawTransaction{
		addrA: {
			rawSwap("0x1", aptType, "0xabc::moon::MOON", "1000000000", "500000000"),
			rawSwap("0x2", "0xabc::moon::MOON", aptType, "500000000", "1200000000"),
		},
	}}
	svc := newTestService(node, Options{})

	got, err := svc.RankTraders(context.Background(), []string{addrB, addrA})
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(got) != 2 || got[0].Address != addrA || got[1].Address != addrB {
		t.Fatalf("unexpected ranking: %+v", got)
	}
	if got[0].EstimatedPnL != 2 || got[0].TotalTrades != 2 {
		t.Fatalf("unexpected stats: %+v", got[0])
	}
	if got[1].TotalTrades != 0 || got[1].LastTradeTime != model.NotAvailable {
		t.Fatalf("failed address should have zero stats: %+v", got[1])
	}
	for _, limit := range node.limits {
		if limit != DefaultAnalysisLimit {
			t.Fatalf("expected limit %d, got %d", DefaultAnalysisLimit, limit)
		}
	}
}

func TestAnalyzeTraderUsesCache(t *testing.T) {
	node := &fakeNode{txs: map[string][]model.RawTransaction{
		addrA: {
			rawSwap("0x1", aptType, "0xabc::moon::MOON", "1000000000", "500000000"),
			rawSwap("0x2", aptType, usdcType, "100000000", "5000000"),
		},
	}}
	cache := newMemoryCache()
	svc := newTestService(node, Options{Cache: cache, CacheTTL: time.Minute})

	first, err := svc.AnalyzeTrader(context.Background(), addrA)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if first.Stats.TotalTrades != 2 || len(first.Transactions) != 2 || len(first.TokenAnalysis) != 2 {
		t.Fatalf("unexpected analysis: %+v", first)
	}
	if first.Transactions[0].Hash != "0x2" {
		t.Fatalf("transactions should be most recent first: %+v", first.Transactions)
	}
	if node.limits[0] != DefaultAnalysisLimit {
		t.Fatalf("expected limit %d, got %d", DefaultAnalysisLimit, node.limits[0])
	}
	if cache.ttls[addrA] != time.Minute {
		t.Fatalf("analysis not cached with ttl: %v", cache.ttls)
	}

	second, err := svc.AnalyzeTrader(context.Background(), addrA)
	if err != nil {
		t.Fatalf("analyze cached: %v", err)
	}
	if node.calls != 1 {
		t.Fatalf("expected cached result, node called %d times", node.calls)
	}
	if second.Stats.Address != first.Stats.Address || len(second.Transactions) != len(first.Transactions) {
		t.Fatalf("cached analysis mismatch: %+v", second)
	}
}

func TestAnalyzeTraderError(t *testing.T) {
	svc := newTestService(&fakeNode{}, Options{})
	if _, err := svc.AnalyzeTrader(context.Background(), addrA); !errors.Is(err, chain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
