package leaderboard

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/analytics"
	"github.com/0xali3n/gmgn/internal/model"
)

type fakeFetcher struct {
	histories map[string][]model.SwapTransaction
	delay     time.Duration

	inFlight int32
	peak     int32
	mu       sync.Mutex
	limits   []int
}

func (f *fakeFetcher) FetchSwapHistory(ctx context.Context, address string, limit int) ([]model.SwapTransaction, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&f.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&f.peak, peak, n) {
			break
		}
	}

	f.mu.Lock()
	f.limits = append(f.limits, limit)
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}

	history, ok := f.histories[address]
	if !ok {
		return nil, errors.New("fetch failed")
	}
	return history, nil
}

// history yields a most-recent-first list whose chronological PnL is profit.
func history(profit string) []model.SwapTransaction {
	return []model.SwapTransaction{
		{Action: model.ActionSell, FromToken: "MOON", FromAmount: "5", ToToken: "AptosCoin", ToAmount: profit, Timestamp: "t2"},
		{Action: model.ActionBuy, FromToken: "AptosCoin", FromAmount: "0", ToToken: "MOON", ToAmount: "5", Timestamp: "t1"},
	}
}

const (
	addrA = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	addrB = "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	addrC = "0xcccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
	addrD = "0xdddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddddd"
)

func TestRankTradersIsolatesFailures(t *testing.T) {
	fetcher := &fakeFetcher{histories: map[string][]model.SwapTransaction{
		addrA: history("3"),
		addrC: history("7"),
		addrD: history("-2"),
	}}
	ranker := NewRanker(fetcher, analytics.NewAggregator(analytics.Options{ChronologicalPnL: true}), Config{}, zap.NewNop())

	got, err := ranker.RankTraders(context.Background(), []string{addrA, addrB, addrC, addrD})
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(got))
	}

	// The failed address ranks by its zero PnL, ahead of the losing trader.
	order := []string{got[0].Address, got[1].Address, got[2].Address, got[3].Address}
	if !reflect.DeepEqual(order, []string{addrC, addrA, addrB, addrD}) {
		t.Fatalf("order mismatch: %v", order)
	}
	if got[0].EstimatedPnL != 7 || got[1].EstimatedPnL != 3 || got[3].EstimatedPnL != -2 {
		t.Fatalf("pnl mismatch: %v %v %v", got[0].EstimatedPnL, got[1].EstimatedPnL, got[3].EstimatedPnL)
	}
	if !reflect.DeepEqual(got[2], analytics.ZeroStats(addrB)) {
		t.Fatalf("failed address should have zero stats: %+v", got[2])
	}
	for _, limit := range fetcher.limits {
		if limit != DefaultLimit {
			t.Fatalf("unexpected fetch limit %d", limit)
		}
	}
}

func TestRankTradersBoundedConcurrency(t *testing.T) {
	histories := make(map[string][]model.SwapTransaction)
	addresses := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		addr := addrA[:len(addrA)-2] + string(rune('a'+i)) + "0"
		histories[addr] = history("1")
		addresses = append(addresses, addr)
	}
	fetcher := &fakeFetcher{histories: histories, delay: 10 * time.Millisecond}
	ranker := NewRanker(fetcher, analytics.NewAggregator(analytics.Options{}), Config{Concurrency: 3}, zap.NewNop())

	got, err := ranker.RankTraders(context.Background(), addresses)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(got) != len(addresses) {
		t.Fatalf("expected %d entries, got %d", len(addresses), len(got))
	}
	if peak := atomic.LoadInt32(&fetcher.peak); peak > 3 {
		t.Fatalf("concurrency exceeded: %d", peak)
	}
}

func TestRankTradersSequentialMatchesParallel(t *testing.T) {
	fetcher := &fakeFetcher{histories: map[string][]model.SwapTransaction{
		addrA: history("3"),
		addrB: history("3"),
		addrC: history("9"),
	}}
	agg := analytics.NewAggregator(analytics.Options{ChronologicalPnL: true})

	sequential, err := NewRanker(fetcher, agg, Config{Concurrency: 1}, nil).RankTraders(context.Background(), []string{addrA, addrB, addrC})
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	parallel, err := NewRanker(fetcher, agg, Config{Concurrency: 8}, nil).RankTraders(context.Background(), []string{addrA, addrB, addrC})
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if !reflect.DeepEqual(sequential, parallel) {
		t.Fatalf("results differ: %+v != %+v", sequential, parallel)
	}
	if sequential[1].Address != addrA || sequential[2].Address != addrB {
		t.Fatalf("ties must keep input order: %s %s", sequential[1].Address, sequential[2].Address)
	}
}

func TestRankTradersContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{histories: map[string][]model.SwapTransaction{addrA: history("1")}}
	ranker := NewRanker(fetcher, analytics.NewAggregator(analytics.Options{}), Config{}, nil)
	if _, err := ranker.RankTraders(ctx, []string{addrA}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestSortByPnLPlacesNaNLast(t *testing.T) {
	stats := []model.TraderStats{
		{Address: "a", EstimatedPnL: math.NaN()},
		{Address: "b", EstimatedPnL: 1},
		{Address: "c", EstimatedPnL: math.Inf(1)},
		{Address: "d", EstimatedPnL: -2},
	}
	SortByPnL(stats)

	order := []string{stats[0].Address, stats[1].Address, stats[2].Address, stats[3].Address}
	if !reflect.DeepEqual(order, []string{"c", "b", "d", "a"}) {
		t.Fatalf("order mismatch: %v", order)
	}
}
