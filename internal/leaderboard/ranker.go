package leaderboard

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/0xali3n/gmgn/internal/analytics"
	"github.com/0xali3n/gmgn/internal/metrics"
	"github.com/0xali3n/gmgn/internal/model"
)

const (
	DefaultConcurrency = 4
	DefaultLimit       = 100
)

// Fetcher returns the most-recent-first swap history of an address.
type Fetcher interface {
	FetchSwapHistory(ctx context.Context, address string, limit int) ([]model.SwapTransaction, error)
}

// Config controls a ranking run.
type Config struct {
	// Concurrency caps in-flight fetches. 1 fetches sequentially.
	Concurrency int
	// Limit is the number of transactions requested per address.
	Limit int
}

// Ranker computes stats for many addresses and orders them by PnL.
type Ranker struct {
	fetcher Fetcher
	agg     *analytics.Aggregator
	cfg     Config
	logger  *zap.Logger
}

func NewRanker(fetcher Fetcher, agg *analytics.Aggregator, cfg Config, logger *zap.Logger) *Ranker {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{fetcher: fetcher, agg: agg, cfg: cfg, logger: logger}
}

// RankTraders returns one entry per input address, sorted by estimated PnL
// descending. An address whose history cannot be fetched gets zero stats
// instead of failing the run. The error is non-nil only when ctx is done.
func (r *Ranker) RankTraders(ctx context.Context, addresses []string) ([]model.TraderStats, error) {
	start := time.Now()
	results := make([]model.TraderStats, len(addresses))
	failed := make([]bool, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i, address := range addresses {
		g.Go(func() error {
			swaps, err := r.fetcher.FetchSwapHistory(gctx, address, r.cfg.Limit)
			if err != nil {
				r.logger.Warn("rank trader failed", zap.String("address", address), zap.Error(err))
				results[i] = analytics.ZeroStats(address)
				failed[i] = true
				return nil
			}
			results[i] = r.agg.Aggregate(address, swaps)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	SortByPnL(results)

	failures := 0
	for _, f := range failed {
		if f {
			failures++
		}
	}
	metrics.RecordLeaderboard(len(addresses)-failures, failures, time.Since(start))
	r.logger.Info("leaderboard ranked",
		zap.Int("addresses", len(addresses)),
		zap.Int("failed", failures),
		zap.Duration("elapsed", time.Since(start)),
	)

	return results, nil
}

// SortByPnL stably sorts stats by estimated PnL descending. NaN entries go
// last, keeping their relative order.
func SortByPnL(stats []model.TraderStats) {
	sort.SliceStable(stats, func(i, j int) bool {
		a, b := stats[i].EstimatedPnL, stats[j].EstimatedPnL
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a > b
	})
}
