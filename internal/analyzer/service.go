package analyzer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/analytics"
	"github.com/0xali3n/gmgn/internal/leaderboard"
	"github.com/0xali3n/gmgn/internal/metrics"
	"github.com/0xali3n/gmgn/internal/model"
	"github.com/0xali3n/gmgn/internal/swap"
)

const (
	DefaultHistoryLimit  = 50
	DefaultAnalysisLimit = 100
)

// TransactionFetcher returns raw account transactions, oldest first.
type TransactionFetcher interface {
	FetchAccountTransactions(ctx context.Context, address string, limit int) ([]model.RawTransaction, error)
}

// Cache stores finished trader analyses.
type Cache interface {
	GetAnalysis(ctx context.Context, address string) (*model.TraderAnalysis, bool, error)
	SaveAnalysis(ctx context.Context, address string, analysis model.TraderAnalysis, ttl time.Duration) error
}

// Options configures a Service.
type Options struct {
	Leaderboard leaderboard.Config
	Cache       Cache
	CacheTTL    time.Duration
}

// Service is the entry point for swap history, stats, ranking and analysis.
type Service struct {
	fetcher  TransactionFetcher
	pipeline *swap.Pipeline
	agg      *analytics.Aggregator
	ranker   *leaderboard.Ranker
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func New(fetcher TransactionFetcher, pipeline *swap.Pipeline, agg *analytics.Aggregator, opts Options, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		fetcher:  fetcher,
		pipeline: pipeline,
		agg:      agg,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   logger,
	}
	s.ranker = leaderboard.NewRanker(s, agg, opts.Leaderboard, logger)
	return s
}

// BuildSwapHistory fetches up to limit transactions for address and returns
// its swaps, most recent first. A non-positive limit uses the default of 50.
func (s *Service) BuildSwapHistory(ctx context.Context, address string, limit int) ([]model.SwapTransaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.FetchSwapHistory(ctx, address, limit)
}

// FetchSwapHistory implements leaderboard.Fetcher.
func (s *Service) FetchSwapHistory(ctx context.Context, address string, limit int) ([]model.SwapTransaction, error) {
	raw, err := s.fetcher.FetchAccountTransactions(ctx, address, limit)
	if err != nil {
		return nil, err
	}
	return s.pipeline.BuildSwapHistory(raw), nil
}

// Aggregate summarizes an already-built swap history.
func (s *Service) Aggregate(address string, swaps []model.SwapTransaction) model.TraderStats {
	return s.agg.Aggregate(address, swaps)
}

// RankTraders builds stats for every address and sorts them by PnL.
func (s *Service) RankTraders(ctx context.Context, addresses []string) ([]model.TraderStats, error) {
	return s.ranker.RankTraders(ctx, addresses)
}

// AnalyzeTrader returns stats, history and the per-token breakdown for
// address, using the cache when one is configured.
func (s *Service) AnalyzeTrader(ctx context.Context, address string) (model.TraderAnalysis, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.GetAnalysis(ctx, address)
		switch {
		case err != nil:
			metrics.RecordCacheLookup("error")
			s.logger.Warn("analysis cache read failed", zap.String("address", address), zap.Error(err))
		case ok:
			metrics.RecordCacheLookup("hit")
			return *cached, nil
		default:
			metrics.RecordCacheLookup("miss")
		}
	}

	swaps, err := s.FetchSwapHistory(ctx, address, DefaultAnalysisLimit)
	if err != nil {
		return model.TraderAnalysis{}, fmt.Errorf("analyze %s: %w", address, err)
	}

	analysis := model.TraderAnalysis{
		Stats:         s.agg.Aggregate(address, swaps),
		Transactions:  swaps,
		TokenAnalysis: s.agg.AnalyzeByToken(swaps),
	}

	if s.cache != nil {
		if err := s.cache.SaveAnalysis(ctx, address, analysis, s.cacheTTL); err != nil {
			s.logger.Warn("analysis cache write failed", zap.String("address", address), zap.Error(err))
		}
	}

	return analysis, nil
}
