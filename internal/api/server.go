package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/model"
)

const shutdownTimeout = 10 * time.Second

// Analyzer is the core API the HTTP layer serves.
type Analyzer interface {
	BuildSwapHistory(ctx context.Context, address string, limit int) ([]model.SwapTransaction, error)
	RankTraders(ctx context.Context, addresses []string) ([]model.TraderStats, error)
	AnalyzeTrader(ctx context.Context, address string) (model.TraderAnalysis, error)
}

// Server exposes trader analytics over HTTP.
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
}

// NewServer builds the router. addresses is the tracked wallet list used
// for the leaderboard.
func NewServer(analyzer Analyzer, addresses []string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	h := &handler{analyzer: analyzer, addresses: addresses, logger: logger}

	engine.GET("/health", h.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	apiGroup.GET("/leaderboard", h.rankTraders)

	traders := apiGroup.Group("/traders/:address", ValidateAddress())
	traders.GET("", h.traderAnalysis)
	traders.GET("/swaps", h.traderSwaps)

	return &Server{engine: engine, logger: logger}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on listen until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, listen string) error {
	srv := &http.Server{
		Addr:              listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", zap.String("listen", listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("api stopped")
	return nil
}
