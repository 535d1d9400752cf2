package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/chain"
	"github.com/0xali3n/gmgn/internal/leaderboard"
)

const maxHistoryLimit = 100

type handler struct {
	analyzer  Analyzer
	addresses []string
	logger    *zap.Logger
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) rankTraders(c *gin.Context) {
	stats, err := h.analyzer.RankTraders(c.Request.Context(), h.addresses)
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.Query("all") != "true" {
		stats = leaderboard.FilterValid(stats)
	}
	c.JSON(http.StatusOK, gin.H{"traders": stats, "count": len(stats)})
}

func (h *handler) traderAnalysis(c *gin.Context) {
	analysis, err := h.analyzer.AnalyzeTrader(c.Request.Context(), c.GetString(addressKey))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *handler) traderSwaps(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}

	address := c.GetString(addressKey)
	swaps, err := h.analyzer.BuildSwapHistory(c.Request.Context(), address, limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"address": address, "transactions": swaps, "count": len(swaps)})
}

func (h *handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, chain.ErrServer):
		return http.StatusServiceUnavailable
	case errors.Is(err, chain.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
