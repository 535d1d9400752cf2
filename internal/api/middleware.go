package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/0xali3n/gmgn/internal/chain"
	"github.com/0xali3n/gmgn/internal/metrics"
)

const addressKey = "validatedAddress"

// ValidateAddress rejects malformed :address parameters and stores the
// canonical form for handlers.
func ValidateAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		address, err := chain.ParseAddress(c.Param("address"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Set(addressKey, address)
		c.Next()
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.RecordHTTPRequest(route, strconv.Itoa(status))
		logger.Debug("http request",
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}
