package chain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/0xali3n/gmgn/internal/metrics"
	"github.com/0xali3n/gmgn/internal/model"
)

const (
	// DefaultBaseURL is the public Aptos mainnet fullnode.
	DefaultBaseURL = "https://fullnode.mainnet.aptoslabs.com"

	acceptHeader   = "application/json, application/x-bcs"
	defaultTimeout = 30 * time.Second
	maxErrorBody   = 4 << 10
)

// ClientConfig configures the node client.
type ClientConfig struct {
	BaseURL      string
	Timeout      time.Duration
	RateLimit    float64
	MaxRetries   int
	RetryBackoff time.Duration
	HTTPClient   *http.Client
}

// Client reads account transactions from an Aptos node REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      backoff
	logger     *zap.Logger
}

// NewClient creates a node client. A zero RateLimit disables client-side
// throttling.
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	retry := newBackoff(cfg.MaxRetries, cfg.RetryBackoff)
	retry.onRetry = func(attempt int, wait time.Duration, err error) {
		metrics.RecordNodeRetry()
		logger.Warn("fetch transactions failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
		retry:      retry,
		logger:     logger,
	}
}

// FetchAccountTransactions returns up to limit transactions sent by address,
// oldest first as the node orders them.
func (c *Client) FetchAccountTransactions(ctx context.Context, address string, limit int) ([]model.RawTransaction, error) {
	var txs []model.RawTransaction
	err := c.retry.do(ctx, func(ctx context.Context) error {
		var err error
		txs, err = c.fetchOnce(ctx, address, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) fetchOnce(ctx context.Context, address string, limit int) ([]model.RawTransaction, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	endpoint := fmt.Sprintf("%s/v1/accounts/%s/transactions", c.baseURL, url.PathEscape(address))
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Address: address, Err: ErrRequest, cause: err}
	}
	req.Header.Set("Accept", acceptHeader)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordNodeRequest("network_error", time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &FetchError{Address: address, Err: ErrNetwork, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		sentinel := classifyStatus(resp.StatusCode)
		metrics.RecordNodeRequest(outcomeLabel(sentinel), time.Since(start))
		fetchErr := &FetchError{Address: address, StatusCode: resp.StatusCode, Err: sentinel}
		if msg := strings.TrimSpace(string(body)); msg != "" {
			fetchErr.cause = errors.New(msg)
		}
		return nil, fetchErr
	}

	var txs []model.RawTransaction
	if err := json.NewDecoder(resp.Body).Decode(&txs); err != nil {
		metrics.RecordNodeRequest("decode_error", time.Since(start))
		return nil, &FetchError{Address: address, StatusCode: resp.StatusCode, Err: ErrRequest, cause: fmt.Errorf("decode response: %w", err)}
	}

	metrics.RecordNodeRequest("ok", time.Since(start))
	c.logger.Debug("fetched transactions", zap.String("address", address), zap.Int("count", len(txs)))
	return txs, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrServer):
		return "server_error"
	default:
		return "request_error"
	}
}
