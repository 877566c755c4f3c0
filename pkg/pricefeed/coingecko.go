package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/chainsafe/insured-bridge/internal/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	maxResponseSize     = 1 << 20
)

// CoinGeckoConfig configures the CoinGecko poller.
type CoinGeckoConfig struct {
	BaseURL      string
	APIKey       string
	CoinID       string
	PollInterval time.Duration
	MaxAge       time.Duration
	Timeout      time.Duration
}

// CoinGecko polls the simple/price endpoint and serves the last good price until it
// is older than MaxAge.
type CoinGecko struct {
	cfg    CoinGeckoConfig
	client *http.Client
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	price     decimal.Decimal
	updatedAt time.Time
}

func NewCoinGecko(cfg CoinGeckoConfig, logger *zap.Logger) *CoinGecko {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultCoinGeckoURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &CoinGecko{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		now:    time.Now,
	}
}

func (c *CoinGecko) LatestPrice(_ context.Context) (decimal.Decimal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.updatedAt.IsZero() {
		return decimal.Zero, false, nil
	}
	fresh := c.now().Sub(c.updatedAt) <= c.cfg.MaxAge
	return c.price, fresh, nil
}

// Run queries immediately and then once per poll interval until ctx is done.
// Query failures are logged and retried on the next tick.
func (c *CoinGecko) Run(ctx context.Context) {
	_ = c.Refresh(ctx)

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = c.Refresh(ctx)
		}
	}
}

// Refresh performs one query and updates the cached price on success.
func (c *CoinGecko) Refresh(ctx context.Context) error {
	price, err := c.query(ctx)
	if err != nil {
		metrics.OracleFailures.WithLabelValues("coingecko").Inc()
		c.logger.Warn("CoinGecko query failed", zap.String("coin", c.cfg.CoinID), zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.price = price
	c.updatedAt = c.now()
	c.mu.Unlock()

	f, _ := price.Float64()
	metrics.OraclePrice.Set(f)
	c.logger.Debug("price updated", zap.String("coin", c.cfg.CoinID), zap.Stringer("price", price))
	return nil
}

func (c *CoinGecko) query(ctx context.Context) (decimal.Decimal, error) {
	params := url.Values{}
	params.Add("ids", c.cfg.CoinID)
	params.Add("vs_currencies", "usd")
	query := c.cfg.BaseURL + "/simple/price?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, query, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build request: %w", err)
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("x-cg-pro-api-key", c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query CoinGecko: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read CoinGecko response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("CoinGecko returned status %d: %s", resp.StatusCode, string(body))
	}

	var result map[string]map[string]json.Number
	if err := json.Unmarshal(body, &result); err != nil {
		return decimal.Zero, fmt.Errorf("failed to unmarshal CoinGecko json: %w", err)
	}
	raw, ok := result[c.cfg.CoinID]["usd"]
	if !ok {
		return decimal.Zero, errors.New("price missing from CoinGecko response")
	}
	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", raw, err)
	}
	if !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidPrice, price)
	}
	return price, nil
}
