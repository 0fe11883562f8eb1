// Package catalog resolves the skips available at a location, answering from
// the location cache when it can and from the listing API otherwise.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/skipsel/internal/cache"
	"github.com/MrSnakeDoc/skipsel/internal/config"
	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/metrics"
	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/MrSnakeDoc/skipsel/internal/service"
	"github.com/MrSnakeDoc/skipsel/internal/utils"
	"github.com/MrSnakeDoc/skipsel/internal/version"
)

const listingPath = "/api/skips/by-location"

type Client struct {
	baseURL string
	http    service.HTTPClient
	cache   *cache.Cache
	metrics *metrics.Recorder
	minSize int
	maxSize int
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(h service.HTTPClient) Option {
	return func(c *Client) { c.http = h }
}

func WithCache(ch *cache.Cache) Option {
	return func(c *Client) { c.cache = ch }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Client) { c.metrics = r }
}

// WithSizeRange sets the inclusive size window, in yards, of exposed skips.
func WithSizeRange(lo, hi int) Option {
	return func(c *Client) {
		c.minSize = lo
		c.maxSize = hi
	}
}

// New builds a client from config.DefaultConfig() adjusted by opts. Every
// client owns its cache unless one is shared through WithCache.
func New(opts ...Option) *Client {
	def := config.DefaultConfig()
	c := &Client{
		baseURL: def.BaseURL,
		minSize: def.MinSize,
		maxSize: def.MaxSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = service.NewHTTPClient(def.Timeout, version.UserAgent())
	}
	if c.cache == nil {
		c.cache = cache.New(def.CacheTTL)
	}
	return c
}

// FromConfig wires a client for cfg.
func FromConfig(cfg config.Config, opts ...Option) *Client {
	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithSizeRange(cfg.MinSize, cfg.MaxSize),
		WithHTTPClient(service.NewHTTPClient(cfg.Timeout, version.UserAgent())),
		WithCache(cache.New(cfg.CacheTTL)),
	}
	return New(append(base, opts...)...)
}

// FetchByLocation returns the skips offered at params, filtered to the
// supported size range. Errors are always *APIError and never touch the cache.
func (c *Client) FetchByLocation(ctx context.Context, params models.LocationParams) ([]models.Skip, error) {
	key := cache.Key(params)

	if skips, ok := c.cache.Get(key); ok {
		c.metrics.IncCacheHit()
		logger.Debug("cache hit for %s (%d skips)", key, len(skips))
		return skips, nil
	}
	c.metrics.IncCacheMiss()

	start := time.Now()
	skips, err := c.fetch(ctx, params)
	if err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			apiErr = newConnectionError(err)
		}
		outcome := metrics.OutcomeNetwork
		if apiErr.StatusCode != 0 {
			outcome = metrics.OutcomeHTTPError
		}
		c.metrics.ObserveFetch(outcome, time.Since(start))
		logger.Debug("fetch skips for %s failed: %v (cause: %v)", params, apiErr, apiErr.Err)
		return nil, apiErr
	}
	c.metrics.ObserveFetch(metrics.OutcomeOK, time.Since(start))

	filtered := utils.Filter(skips, func(s models.Skip) bool {
		return s.Size >= c.minSize && s.Size <= c.maxSize
	})
	c.metrics.AddFiltered(len(skips) - len(filtered))

	c.cache.Put(key, filtered)
	logger.Debug("fetched %d skips for %s, kept %d in %s", len(skips), params, len(filtered), time.Since(start).Truncate(time.Millisecond))

	return filtered, nil
}

// ClearCache forgets every cached location.
func (c *Client) ClearCache() {
	c.cache.Clear()
}

func (c *Client) listingURL(params models.LocationParams) (string, error) {
	u, err := url.Parse(c.baseURL + listingPath)
	if err != nil {
		return "", fmt.Errorf("failed to parse URL: %w", err)
	}
	q := u.Query()
	q.Set("postcode", params.Postcode)
	q.Set("area", params.Area)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) fetch(ctx context.Context, params models.LocationParams) (skips []models.Skip, err error) {
	listing, err := c.listingURL(params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listing, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer utils.Try(resp.Body.Close)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newStatusError(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&skips); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return skips, nil
}
