package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MrSnakeDoc/skipsel/internal/cache"
	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"github.com/MrSnakeDoc/skipsel/internal/metrics"
	"github.com/MrSnakeDoc/skipsel/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mixedSizes = `[
	{"id":1,"size":2,"price_before_vat":100,"vat":20,"hire_period_days":7,"allowed_on_road":true,"allows_heavy_waste":false},
	{"id":2,"size":4,"price_before_vat":211,"vat":20,"hire_period_days":14,"allowed_on_road":true,"allows_heavy_waste":false},
	{"id":3,"size":8,"price_before_vat":295,"vat":20,"hire_period_days":14,"allowed_on_road":true,"allows_heavy_waste":true},
	{"id":4,"size":14,"price_before_vat":390,"vat":20,"hire_period_days":14,"allowed_on_road":false,"allows_heavy_waste":true},
	{"id":5,"size":20,"price_before_vat":900,"vat":20,"hire_period_days":14,"allowed_on_road":false,"allows_heavy_waste":true}
]`

var nr32 = models.LocationParams{Postcode: "NR32", Area: "Lowestoft"}

type testServer struct {
	*httptest.Server
	hits    atomic.Int32
	lastReq atomic.Pointer[http.Request]
}

func newTestServer(t *testing.T, status int, body string) *testServer {
	t.Helper()
	ts := &testServer{}
	ts.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ts.hits.Add(1)
		ts.lastReq.Store(r.Clone(context.Background()))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = fmt.Fprint(w, body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newClient(ts *testServer, opts ...Option) *Client {
	base := []Option{
		WithBaseURL(ts.URL),
		WithHTTPClient(ts.Client()),
		WithCache(cache.New(cache.DefaultTTL)),
	}
	return New(append(base, opts...)...)
}

func sizes(skips []models.Skip) []int {
	out := make([]int, 0, len(skips))
	for _, s := range skips {
		out = append(out, s.Size)
	}
	return out
}

func TestFetchByLocation_FiltersSizes(t *testing.T) {
	logger.UseTestMode()
	ts := newTestServer(t, http.StatusOK, mixedSizes)

	skips, err := newClient(ts).FetchByLocation(context.Background(), nr32)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 8, 14}, sizes(skips))
	assert.Equal(t, "2", skips[0].ID)
}

func TestFetchByLocation_Request(t *testing.T) {
	logger.UseTestMode()
	ts := newTestServer(t, http.StatusOK, `[]`)

	_, err := newClient(ts).FetchByLocation(context.Background(), models.LocationParams{Postcode: "NR32 1AB", Area: "Lowestoft"})
	require.NoError(t, err)

	req := ts.lastReq.Load()
	require.NotNil(t, req)
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, "/api/skips/by-location", req.URL.Path)
	assert.Equal(t, "NR32 1AB", req.URL.Query().Get("postcode"))
	assert.Equal(t, "Lowestoft", req.URL.Query().Get("area"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
}

func TestFetchByLocation_CacheShortCircuitsNetwork(t *testing.T) {
	logger.UseTestMode()
	ts := newTestServer(t, http.StatusOK, mixedSizes)
	reg := prometheus.NewRegistry()
	c := newClient(ts, WithMetrics(metrics.New(reg)))

	first, err := c.FetchByLocation(context.Background(), nr32)
	require.NoError(t, err)

	second, err := c.FetchByLocation(context.Background(), models.LocationParams{Postcode: "nr32", Area: "LOWESTOFT"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), ts.hits.Load(), "second call must be served from cache")
	assert.Equal(t, first, second)

	n, err := testutil.GatherAndCount(reg, "skipsel_cache_hits_total", "skipsel_cache_misses_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFetchByLocation_RefetchesAfterTTL(t *testing.T) {
	logger.UseTestMode()
	ts := newTestServer(t, http.StatusOK, mixedSizes)

	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	c := newClient(ts, WithCache(cache.New(5*time.Minute, cache.WithClock(func() time.Time { return now }))))

	_, err := c.FetchByLocation(context.Background(), nr32)
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	_, err = c.FetchByLocation(context.Background(), nr32)
	require.NoError(t, err)

	assert.Equal(t, int32(2), ts.hits.Load())
}

func TestFetchByLocation_ClearCache(t *testing.T) {
	logger.UseTestMode()
	ts := newTestServer(t, http.StatusOK, mixedSizes)
	c := newClient(ts)

	_, err := c.FetchByLocation(context.Background(), nr32)
	require.NoError(t, err)
	c.ClearCache()
	_, err = c.FetchByLocation(context.Background(), nr32)
	require.NoError(t, err)

	assert.Equal(t, int32(2), ts.hits.Load())
}

func TestFetchByLocation_StatusError(t *testing.T) {
	logger.UseTestMode()
	ts := newTestServer(t, http.StatusNotFound, `{"message":"nope"}`)
	ch := cache.New(cache.DefaultTTL)
	c := newClient(ts, WithCache(ch))

	skips, err := c.FetchByLocation(context.Background(), nr32)
	assert.Nil(t, skips)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "API request failed: 404 Not Found", apiErr.Error())
	assert.Zero(t, ch.Len(), "failed fetch must not write the cache")
}

func TestFetchByLocation_MalformedBody(t *testing.T) {
	logger.UseTestMode()
	ts := newTestServer(t, http.StatusOK, `{"data":[]}`)
	ch := cache.New(cache.DefaultTTL)
	c := newClient(ts, WithCache(ch))

	_, err := c.FetchByLocation(context.Background(), nr32)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.StatusCode)
	assert.Equal(t, ErrMsgConnection, apiErr.Error())
	assert.NotNil(t, errors.Unwrap(apiErr), "cause must be preserved")
	assert.Zero(t, ch.Len())
}

type failingDoer struct{ err error }

func (f failingDoer) Do(*http.Request) (*http.Response, error) { return nil, f.err }

func TestFetchByLocation_TransportError(t *testing.T) {
	logger.UseTestMode()
	cause := errors.New("dial tcp: connection refused")
	c := New(WithBaseURL("http://example.invalid"), WithHTTPClient(failingDoer{err: cause}))

	_, err := c.FetchByLocation(context.Background(), nr32)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrMsgConnection, apiErr.Message)
	assert.ErrorIs(t, err, cause)
}

func TestFetchByLocation_CustomSizeRange(t *testing.T) {
	logger.UseTestMode()
	ts := newTestServer(t, http.StatusOK, mixedSizes)

	skips, err := newClient(ts, WithSizeRange(2, 8)).FetchByLocation(context.Background(), nr32)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 8}, sizes(skips))
}
