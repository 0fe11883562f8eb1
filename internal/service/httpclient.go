// service/httpclient.go
package service

import (
	"net"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/skipsel/internal/logger"
	"golang.org/x/net/http2"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type DefaultHTTPClient struct{ *http.Client }

// NewHTTPClient returns a client on the shared upstream transport that stamps
// every request with userAgent.
func NewHTTPClient(timeout time.Duration, userAgent string) *DefaultHTTPClient {
	return &DefaultHTTPClient{Client: &http.Client{
		Timeout: timeout,
		Transport: &userAgentTransport{
			base:      NewTransport(),
			userAgent: userAgent,
		},
	}}
}

// NewTransport builds the pooled transport used for the listing API, with
// HTTP/2 negotiated over TLS when the server offers it.
func NewTransport() *http.Transport {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}
	if err := http2.ConfigureTransport(tr); err != nil {
		logger.Debug("http2 transport not configured: %v", err)
	}
	return tr
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent == "" || req.Header.Get("User-Agent") != "" {
		return t.base.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(r)
}
