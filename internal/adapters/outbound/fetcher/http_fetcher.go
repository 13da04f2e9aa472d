package fetcher

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fingerprinter/fingerprinter/internal/adapters/outbound/htmlparser"
	"github.com/fingerprinter/fingerprinter/internal/domain"
)

// HTTPFetcher implements domain.Fetcher over net/http.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *HTTPFetcher) { f.client = c }
}

// WithUserAgent sets the User-Agent request header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) { f.userAgent = ua }
}

// WithMaxBodyBytes caps how much of each response body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(f *HTTPFetcher) { f.maxBodyBytes = n }
}

// New creates an HTTPFetcher with a per-request timeout.
func New(timeout time.Duration, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:       newClient(timeout),
		userAgent:    domain.DefaultUserAgent,
		maxBodyBytes: domain.DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromSettings creates an HTTPFetcher configured by s.
func FromSettings(s domain.Settings) *HTTPFetcher {
	return New(s.Timeout, WithUserAgent(s.UserAgent), WithMaxBodyBytes(s.MaxBodyBytes))
}

func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   timeout,
			ExpectContinueTimeout: 1 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}
}

// Fetch retrieves rawURL and reduces the response to a snapshot.
// A non-2xx status is not an error: its headers and body are still evidence.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*domain.DocumentSnapshot, error) {
	target, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	// Body read failures surface from the tokenizer as parse errors.
	artifacts, err := htmlparser.Extract(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, &domain.ParseError{URL: rawURL, Err: err}
	}

	return &domain.DocumentSnapshot{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		MetaTags:   artifacts.MetaTags,
		ScriptSrcs: artifacts.ScriptSrcs,
		LinkHrefs:  artifacts.LinkHrefs,
	}, nil
}

// NormalizeURL prepends http:// to bare hosts and rejects non-HTTP schemes.
func NormalizeURL(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", fmt.Errorf("empty URL")
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("missing host in %q", rawURL)
	}
	return u.String(), nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[k] = strings.Join(v, ", ")
	}
	return out
}
