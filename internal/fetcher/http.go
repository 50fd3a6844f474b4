package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/ptel-andalucia/dera-cli/internal/resilience"
)

// HTTPOptions configures the HTTP fetcher.
type HTTPOptions struct {
	UserAgent string
	Timeout   time.Duration

	// RateLimit is the per-host request rate. The IDEAndalucía services ask
	// for a courtesy pause between requests, so the default is 2 req/s.
	RateLimit rate.Limit
	Burst     int
}

// HTTPFetcher implements Fetcher using net/http with per-host rate limiting.
// Retry is the caller's concern (see internal/resilience): the fetcher only
// classifies failures, wrapping retryable ones as transient.
type HTTPFetcher struct {
	client *http.Client
	opts   HTTPOptions

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHTTPFetcher creates a new HTTPFetcher with the given options.
func NewHTTPFetcher(opts HTTPOptions) *HTTPFetcher {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "dera-cli/1.0"
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 2
	}
	if opts.Burst == 0 {
		opts.Burst = 1
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (f *HTTPFetcher) limiterFor(rawURL string) *rate.Limiter {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	lim, ok := f.limiters[host]
	if !ok {
		lim = rate.NewLimiter(f.opts.RateLimit, f.opts.Burst)
		f.limiters[host] = lim
	}
	return lim
}

// Get fetches the URL and returns the full response body. Server-side errors
// (5xx, 429, timeouts) come back wrapped as resilience.TransientError so the
// caller's retry policy picks them up.
func (f *HTTPFetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := f.limiterFor(rawURL).Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "rate limiter wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "http get")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		// Any non-success status counts as retryable: the DERA endpoints
		// intermittently answer 4xx during maintenance windows.
		err := eris.Errorf("http %d from %s", resp.StatusCode, rawURL)
		return nil, resilience.NewTransientError(err, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resilience.NewTransientError(eris.Wrap(err, "read body"), resp.StatusCode)
	}

	return body, nil
}
