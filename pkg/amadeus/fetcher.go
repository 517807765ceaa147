package amadeus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const maxBodyBytes = 8 << 20

// Fetcher performs an authenticated GET and reports whether the upstream
// answered with a success status. Token lifecycle is the fetcher's business.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (ok bool, body []byte, err error)
}

type FetcherConfig struct {
	BaseURL           string
	ClientID          string
	ClientSecret      string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// HTTPFetcher signs requests with a client-credentials bearer token that is
// fetched lazily and refreshed before expiry by the oauth2 transport.
type HTTPFetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewHTTPFetcher(cfg FetcherConfig) *HTTPFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     strings.TrimRight(cfg.BaseURL, "/") + "/v1/security/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	// The token endpoint call goes through this client too.
	base := &http.Client{Timeout: timeout}
	tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	httpClient := cc.Client(tokenCtx)
	httpClient.Timeout = timeout

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &HTTPFetcher{
		httpClient: httpClient,
		limiter:    limiter,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (bool, []byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return false, nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return false, nil, fmt.Errorf("external api call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	return ok, body, nil
}
