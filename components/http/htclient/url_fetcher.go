package htclient

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// URLFetcher sends GET requests to the configured HTTP endpoint.
type URLFetcher struct {
	url     string
	timeout time.Duration
	client  *HTTPClient
}

// NewURLFetcher is an initialization of URLFetcher.
//
// Parameters:
//   - client to perform an actual HTTP request.
//   - url - HTTP URL.
//   - timeout - HTTP request timeout.
func NewURLFetcher(client *HTTPClient, url string, timeout time.Duration) *URLFetcher {
	return &URLFetcher{
		url:     url,
		timeout: timeout,
		client:  client,
	}
}

// Fetch returns the response body.
func (f *URLFetcher) Fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}

	resp, body, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("url-fetcher: failed to fetch data: url=%s code=%v",
			f.url, resp.StatusCode)
	}

	return body, nil
}
