package offline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Resource is a cached or fetched application asset.
type Resource struct {
	Path        string `json:"path"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
	FromCache   bool   `json:"-"`
}

// Fetcher retrieves a resource from the network.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (*Resource, error)
}

// HTTPFetcher fetches resources relative to an origin.
type HTTPFetcher struct {
	origin string
	client *http.Client
}

func NewHTTPFetcher(origin string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		origin: strings.TrimRight(origin, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (*Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.origin+path, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: reading body: %w", path, err)
	}
	return &Resource{
		Path:        path,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
