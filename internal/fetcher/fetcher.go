package fetcher

import "context"

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Get fetches the URL and returns the full response body.
	Get(ctx context.Context, url string) ([]byte, error)
}
