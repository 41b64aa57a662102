package poll

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rileyhilliard/pulse/internal/errors"
	"github.com/rileyhilliard/pulse/internal/snapshot"
)

// DefaultPath is the snapshot resource, relative to the endpoint.
const DefaultPath = "/analyze"

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// RequestIDHeader carries a per-request identifier the agent can log.
const RequestIDHeader = "X-Request-ID"

// Fetcher retrieves one snapshot.
type Fetcher interface {
	Fetch(ctx context.Context) (snapshot.Snapshot, error)
}

// HTTPFetcher fetches snapshots with a single GET per call.
type HTTPFetcher struct {
	client    *http.Client
	url       string
	userAgent string
}

// NewHTTPFetcher creates a fetcher for path resolved against endpoint, the way
// a browser resolves a relative URL against the page origin. A nil client
// uses http.DefaultClient.
func NewHTTPFetcher(endpoint, path string, client *http.Client) (*HTTPFetcher, error) {
	target, err := ResolveURL(endpoint, path)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client, url: target, userAgent: "pulse"}, nil
}

// WithUserAgent sets the User-Agent header sent with each request.
func (f *HTTPFetcher) WithUserAgent(ua string) *HTTPFetcher {
	f.userAgent = ua
	return f
}

// URL returns the resolved snapshot URL.
func (f *HTTPFetcher) URL() string {
	return f.url
}

// Fetch issues the request. Network failures and non-2xx statuses are
// ErrTransport errors; an undecodable body is an ErrDecode error.
func (f *HTTPFetcher) Fetch(ctx context.Context) (snapshot.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return snapshot.Snapshot{}, errors.WrapWithCode(err, errors.ErrTransport,
			"Cannot build request for "+f.url, "Check the endpoint setting")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := f.client.Do(req)
	if err != nil {
		return snapshot.Snapshot{}, errors.WrapWithCode(err, errors.ErrTransport,
			"Cannot reach "+f.url,
			"Check that the endpoint is running (pulse agent serves one locally)")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return snapshot.Snapshot{}, errors.New(errors.ErrTransport,
			fmt.Sprintf("Endpoint returned HTTP %d", resp.StatusCode),
			"Check the endpoint's logs")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return snapshot.Snapshot{}, errors.Wrap(err, "Failed reading response from "+f.url)
	}

	return snapshot.Decode(body)
}

// ResolveURL resolves path against endpoint. The endpoint must be an absolute
// http or https URL.
func ResolveURL(endpoint, path string) (string, error) {
	base, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid endpoint URL: "+endpoint,
			"Use a full URL such as http://localhost:8080")
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return "", errors.New(errors.ErrConfig,
			"Invalid endpoint URL: "+endpoint,
			"Use a full URL such as http://localhost:8080")
	}
	if path == "" {
		path = DefaultPath
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid snapshot path: "+path, "Use a path such as /analyze")
	}
	return base.ResolveReference(ref).String(), nil
}
