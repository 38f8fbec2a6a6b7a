// Package assets resolves static asset references against the
// deployment base path and fetches their content.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"
)

// ErrNotFound is returned when an asset does not exist.
var ErrNotFound = errors.New("assets: not found")

// Resolver prefixes asset paths with a base path, for sub-path hosting.
// The zero value leaves paths untouched.
type Resolver struct {
	BasePath string
}

func isAbsoluteURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// Path returns p prefixed by the base path. Absolute http(s) URLs
// are returned unchanged.
func (r Resolver) Path(p string) string {
	if isAbsoluteURL(p) {
		return p
	}
	base := strings.TrimSuffix(r.BasePath, "/")
	if base == "" {
		return p
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return base + p
}

// Fetcher loads the content of the asset at the given path,
// as found in the catalog (without base path).
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FSFetcher serves assets from a filesystem, such as the embedded catalog
// assets or a directory. Absolute URLs and path traversal are rejected.
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if isAbsoluteURL(p) {
		return nil, fmt.Errorf("assets: FSFetcher only serves local paths, got %q", p)
	}
	name := path.Clean(strings.TrimPrefix(p, "/"))
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("assets: invalid asset path %q", p)
	}
	data, err := fs.ReadFile(f.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, p)
	}
	if err != nil {
		return nil, fmt.Errorf("assets: reading %q: %w", p, err)
	}
	return data, nil
}

// HTTPFetcher downloads assets from a web server. Local paths are resolved
// against BaseURL after applying the Resolver base path.
type HTTPFetcher struct {
	Client   *http.Client
	BaseURL  string
	Resolver Resolver
}

// NewHTTPFetcher creates a fetcher for the site at baseURL.
// If client is nil, http.DefaultClient is used.
func NewHTTPFetcher(client *http.Client, baseURL string, r Resolver) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{Client: client, BaseURL: baseURL, Resolver: r}
}

func (f *HTTPFetcher) url(p string) (string, error) {
	resolved := f.Resolver.Path(p)
	if isAbsoluteURL(resolved) {
		return resolved, nil
	}
	base, err := url.Parse(f.BaseURL)
	if err != nil {
		return "", fmt.Errorf("assets: invalid base URL %q: %w", f.BaseURL, err)
	}
	ref, err := url.Parse(resolved)
	if err != nil {
		return "", fmt.Errorf("assets: invalid asset path %q: %w", p, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func (f *HTTPFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	uri, err := f.url(p)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to create request for %q: %w", uri, err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to load %q: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, uri)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("assets: HTTP %d loading %q", resp.StatusCode, uri)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("assets: failed to read response from %q: %w", uri, err)
	}
	return data, nil
}

type timeoutFetcher struct {
	Fetcher
	timeout time.Duration
}

func (t timeoutFetcher) Fetch(ctx context.Context, p string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.Fetcher.Fetch(ctx, p)
}

// WithTimeout bounds every fetch of f by d. A non positive d returns f.
func WithTimeout(f Fetcher, d time.Duration) Fetcher {
	if d <= 0 {
		return f
	}
	return timeoutFetcher{Fetcher: f, timeout: d}
}

// Source selects where NewFetcher reads the assets.
type Source struct {
	Dir      string // local directory
	BaseURL  string // web site serving the assets
	Resolver Resolver
	Timeout  time.Duration
}

// NewFetcher returns the fetcher for src: an HTTP fetcher when BaseURL is
// set, a directory fetcher when Dir is set, and fallback otherwise.
// Every fetch is bounded by src.Timeout.
func NewFetcher(src Source, fallback fs.FS) (Fetcher, error) {
	var f Fetcher
	switch {
	case src.Dir != "" && src.BaseURL != "":
		return nil, errors.New("assets: a directory and a base URL are exclusive")
	case src.BaseURL != "":
		if _, err := url.Parse(src.BaseURL); err != nil {
			return nil, fmt.Errorf("assets: invalid base URL %q: %w", src.BaseURL, err)
		}
		f = NewHTTPFetcher(nil, src.BaseURL, src.Resolver)
	case src.Dir != "":
		f = FSFetcher{FS: os.DirFS(src.Dir)}
	default:
		f = FSFetcher{FS: fallback}
	}
	return WithTimeout(f, src.Timeout), nil
}
