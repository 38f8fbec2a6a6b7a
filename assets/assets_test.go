package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

func TestResolverPath(t *testing.T) {
	for _, tc := range []struct {
		base, in, want string
	}{
		{"", "/icons/a.svg", "/icons/a.svg"},
		{"", "icons/a.svg", "icons/a.svg"},
		{"/website-favicons", "/icons/a.svg", "/website-favicons/icons/a.svg"},
		{"/website-favicons", "icons/a.svg", "/website-favicons/icons/a.svg"},
		{"/website-favicons/", "/icons/a.svg", "/website-favicons/icons/a.svg"},
		{"sub", "/a.svg", "/sub/a.svg"},
		{"/sub", "https://cdn.example.com/a.svg", "https://cdn.example.com/a.svg"},
		{"/sub", "http://cdn.example.com/a.svg", "http://cdn.example.com/a.svg"},
	} {
		if got := (Resolver{BasePath: tc.base}).Path(tc.in); got != tc.want {
			t.Errorf("base %q, path %q: expected %s, got %s", tc.base, tc.in, tc.want, got)
		}
	}
}

func TestFSFetcher(t *testing.T) {
	f := FSFetcher{FS: fstest.MapFS{
		"icons/a.svg": {Data: []byte("<svg/>")},
	}}
	ctx := context.Background()

	for _, p := range []string{"/icons/a.svg", "icons/a.svg", "/icons/../icons/a.svg"} {
		data, err := f.Fetch(ctx, p)
		if err != nil {
			t.Fatalf("%s: %s", p, err)
		}
		if string(data) != "<svg/>" {
			t.Errorf("%s: unexpected content %q", p, data)
		}
	}

	if _, err := f.Fetch(ctx, "/icons/missing.svg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	for _, p := range []string{"../secret", "https://example.com/a.svg", "/"} {
		if _, err := f.Fetch(ctx, p); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected rejection, got %v", p, err)
		}
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sub/icons/a.svg":
			w.Header().Set("Content-Type", "image/svg+xml")
			w.Write([]byte("<svg/>"))
		case "/sub/icons/broken.svg":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.Client(), srv.URL, Resolver{BasePath: "/sub"})
	ctx := context.Background()

	data, err := f.Fetch(ctx, "/icons/a.svg")
	if err != nil {
		t.Fatalf("can't fetch asset: %s", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("unexpected content %q", data)
	}

	if _, err := f.Fetch(ctx, "/icons/missing.svg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.Fetch(ctx, "/icons/broken.svg"); err == nil || !strings.Contains(err.Error(), "HTTP 500") {
		t.Errorf("expected HTTP 500 error, got %v", err)
	}
}

type slowFetcher struct{}

func (slowFetcher) Fetch(ctx context.Context, _ string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	f := WithTimeout(slowFetcher{}, 10*time.Millisecond)
	if _, err := f.Fetch(context.Background(), "/a.svg"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if _, ok := WithTimeout(slowFetcher{}, 0).(slowFetcher); !ok {
		t.Error("zero timeout should return the fetcher unchanged")
	}
}

func TestNewFetcher(t *testing.T) {
	mem := fstest.MapFS{"icons/a.svg": {Data: []byte("<svg/>")}}

	f, err := NewFetcher(Source{}, mem)
	if err != nil {
		t.Fatal(err)
	}
	if data, err := f.Fetch(context.Background(), "/icons/a.svg"); err != nil || string(data) != "<svg/>" {
		t.Errorf("fallback fetch: %q, %v", data, err)
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "icons"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "icons", "b.svg"), []byte("<svg id='b'/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = NewFetcher(Source{Dir: dir, Timeout: time.Second}, mem)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.(timeoutFetcher); !ok {
		t.Errorf("expected a bounded fetcher, got %T", f)
	}
	if data, err := f.Fetch(context.Background(), "/icons/b.svg"); err != nil || string(data) != "<svg id='b'/>" {
		t.Errorf("directory fetch: %q, %v", data, err)
	}

	f, err = NewFetcher(Source{BaseURL: "https://example.com"}, mem)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := f.(*HTTPFetcher); !ok {
		t.Errorf("expected an HTTP fetcher, got %T", f)
	}

	if _, err := NewFetcher(Source{Dir: dir, BaseURL: "https://example.com"}, mem); err == nil {
		t.Error("expected error for exclusive sources")
	}
}
