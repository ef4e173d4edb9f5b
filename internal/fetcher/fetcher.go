// Package fetcher retrieves named collector scripts over HTTP and caches
// them as executables in a local directory. A cached script is reused on
// later starts without touching the network.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const userAgent = "otelctl-fetcher"

// Fetcher downloads scripts from a fixed base URL into CacheDir.
type Fetcher struct {
	baseURL  string
	cacheDir string
	client   *http.Client
}

// New creates a Fetcher. timeout bounds the whole download including body
// transfer; zero means no timeout.
func New(baseURL, cacheDir string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		baseURL:  strings.TrimRight(baseURL, "/"),
		cacheDir: cacheDir,
		client:   &http.Client{Timeout: timeout},
	}
}

// Fetch returns the local executable path for the named script, downloading
// it when not cached. name must be a bare file name; anything resembling a
// path is rejected before touching the network or filesystem.
func (f *Fetcher) Fetch(ctx context.Context, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid script name %q", name)
	}
	dst := filepath.Join(f.cacheDir, name)
	if _, err := os.Stat(dst); err == nil {
		return dst, nil
	}
	if err := f.download(ctx, name, dst); err != nil {
		return "", err
	}
	return dst, nil
}

func (f *Fetcher) download(ctx context.Context, name, dst string) error {
	src, err := url.JoinPath(f.baseURL, name)
	if err != nil {
		return fmt.Errorf("build script url: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", src, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", src, resp.Status)
	}

	if err := os.MkdirAll(f.cacheDir, 0o750); err != nil {
		return fmt.Errorf("create script cache: %w", err)
	}
	// Write to a temp file and rename so a torn download never leaves a
	// half-written script at the final path.
	tmp, err := os.CreateTemp(f.cacheDir, name+".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return fmt.Errorf("download %s: %w", src, err)
	}
	if err := tmp.Chmod(0o755); err != nil {
		return fmt.Errorf("mark script executable: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("flush script: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("install script: %w", err)
	}
	return nil
}
