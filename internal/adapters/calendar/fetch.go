package calendar

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher loads ICS content from HTTP sources or local files. Fetched
// HTTP responses are cached on disk so the journal stays usable offline.
type Fetcher struct {
	client   *http.Client
	cacheDir string
	// baseDir anchors relative file sources, normally the config directory.
	baseDir string
}

// NewFetcher creates a fetcher caching under cacheDir.
func NewFetcher(cacheDir, baseDir string) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		cacheDir: cacheDir,
		baseDir:  baseDir,
	}
}

// Fetch returns the ICS content of one source. HTTP failures fall back
// to the cached copy from a previous fetch, if any.
func (f *Fetcher) Fetch(source string) (string, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return f.fetchHTTP(source)
	}
	return f.fetchFile(strings.TrimPrefix(source, "file://"))
}

func (f *Fetcher) fetchFile(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read calendar file: %w", err)
	}
	return string(data), nil
}

func (f *Fetcher) fetchHTTP(url string) (string, error) {
	content, err := f.download(url)
	if err != nil {
		if cached, cacheErr := os.ReadFile(f.cachePath(url)); cacheErr == nil {
			return string(cached), nil
		}
		return "", err
	}

	if f.cacheDir != "" {
		if mkErr := os.MkdirAll(f.cacheDir, 0o755); mkErr == nil {
			_ = os.WriteFile(f.cachePath(url), []byte(content), 0o644)
		}
	}
	return content, nil
}

func (f *Fetcher) download(url string) (string, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch calendar: status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read calendar response: %w", err)
	}
	return string(data), nil
}

func (f *Fetcher) cachePath(url string) string {
	return filepath.Join(f.cacheDir, fmt.Sprintf("%x.ics", sha1.Sum([]byte(url))))
}
