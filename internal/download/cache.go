package download

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// CachePath maps a URL to its deterministic location inside cacheDir,
// creating cacheDir (and missing parents) if needed. The cache name is
// the final path segment of the URL, with query and fragment stripped.
func CachePath(rawURL, cacheDir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	segments := strings.Split(u.Path, "/")
	cacheName := segments[len(segments)-1]

	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir %s: %w", cacheDir, err)
	}

	return filepath.Join(cacheDir, cacheName), nil
}
