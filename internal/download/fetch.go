package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// chunkSize is the streaming read size for downloads with a known
// content length.
const chunkSize = 1 << 20

// barWidth is the number of cells in the progress bar; each cell is
// worth two percentage points.
const barWidth = 50

// Fetcher downloads resources into a local cache directory. Both
// collaborators are injected so tests can substitute them.
type Fetcher struct {
	client *http.Client
	out    io.Writer
}

// New returns a Fetcher that performs requests with client and writes
// progress and cache notices to out. A nil client falls back to
// http.DefaultClient; a nil out discards output.
func New(client *http.Client, out io.Writer) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if out == nil {
		out = io.Discard
	}
	return &Fetcher{client: client, out: out}
}

// Fetch downloads rawURL into cacheDir, returning the cached file path.
// If the cache path already exists no request is made and the path is
// returned as-is; staleness and corruption are not detected. A 404
// fails with *MissingResourceError, any other non-200 status with
// *BadResourceError.
//
// An error mid-stream can leave a truncated file at the returned path;
// it is not cleaned up, and the next run will treat it as a cache hit.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, cacheDir string) (string, error) {
	target, err := CachePath(rawURL, cacheDir)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(target); err == nil {
		fmt.Fprintf(f.out, "%s already downloaded\n", filepath.Base(target))
		return target, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", rawURL, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", &MissingResourceError{URL: rawURL}
	case resp.StatusCode != http.StatusOK:
		return "", &BadResourceError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}
	defer file.Close()

	if resp.ContentLength < 0 {
		if _, err := io.Copy(file, resp.Body); err != nil {
			return "", fmt.Errorf("write %s: %w", target, err)
		}
	} else if err := f.streamWithProgress(file, resp.Body, resp.ContentLength); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	fmt.Fprintln(f.out)

	return target, nil
}

// streamWithProgress copies body into dst in fixed-size chunks,
// redrawing the progress bar after each chunk.
func (f *Fetcher) streamWithProgress(dst io.Writer, body io.Reader, total int64) error {
	buf := make([]byte, chunkSize)
	var downloaded int64

	for {
		n, readErr := io.ReadFull(body, buf)
		if n > 0 {
			if _, err := dst.Write(buf[:n]); err != nil {
				return err
			}
			downloaded += int64(n)
			f.drawBar(downloaded, total)
		}
		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			// The final chunk is usually short, so a short read is only
			// normal termination once the advertised length arrived. A
			// body cut off before that is a failed transfer, not a
			// complete file.
			if downloaded != total {
				return fmt.Errorf("connection closed after %d of %d bytes", downloaded, total)
			}
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

// drawBar renders the carriage-return-updated bar: one filled cell per
// two percentage points, a dot for each remaining cell.
func (f *Fetcher) drawBar(downloaded, total int64) {
	done := int(barWidth * downloaded / total)
	if done > barWidth {
		// A server sending more bytes than it advertised must not
		// panic the renderer.
		done = barWidth
	}
	fmt.Fprintf(f.out, "\r%s%s %d%%",
		strings.Repeat("█", done),
		strings.Repeat(".", barWidth-done),
		2*done,
	)
}
