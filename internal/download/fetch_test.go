package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

func TestFetch_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	url := srv.URL + "/missing.tar.gz"
	f := New(srv.Client(), &bytes.Buffer{})

	_, err := f.Fetch(context.Background(), url, t.TempDir())
	if err == nil {
		t.Fatal("Fetch() = nil, want error")
	}

	var missing *MissingResourceError
	if !errors.As(err, &missing) {
		t.Fatalf("error type = %T, want *MissingResourceError", err)
	}
	if missing.URL != url {
		t.Errorf("URL = %q, want %q", missing.URL, url)
	}
}

func TestFetch_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	url := srv.URL + "/broken.tar.gz"
	f := New(srv.Client(), &bytes.Buffer{})

	_, err := f.Fetch(context.Background(), url, t.TempDir())
	if err == nil {
		t.Fatal("Fetch() = nil, want error")
	}

	var bad *BadResourceError
	if !errors.As(err, &bad) {
		t.Fatalf("error type = %T, want *BadResourceError", err)
	}
	if bad.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", bad.StatusCode)
	}
	if bad.URL != url {
		t.Errorf("URL = %q, want %q", bad.URL, url)
	}
}

func TestFetch_StreamsChunksWithProgress(t *testing.T) {
	t.Parallel()

	// Three full 1 MiB chunks.
	payload := bytes.Repeat([]byte{0xAB}, 3*chunkSize)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(len(payload)))
		w.Write(payload)
	}))
	defer srv.Close()

	var out bytes.Buffer
	f := New(srv.Client(), &out)

	path, err := f.Fetch(context.Background(), srv.URL+"/support.bin", t.TempDir())
	if err != nil {
		t.Fatalf("Fetch() = %v, want nil", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(len(payload)) {
		t.Errorf("file size = %d, want %d", info.Size(), len(payload))
	}

	got := out.String()
	if !strings.HasSuffix(got, "100%\n") {
		t.Errorf("progress output %q does not finish at 100%% with a newline", got)
	}
	if !strings.Contains(got, strings.Repeat("█", barWidth)+" 100%") {
		t.Error("final bar is not fully filled")
	}
	// One redraw per chunk, carriage-return separated.
	if n := strings.Count(got, "\r"); n != 3 {
		t.Errorf("bar redrawn %d times, want 3 (one per chunk)", n)
	}
}

func TestFetch_NoContentLength(t *testing.T) {
	t.Parallel()

	payload := []byte("support package body")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Flushing before writing forces chunked encoding, so the
		// client sees no Content-Length.
		w.WriteHeader(http.StatusOK)
		w.(http.Flusher).Flush()
		w.Write(payload)
	}))
	defer srv.Close()

	var out bytes.Buffer
	f := New(srv.Client(), &out)

	path, err := f.Fetch(context.Background(), srv.URL+"/support.bin", t.TempDir())
	if err != nil {
		t.Fatalf("Fetch() = %v, want nil", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("file content = %q, want %q", data, payload)
	}
	if strings.Contains(out.String(), "█") {
		t.Errorf("progress bar drawn without a content length: %q", out.String())
	}
}

func TestFetch_CacheHitSkipsNetwork(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	payload := []byte("cached once")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write(payload)
	}))
	defer srv.Close()

	dir := t.TempDir()
	url := srv.URL + "/once.bin"
	f := New(srv.Client(), &bytes.Buffer{})

	first, err := f.Fetch(context.Background(), url, dir)
	if err != nil {
		t.Fatalf("first Fetch() = %v", err)
	}
	if got := requests.Load(); got != 1 {
		t.Fatalf("requests after first fetch = %d, want 1", got)
	}

	var out bytes.Buffer
	f2 := New(srv.Client(), &out)
	second, err := f2.Fetch(context.Background(), url, dir)
	if err != nil {
		t.Fatalf("second Fetch() = %v", err)
	}

	if got := requests.Load(); got != 1 {
		t.Errorf("requests after second fetch = %d, want 1 (cache hit)", got)
	}
	if first != second {
		t.Errorf("paths differ: %q != %q", first, second)
	}
	if want := "once.bin already downloaded\n"; out.String() != want {
		t.Errorf("cache notice = %q, want %q", out.String(), want)
	}
}

func TestFetch_PreexistingFileIsACacheHit(t *testing.T) {
	t.Parallel()

	// No server at all: an existing file must short-circuit before any
	// network access.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "asset.zip"), []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := New(nil, &bytes.Buffer{})
	path, err := f.Fetch(context.Background(), "http://127.0.0.1:1/dl/asset.zip", dir)
	if err != nil {
		t.Fatalf("Fetch() = %v, want cache hit", err)
	}
	if path != filepath.Join(dir, "asset.zip") {
		t.Errorf("path = %q", path)
	}
}

func TestFetch_TruncatedBodyIsAnError(t *testing.T) {
	t.Parallel()

	// Advertise two chunks, deliver one, then drop the connection.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", fmt.Sprint(2*chunkSize))
		w.Write(bytes.Repeat([]byte{0xCD}, chunkSize))
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	f := New(srv.Client(), &bytes.Buffer{})

	_, err := f.Fetch(context.Background(), srv.URL+"/support.bin", cacheDir)
	if err == nil {
		t.Fatal("Fetch() of a truncated body = nil, want error")
	}
	if !strings.Contains(err.Error(), "1048576 of 2097152 bytes") {
		t.Errorf("error %q should report the received and advertised byte counts", err.Error())
	}

	// The short file is left behind; only the error tells the caller
	// the transfer failed.
	info, statErr := os.Stat(filepath.Join(cacheDir, "support.bin"))
	if statErr != nil {
		t.Fatalf("truncated file missing: %v", statErr)
	}
	if info.Size() != chunkSize {
		t.Errorf("truncated file size = %d, want %d", info.Size(), int64(chunkSize))
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("too late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := New(srv.Client(), &bytes.Buffer{})
	_, err := f.Fetch(ctx, srv.URL+"/asset.zip", t.TempDir())
	if err == nil {
		t.Fatal("Fetch() with cancelled context = nil, want error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
