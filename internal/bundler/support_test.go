package bundler

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"
)

func writeTarGz(t *testing.T, entries map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		hdr := &tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "support.tar.gz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtractTarGz(t *testing.T) {
	t.Parallel()

	archive := writeTarGz(t, map[string]string{
		"bin/launcher": "#!/bin/sh",
		"lib/core.so":  "blob",
	})
	dst := t.TempDir()

	if err := extractTarGz(archive, dst); err != nil {
		t.Fatalf("extractTarGz() = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "bin", "launcher"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "#!/bin/sh" {
		t.Errorf("extracted content = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "lib", "core.so")); err != nil {
		t.Errorf("nested entry not extracted: %v", err)
	}
}

func TestExtractTarGz_RejectsEscapingPaths(t *testing.T) {
	t.Parallel()

	archive := writeTarGz(t, map[string]string{
		"../evil.txt": "nope",
	})

	if err := extractTarGz(archive, t.TempDir()); err == nil {
		t.Fatal("extractTarGz() accepted an entry escaping the target dir")
	}
}

func TestExtractTarGz_NotAnArchive(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bogus.tar.gz")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := extractTarGz(path, t.TempDir()); err == nil {
		t.Fatal("extractTarGz() accepted a non-gzip file")
	}
}
