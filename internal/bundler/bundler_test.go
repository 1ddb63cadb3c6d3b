package bundler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/valisebuild/valise/internal/config"
)

func testApp() *config.AppConfig {
	return &config.AppConfig{
		AppName:     "demo",
		FormalName:  "Demo",
		Version:     "1.0.0",
		Bundle:      "com.example",
		Description: "A demo app",
		Sources:     []string{"src/demo"},
	}
}

func TestPlatformPath(t *testing.T) {
	t.Parallel()

	b := &Base{Env: Env{BasePath: "/project"}, Platform: "linux"}
	if got := b.PlatformPath(); got != filepath.Join("/project", "linux") {
		t.Errorf("PlatformPath() = %q", got)
	}
}

func TestCopySources(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	srcDir := filepath.Join(base, "src", "demo")
	if err := os.MkdirAll(filepath.Join(srcDir, "pkg"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "main.txt"), []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "pkg", "lib.txt"), []byte("lib"), 0o644); err != nil {
		t.Fatal(err)
	}

	b := &Base{Env: Env{BasePath: base}, Platform: "linux"}
	dst := filepath.Join(t.TempDir(), "app")

	if err := b.CopySources(testApp(), dst); err != nil {
		t.Fatalf("CopySources() = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "demo", "main.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v1" {
		t.Errorf("copied content = %q, want %q", got, "v1")
	}
	if _, err := os.Stat(filepath.Join(dst, "demo", "pkg", "lib.txt")); err != nil {
		t.Errorf("nested file not copied: %v", err)
	}

	// A second copy replaces the previous tree.
	if err := os.WriteFile(filepath.Join(srcDir, "main.txt"), []byte("v2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := b.CopySources(testApp(), dst); err != nil {
		t.Fatalf("second CopySources() = %v", err)
	}
	got, err = os.ReadFile(filepath.Join(dst, "demo", "main.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "v2" {
		t.Errorf("recopied content = %q, want %q", got, "v2")
	}
}

func TestCopySources_MissingSource(t *testing.T) {
	t.Parallel()

	b := &Base{Env: Env{BasePath: t.TempDir()}, Platform: "linux"}
	err := b.CopySources(testApp(), filepath.Join(t.TempDir(), "app"))
	if err == nil {
		t.Fatal("CopySources() with missing source = nil, want error")
	}
	if !strings.Contains(err.Error(), "src/demo") {
		t.Errorf("error %q does not name the missing source", err.Error())
	}
}

func TestWriteMetadata(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	b := &Base{Env: Env{BasePath: dir}, Platform: "linux"}

	if err := b.WriteMetadata(testApp(), dir); err != nil {
		t.Fatalf("WriteMetadata() = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "valise.bundle.toml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`app_name = "demo"`, `version = "1.0.0"`, `bundle = "com.example"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metadata %q missing %q", data, want)
		}
	}
}
