package bundler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valisebuild/valise/internal/config"
	"github.com/valisebuild/valise/internal/download"
)

// Env carries the shared state every bundler operates on. All
// collaborators are injected; bundlers hold no globals.
type Env struct {
	// BasePath is the project root (the directory with valise.toml).
	BasePath string

	// CacheDir is where downloaded support packages are kept across
	// runs.
	CacheDir string

	Global  *config.GlobalConfig
	Fetcher *download.Fetcher
}

// Bundler packages apps for one (platform, output format) pair.
type Bundler interface {
	// BundlePath is the template-generated source form of the app.
	BundlePath(app *config.AppConfig) string

	// BinaryPath is the executable artifact for the app. It may equal
	// BundlePath when the format needs no compilation.
	BinaryPath(app *config.AppConfig) string

	// Create generates the bundle skeleton and installs the platform
	// support package.
	Create(ctx context.Context, app *config.AppConfig) error

	// Update re-copies the app's sources into an existing bundle.
	Update(ctx context.Context, app *config.AppConfig) error

	// Build invokes the platform toolchain on the bundle.
	Build(ctx context.Context, app *config.AppConfig) error

	// Run launches the built app and waits for it to exit.
	Run(ctx context.Context, app *config.AppConfig) error

	// Publish produces the distributable artifact and returns its path.
	Publish(ctx context.Context, app *config.AppConfig) (string, error)

	// VerifyTools checks that the external tools this bundler needs are
	// installed.
	VerifyTools(ctx context.Context) error
}

// Base carries the pieces shared by every platform bundler.
type Base struct {
	Env      Env
	Platform string
}

// PlatformPath is the directory holding every bundle for this
// bundler's platform.
func (b *Base) PlatformPath() string {
	return filepath.Join(b.Env.BasePath, b.Platform)
}

// CopySources copies each of the app's source trees into dst, replacing
// any previous copy.
func (b *Base) CopySources(app *config.AppConfig, dst string) error {
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return fmt.Errorf("create app dir %s: %w", dst, err)
	}
	for _, src := range app.Sources {
		srcPath := filepath.Join(b.Env.BasePath, src)
		if _, err := os.Stat(srcPath); err != nil {
			return fmt.Errorf("source %s: %w", src, err)
		}
		target := filepath.Join(dst, filepath.Base(src))
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("clear %s: %w", target, err)
		}
		if err := os.CopyFS(target, os.DirFS(srcPath)); err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
	}
	return nil
}

// InstallSupport downloads the support package for app (or the
// platform's default when the app does not override it) and unpacks it
// into supportDir. The download is cached in Env.CacheDir, so repeated
// creates hit the network once.
func (b *Base) InstallSupport(ctx context.Context, app *config.AppConfig, defaultURL, supportDir string) error {
	url := app.SupportPackageURL
	if url == "" {
		url = defaultURL
	}
	archive, err := b.Env.Fetcher.Fetch(ctx, url, b.Env.CacheDir)
	if err != nil {
		return err
	}
	if err := extractTarGz(archive, supportDir); err != nil {
		return fmt.Errorf("unpack support package: %w", err)
	}
	return nil
}

// WriteMetadata records the app's identity inside the bundle so update
// and doctor can sanity-check what they are touching.
func (b *Base) WriteMetadata(app *config.AppConfig, bundleDir string) error {
	content := fmt.Sprintf(
		"app_name = %q\nformal_name = %q\nversion = %q\nbundle = %q\n",
		app.AppName, app.FormalName, app.Version, app.Bundle,
	)
	return os.WriteFile(filepath.Join(bundleDir, "valise.bundle.toml"), []byte(content), 0o644)
}
