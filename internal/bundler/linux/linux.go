// Package linux packages apps as AppDir trees and turns them into
// AppImages with appimagetool.
package linux

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valisebuild/valise/internal/bundler"
	"github.com/valisebuild/valise/internal/config"
	"github.com/valisebuild/valise/internal/platform"
	"github.com/valisebuild/valise/internal/tool"
)

const supportPackageURL = "https://downloads.valise.build/support/linux/valise-linux-support-b7.tar.gz"

// AppImageBundler produces an AppDir and publishes it as an AppImage.
type AppImageBundler struct {
	bundler.Base
}

// NewAppImage returns the bundler for the linux "appimage" output format.
func NewAppImage(env bundler.Env) bundler.Bundler {
	return &AppImageBundler{Base: bundler.Base{Env: env, Platform: platform.Linux}}
}

func (b *AppImageBundler) BundlePath(app *config.AppConfig) string {
	return filepath.Join(b.PlatformPath(), app.FormalName+".AppDir")
}

func (b *AppImageBundler) BinaryPath(app *config.AppConfig) string {
	return filepath.Join(b.BundlePath(app), "AppRun")
}

func (b *AppImageBundler) Create(ctx context.Context, app *config.AppConfig) error {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err == nil {
		return fmt.Errorf("bundle already exists: %s (use update)", bundle)
	}

	for _, dir := range []string{
		filepath.Join(bundle, "usr", "app"),
		filepath.Join(bundle, "usr", "support"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bundle skeleton: %w", err)
		}
	}

	if err := writeDesktopEntry(bundle, app); err != nil {
		return err
	}
	if err := b.WriteMetadata(app, bundle); err != nil {
		return err
	}
	if err := b.CopySources(app, filepath.Join(bundle, "usr", "app")); err != nil {
		return err
	}
	return b.InstallSupport(ctx, app, supportPackageURL, filepath.Join(bundle, "usr", "support"))
}

func (b *AppImageBundler) Update(ctx context.Context, app *config.AppConfig) error {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err != nil {
		return fmt.Errorf("bundle does not exist: %s (run create first)", bundle)
	}
	return b.CopySources(app, filepath.Join(bundle, "usr", "app"))
}

// Build makes the AppRun entry point executable. Compilation belongs to
// the support package's own toolchain.
func (b *AppImageBundler) Build(ctx context.Context, app *config.AppConfig) error {
	appRun := b.BinaryPath(app)
	if _, err := os.Stat(appRun); err != nil {
		return fmt.Errorf("AppRun missing: %s (run create first)", appRun)
	}
	return os.Chmod(appRun, 0o755)
}

func (b *AppImageBundler) Run(ctx context.Context, app *config.AppConfig) error {
	return tool.RunContext(ctx, b.BundlePath(app), b.BinaryPath(app))
}

func (b *AppImageBundler) Publish(ctx context.Context, app *config.AppConfig) (string, error) {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err != nil {
		return "", fmt.Errorf("bundle does not exist: %s (run create first)", bundle)
	}

	artifact := filepath.Join(b.PlatformPath(), fmt.Sprintf("%s-%s-x86_64.AppImage", app.FormalName, app.Version))
	if err := tool.RunContext(ctx, b.PlatformPath(), "appimagetool", bundle, artifact); err != nil {
		return "", fmt.Errorf("appimagetool: %w", err)
	}
	return artifact, nil
}

func (b *AppImageBundler) VerifyTools(ctx context.Context) error {
	return tool.Check("appimagetool")
}

func writeDesktopEntry(bundle string, app *config.AppConfig) error {
	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
Icon=%s
Categories=Utility;
`, app.FormalName, app.AppName, app.AppName)

	path := filepath.Join(bundle, app.AppName+".desktop")
	if err := os.WriteFile(path, []byte(entry), 0o644); err != nil {
		return err
	}

	appRun := fmt.Sprintf(`#!/bin/sh
HERE="$(dirname "$(readlink -f "$0")")"
exec "$HERE/usr/support/bin/launcher" "$HERE/usr/app/%s" "$@"
`, app.AppName)
	return os.WriteFile(filepath.Join(bundle, "AppRun"), []byte(appRun), 0o755)
}
