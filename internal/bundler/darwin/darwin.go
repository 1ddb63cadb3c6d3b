// Package darwin packages apps as macOS .app bundles, distributed
// either as-is or inside a dmg disk image built with hdiutil.
package darwin

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

// supportPackageURL is the default macOS runtime support package.
// Apps can override it with support_package_url.
const supportPackageURL = "https://downloads.valise.build/support/darwin/valise-darwin-support-b7.tar.gz"

// AppBundler produces a bare .app bundle.
type AppBundler struct {
	bundler.Base
}

// NewApp returns the bundler for the darwin "app" output format.
func NewApp(env bundler.Env) bundler.Bundler {
	return &AppBundler{Base: bundler.Base{Env: env, Platform: platform.Darwin}}
}

func (b *AppBundler) BundlePath(app *config.AppConfig) string {
	return filepath.Join(b.PlatformPath(), app.FormalName+".app")
}

func (b *AppBundler) BinaryPath(app *config.AppConfig) string {
	return filepath.Join(b.BundlePath(app), "Contents", "MacOS", app.FormalName)
}

func (b *AppBundler) Create(ctx context.Context, app *config.AppConfig) error {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err == nil {
		return fmt.Errorf("bundle already exists: %s (use update)", bundle)
	}

	contents := filepath.Join(bundle, "Contents")
	for _, dir := range []string{
		filepath.Join(contents, "MacOS"),
		filepath.Join(contents, "Resources", "app"),
		filepath.Join(contents, "Resources", "support"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bundle skeleton: %w", err)
		}
	}

	if err := writeInfoPlist(filepath.Join(contents, "Info.plist"), app); err != nil {
		return err
	}
	if err := writeLauncher(b.BinaryPath(app), app); err != nil {
		return err
	}
	if err := b.WriteMetadata(app, bundle); err != nil {
		return err
	}
	if err := b.CopySources(app, filepath.Join(contents, "Resources", "app")); err != nil {
		return err
	}
	return b.InstallSupport(ctx, app, supportPackageURL, filepath.Join(contents, "Resources", "support"))
}

func (b *AppBundler) Update(ctx context.Context, app *config.AppConfig) error {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err != nil {
		return fmt.Errorf("bundle does not exist: %s (run create first)", bundle)
	}
	return b.CopySources(app, filepath.Join(bundle, "Contents", "Resources", "app"))
}

// Build for the bare app format only ensures the launcher is in place
// and executable; there is nothing to compile.
func (b *AppBundler) Build(ctx context.Context, app *config.AppConfig) error {
	binary := b.BinaryPath(app)
	if _, err := os.Stat(binary); err != nil {
		return fmt.Errorf("app launcher missing: %s (run create first)", binary)
	}
	return os.Chmod(binary, 0o755)
}

func (b *AppBundler) Run(ctx context.Context, app *config.AppConfig) error {
	return tool.RunContext(ctx, b.BundlePath(app), b.BinaryPath(app))
}

// Publish for the app format is the bundle itself.
func (b *AppBundler) Publish(ctx context.Context, app *config.AppConfig) (string, error) {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err != nil {
		return "", fmt.Errorf("bundle does not exist: %s (run create first)", bundle)
	}
	return bundle, nil
}

func (b *AppBundler) VerifyTools(ctx context.Context) error {
	return nil
}

// DmgBundler wraps the app bundle in a compressed dmg.
type DmgBundler struct {
	AppBundler
}

// NewDmg returns the bundler for the darwin "dmg" output format.
func NewDmg(env bundler.Env) bundler.Bundler {
	return &DmgBundler{AppBundler{Base: bundler.Base{Env: env, Platform: platform.Darwin}}}
}

func (b *DmgBundler) Publish(ctx context.Context, app *config.AppConfig) (string, error) {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err != nil {
		return "", fmt.Errorf("bundle does not exist: %s (run create first)", bundle)
	}

	artifact := filepath.Join(b.PlatformPath(), fmt.Sprintf("%s-%s.dmg", app.FormalName, app.Version))
	err := tool.RunContext(ctx, "", "hdiutil", "create",
		"-volname", app.FormalName,
		"-srcfolder", bundle,
		"-ov", "-format", "UDZO",
		artifact,
	)
	if err != nil {
		return "", fmt.Errorf("hdiutil: %w", err)
	}
	return artifact, nil
}

func (b *DmgBundler) VerifyTools(ctx context.Context) error {
	return tool.Check("hdiutil")
}

// writeLauncher places the executable named by CFBundleExecutable. It
// hands off to the runtime installed from the support package, with the
// bundled sources as the program to run.
func writeLauncher(path string, app *config.AppConfig) error {
	script := fmt.Sprintf(`#!/bin/sh
HERE=$(cd "$(dirname "$0")" && pwd)
exec "$HERE/../Resources/support/bin/launcher" "$HERE/../Resources/app/%s" "$@"
`, app.AppName)
	return os.WriteFile(path, []byte(script), 0o755)
}

func writeInfoPlist(path string, app *config.AppConfig) error {
	plist := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>%s</string>
	<key>CFBundleExecutable</key>
	<string>%s</string>
	<key>CFBundleIdentifier</key>
	<string>%s.%s</string>
	<key>CFBundleShortVersionString</key>
	<string>%s</string>
	<key>CFBundlePackageType</key>
	<string>APPL</string>
</dict>
</plist>
`, app.FormalName, app.FormalName, app.Bundle, app.AppName, app.Version)
	return os.WriteFile(path, []byte(plist), 0o644)
}
