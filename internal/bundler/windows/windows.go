// Package windows packages apps as a plain directory bundle and builds
// an MSI installer with the WiX toolset (candle + light).
package windows

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

const supportPackageURL = "https://downloads.valise.build/support/windows/valise-windows-support-b7.tar.gz"

// MSIBundler produces a directory bundle published as an MSI installer.
type MSIBundler struct {
	bundler.Base
}

// NewMSI returns the bundler for the windows "msi" output format.
func NewMSI(env bundler.Env) bundler.Bundler {
	return &MSIBundler{Base: bundler.Base{Env: env, Platform: platform.Windows}}
}

func (b *MSIBundler) BundlePath(app *config.AppConfig) string {
	return filepath.Join(b.PlatformPath(), app.FormalName)
}

func (b *MSIBundler) BinaryPath(app *config.AppConfig) string {
	return filepath.Join(b.BundlePath(app), app.AppName+".bat")
}

func (b *MSIBundler) Create(ctx context.Context, app *config.AppConfig) error {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err == nil {
		return fmt.Errorf("bundle already exists: %s (use update)", bundle)
	}

	for _, dir := range []string{
		filepath.Join(bundle, "src"),
		filepath.Join(bundle, "support"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bundle skeleton: %w", err)
		}
	}

	if err := writeInstallerSource(bundle, app); err != nil {
		return err
	}
	if err := writeLauncher(b.BinaryPath(app), app); err != nil {
		return err
	}
	if err := b.WriteMetadata(app, bundle); err != nil {
		return err
	}
	if err := b.CopySources(app, filepath.Join(bundle, "src")); err != nil {
		return err
	}
	return b.InstallSupport(ctx, app, supportPackageURL, filepath.Join(bundle, "support"))
}

func (b *MSIBundler) Update(ctx context.Context, app *config.AppConfig) error {
	bundle := b.BundlePath(app)
	if _, err := os.Stat(bundle); err != nil {
		return fmt.Errorf("bundle does not exist: %s (run create first)", bundle)
	}
	return b.CopySources(app, filepath.Join(bundle, "src"))
}

// Build compiles the installer source with candle; light links it in
// Publish.
func (b *MSIBundler) Build(ctx context.Context, app *config.AppConfig) error {
	bundle := b.BundlePath(app)
	wxs := filepath.Join(bundle, app.AppName+".wxs")
	if _, err := os.Stat(wxs); err != nil {
		return fmt.Errorf("installer source missing: %s (run create first)", wxs)
	}
	if err := tool.RunContext(ctx, bundle, "candle", wxs); err != nil {
		return fmt.Errorf("candle: %w", err)
	}
	return nil
}

func (b *MSIBundler) Run(ctx context.Context, app *config.AppConfig) error {
	return tool.RunContext(ctx, b.BundlePath(app), b.BinaryPath(app))
}

func (b *MSIBundler) Publish(ctx context.Context, app *config.AppConfig) (string, error) {
	bundle := b.BundlePath(app)
	wixobj := filepath.Join(bundle, app.AppName+".wixobj")
	if _, err := os.Stat(wixobj); err != nil {
		return "", fmt.Errorf("installer object missing: %s (run build first)", wixobj)
	}

	artifact := filepath.Join(b.PlatformPath(), fmt.Sprintf("%s-%s.msi", app.FormalName, app.Version))
	if err := tool.RunContext(ctx, bundle, "light", "-o", artifact, wixobj); err != nil {
		return "", fmt.Errorf("light: %w", err)
	}
	return artifact, nil
}

func (b *MSIBundler) VerifyTools(ctx context.Context) error {
	if err := tool.Check("candle"); err != nil {
		return err
	}
	return tool.Check("light")
}

// writeLauncher places the batch file Run executes. It hands off to the
// runtime installed from the support package, with the bundled sources
// as the program to run.
func writeLauncher(path string, app *config.AppConfig) error {
	script := fmt.Sprintf("@echo off\r\n\"%%~dp0support\\bin\\launcher.exe\" \"%%~dp0src\\%s\" %%*\r\n", app.AppName)
	return os.WriteFile(path, []byte(script), 0o755)
}

func writeInstallerSource(bundle string, app *config.AppConfig) error {
	wxs := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Wix xmlns="http://schemas.microsoft.com/wix/2006/wi">
  <Product Id="*" Name="%s" Version="%s" Manufacturer="%s"
           Language="1033" UpgradeCode="00000000-0000-0000-0000-000000000000">
    <Package InstallerVersion="200" Compressed="yes" />
    <MediaTemplate EmbedCab="yes" />
    <Directory Id="TARGETDIR" Name="SourceDir">
      <Directory Id="ProgramFilesFolder">
        <Directory Id="INSTALLDIR" Name="%s" />
      </Directory>
    </Directory>
  </Product>
</Wix>
`, app.FormalName, app.Version, app.Bundle, app.FormalName)
	return os.WriteFile(filepath.Join(bundle, app.AppName+".wxs"), []byte(wxs), 0o644)
}
