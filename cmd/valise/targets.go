package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/bundler"
	"github.com/valisebuild/valise/internal/config"
	"github.com/valisebuild/valise/internal/download"
	"github.com/valisebuild/valise/internal/platform"
)

// target is a resolved (platform, format, bundler, project) tuple that
// the packaging commands operate on.
type target struct {
	Platform string
	Format   string
	Bundler  bundler.Bundler
	Project  *config.Project
}

// addTargetFlags registers the --platform/--format pair shared by the
// packaging commands.
func addTargetFlags(cmd *cobra.Command, platformFlag, formatFlag *string) {
	cmd.Flags().StringVarP(platformFlag, "platform", "p", "", "Target platform (default: host platform)")
	cmd.Flags().StringVarP(formatFlag, "format", "f", "", "Output format (default: the platform's default format)")
}

// resolveTarget loads the project config for the requested platform and
// format, defaulting to the host platform and that platform's default
// output format.
func resolveTarget(platformFlag, formatFlag string) (*target, error) {
	targetPlatform := platformFlag
	if targetPlatform == "" {
		targetPlatform = platform.Host()
	}

	format := formatFlag
	if format == "" {
		def, err := bundlers.DefaultFormat(targetPlatform)
		if err != nil {
			return nil, err
		}
		format = def
	}

	construct, err := bundlers.Lookup(targetPlatform, format)
	if err != nil {
		return nil, err
	}

	project, err := config.Load(filepath.Join(projectDir, config.ConfigFileName), targetPlatform, format)
	if err != nil {
		return nil, err
	}

	env := bundler.Env{
		BasePath: projectDir,
		CacheDir: cacheDir,
		Global:   project.Global,
		Fetcher:  download.New(http.DefaultClient, progressOut()),
	}

	return &target{
		Platform: targetPlatform,
		Format:   format,
		Bundler:  construct(env),
		Project:  project,
	}, nil
}

// progressOut returns the writer download progress is drawn on. The
// bar redraws with carriage returns, which is noise in logs, so it is
// only shown on a terminal (and never with --quiet).
func progressOut() io.Writer {
	if quiet {
		return io.Discard
	}
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return os.Stderr
	}
	return io.Discard
}

// selectApps resolves the positional app names against the project,
// preserving config declaration order. No names selects every app.
func selectApps(project *config.Project, names []string) ([]*config.AppConfig, error) {
	if len(names) == 0 {
		apps := make([]*config.AppConfig, 0, len(project.Names))
		for _, name := range project.Names {
			apps = append(apps, project.App(name))
		}
		return apps, nil
	}

	apps := make([]*config.AppConfig, 0, len(names))
	for _, name := range names {
		app := project.App(name)
		if app == nil {
			return nil, unknownAppError(project, name)
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// unknownAppError builds an error for an unknown app name, suggesting
// close matches from the project.
func unknownAppError(project *config.Project, name string) error {
	matches := fuzzy.Find(name, project.Names)
	if len(matches) > 0 {
		suggestions := make([]string, 0, min(len(matches), 3))
		for i, m := range matches {
			if i == 3 {
				break
			}
			suggestions = append(suggestions, m.Str)
		}
		return fmt.Errorf("unknown app %q (did you mean %s?)", name, strings.Join(suggestions, ", "))
	}
	return fmt.Errorf("unknown app %q (apps: %s)", name, strings.Join(project.Names, ", "))
}
