package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/bundler"
	"github.com/valisebuild/valise/internal/config"
	"github.com/valisebuild/valise/internal/download"
	"github.com/valisebuild/valise/internal/output"
	"github.com/valisebuild/valise/internal/platform"
	"github.com/valisebuild/valise/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	var ascii bool

	cmd := &cobra.Command{
		Use:     "doctor",
		Short:   "Diagnose environment and project issues",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Diagnose environment and project issues.

Checks:
- valise.toml parses and is complete
- Download cache directory is writable
- External packaging tools are installed per target`,
		Example: `  valise doctor           # Check for issues
  valise doctor --ascii   # Plain symbols for limited terminals`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)
			styles.SetASCII(ascii)

			var issues int
			check := func(status styles.CheckStatus, label string) {
				out.Println(styles.FormatCheck(status, label))
				if status == styles.CheckFail {
					issues++
				}
			}

			out.Println("Running diagnostics...")
			out.Println("")

			// Project config
			hostFormat, err := bundlers.DefaultFormat(platform.Host())
			if err != nil {
				check(styles.CheckFail, fmt.Sprintf("host platform: %v", err))
			} else {
				project, err := config.Load(filepath.Join(projectDir, config.ConfigFileName), platform.Host(), hostFormat)
				if err != nil {
					check(styles.CheckFail, fmt.Sprintf("config: %v", err))
				} else {
					check(styles.CheckPass, fmt.Sprintf("config valid (%d apps)", len(project.Names)))
				}
			}

			// Cache directory
			if err := os.MkdirAll(cacheDir, 0o755); err != nil {
				check(styles.CheckFail, fmt.Sprintf("cache dir: %v", err))
			} else if probe, err := os.CreateTemp(cacheDir, "doctor-*"); err != nil {
				check(styles.CheckFail, fmt.Sprintf("cache dir not writable: %v", err))
			} else {
				probe.Close()
				os.Remove(probe.Name())
				check(styles.CheckPass, fmt.Sprintf("cache dir writable (%s)", cacheDir))
			}

			// Packaging tools per registered target
			env := bundler.Env{
				BasePath: projectDir,
				CacheDir: cacheDir,
				Fetcher:  download.New(http.DefaultClient, progressOut()),
			}
			for _, p := range bundlers.Platforms() {
				for _, f := range bundlers.Formats(p) {
					construct, err := bundlers.Lookup(p, f)
					if err != nil {
						check(styles.CheckFail, fmt.Sprintf("%s/%s: %v", p, f, err))
						continue
					}
					if err := construct(env).VerifyTools(ctx); err != nil {
						// Missing tools for non-host platforms are
						// expected; only the host platform counts.
						status := styles.CheckWarn
						if p == platform.Host() {
							status = styles.CheckFail
						}
						check(status, fmt.Sprintf("%s/%s: %v", p, f, err))
					} else {
						check(styles.CheckPass, fmt.Sprintf("%s/%s tools installed", p, f))
					}
				}
			}

			out.Println("")
			if issues > 0 {
				return fmt.Errorf("%d issue(s) found", issues)
			}
			out.Println("All checks passed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&ascii, "ascii", false, "Use ASCII symbols instead of unicode")

	return cmd
}
