package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/log"
	"github.com/valisebuild/valise/internal/output"
)

func newPublishCmd() *cobra.Command {
	var (
		platformFlag    string
		formatFlag      string
		copyToClipboard bool
	)

	cmd := &cobra.Command{
		Use:     "publish [APP...]",
		Short:   "Produce distributable artifacts",
		GroupID: GroupPackage,
		Long: `Produce the distributable artifact for each app (dmg, AppImage,
MSI, or the bare bundle) and print its path to stdout.

Apps must be built first; publish does not rebuild stale bundles.`,
		Example: `  valise publish                  # Publish every app
  valise publish myapp            # Publish a single app
  valise publish -p darwin -f dmg # Publish a dmg image
  valise publish --copy           # Also copy artifact paths to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			t, err := resolveTarget(platformFlag, formatFlag)
			if err != nil {
				return err
			}
			apps, err := selectApps(t.Project, args)
			if err != nil {
				return err
			}

			var artifacts []string
			for _, app := range apps {
				l.Printf("[%s] publishing %s/%s artifact\n", app.AppName, t.Platform, t.Format)
				artifact, err := t.Bundler.Publish(ctx, app)
				if err != nil {
					return fmt.Errorf("publish %s: %w", app.AppName, err)
				}
				artifacts = append(artifacts, artifact)
				out.Println(artifact)
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(strings.Join(artifacts, "\n")); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}
			return nil
		},
	}

	addTargetFlags(cmd, &platformFlag, &formatFlag)
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy artifact paths to clipboard")

	return cmd
}
