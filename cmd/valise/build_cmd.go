package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/log"
	"github.com/valisebuild/valise/internal/output"
)

func newBuildCmd() *cobra.Command {
	var (
		platformFlag string
		formatFlag   string
		update       bool
	)

	cmd := &cobra.Command{
		Use:     "build [APP...]",
		Short:   "Build app bundles with the platform toolchain",
		GroupID: GroupPackage,
		Long: `Run the platform toolchain on each app's bundle, producing a
runnable artifact. Bundles that do not exist yet are created first.

With --update, sources are re-copied into existing bundles before
building.`,
		Example: `  valise build                # Build every app
  valise build myapp          # Build a single app
  valise build -u             # Refresh sources, then build
  valise build -p windows     # Build for another platform`,
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

			for _, app := range apps {
				if _, err := os.Stat(t.Bundler.BundlePath(app)); err != nil {
					l.Printf("[%s] bundle missing, creating it first\n", app.AppName)
					if err := t.Bundler.Create(ctx, app); err != nil {
						return fmt.Errorf("create %s: %w", app.AppName, err)
					}
				} else if update {
					if err := t.Bundler.Update(ctx, app); err != nil {
						return fmt.Errorf("update %s: %w", app.AppName, err)
					}
				}

				l.Printf("[%s] building\n", app.AppName)
				if err := t.Bundler.Build(ctx, app); err != nil {
					return fmt.Errorf("build %s: %w", app.AppName, err)
				}
				out.Printf("Built %s\n", t.Bundler.BinaryPath(app))
			}
			return nil
		},
	}

	addTargetFlags(cmd, &platformFlag, &formatFlag)
	cmd.Flags().BoolVarP(&update, "update", "u", false, "Re-copy sources before building")

	return cmd
}
