package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/log"
	"github.com/valisebuild/valise/internal/output"
)

func newCreateCmd() *cobra.Command {
	var (
		platformFlag string
		formatFlag   string
	)

	cmd := &cobra.Command{
		Use:     "create [APP...]",
		Short:   "Generate app bundles from the project config",
		GroupID: GroupPackage,
		Long: `Generate the bundle skeleton for each app and install the platform
support package into it.

Without arguments, every app in valise.toml is created, in config
order. Support packages are downloaded once and cached in the cache
directory.`,
		Example: `  valise create                    # Create bundles for every app
  valise create myapp              # Create a single app's bundle
  valise create -p linux           # Target a platform explicitly
  valise create -p darwin -f dmg   # Target a specific output format`,
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
				l.Printf("[%s] creating %s/%s bundle\n", app.AppName, t.Platform, t.Format)
				if err := t.Bundler.Create(ctx, app); err != nil {
					return fmt.Errorf("create %s: %w", app.AppName, err)
				}
				out.Printf("Created %s\n", t.Bundler.BundlePath(app))
			}
			return nil
		},
	}

	addTargetFlags(cmd, &platformFlag, &formatFlag)

	return cmd
}
