package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/log"
	"github.com/valisebuild/valise/internal/output"
)

func newUpdateCmd() *cobra.Command {
	var (
		platformFlag string
		formatFlag   string
	)

	cmd := &cobra.Command{
		Use:     "update [APP...]",
		Short:   "Re-copy app sources into existing bundles",
		GroupID: GroupPackage,
		Long: `Copy each app's sources into its existing bundle, replacing the
previous copy. The bundle skeleton and support package are left
untouched; run create first if the bundle does not exist yet.`,
		Example: `  valise update             # Update every app's bundle
  valise update myapp        # Update a single app
  valise update -p windows   # Update bundles for another platform`,
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
				l.Printf("[%s] updating sources\n", app.AppName)
				if err := t.Bundler.Update(ctx, app); err != nil {
					return fmt.Errorf("update %s: %w", app.AppName, err)
				}
				out.Printf("Updated %s\n", t.Bundler.BundlePath(app))
			}
			return nil
		},
	}

	addTargetFlags(cmd, &platformFlag, &formatFlag)

	return cmd
}
