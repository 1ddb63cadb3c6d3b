package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/config"
	"github.com/valisebuild/valise/internal/log"
	"github.com/valisebuild/valise/internal/ui/prompt"
)

func newRunCmd() *cobra.Command {
	var (
		platformFlag string
		formatFlag   string
	)

	cmd := &cobra.Command{
		Use:     "run [APP]",
		Short:   "Build and launch an app",
		GroupID: GroupPackage,
		Args:    cobra.MaximumNArgs(1),
		Long: `Launch one app and wait for it to exit. The bundle is created and
built first when needed.

With a single app in the project, the app name is optional. With
several, name one or pick it from the interactive list.`,
		Example: `  valise run            # Run the project's only app
  valise run myapp      # Run a specific app
  valise run -p linux   # Run the linux build`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			t, err := resolveTarget(platformFlag, formatFlag)
			if err != nil {
				return err
			}

			app, err := pickApp(t.Project, args)
			if err != nil {
				return err
			}

			if _, err := os.Stat(t.Bundler.BundlePath(app)); err != nil {
				l.Printf("[%s] bundle missing, creating it first\n", app.AppName)
				if err := t.Bundler.Create(ctx, app); err != nil {
					return fmt.Errorf("create %s: %w", app.AppName, err)
				}
			}
			if err := t.Bundler.Build(ctx, app); err != nil {
				return fmt.Errorf("build %s: %w", app.AppName, err)
			}

			l.Printf("[%s] starting\n", app.AppName)
			return t.Bundler.Run(ctx, app)
		},
	}

	addTargetFlags(cmd, &platformFlag, &formatFlag)

	return cmd
}

// pickApp resolves the single app run operates on. Ambiguity is
// resolved interactively on a terminal, otherwise it is an error.
func pickApp(project *config.Project, args []string) (*config.AppConfig, error) {
	if len(args) == 1 {
		app := project.App(args[0])
		if app == nil {
			return nil, unknownAppError(project, args[0])
		}
		return app, nil
	}

	if len(project.Names) == 1 {
		return project.App(project.Names[0]), nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil, fmt.Errorf("project has %d apps; name one to run", len(project.Names))
	}

	result, err := prompt.Select("Which app?", project.Names)
	if err != nil {
		return nil, err
	}
	if result.Cancelled {
		return nil, fmt.Errorf("cancelled")
	}
	return project.App(result.Value), nil
}
