package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/config"
	"github.com/valisebuild/valise/internal/output"
	"github.com/valisebuild/valise/internal/platform"
	"github.com/valisebuild/valise/internal/ui/prompt"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Inspect project configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupProject,
		Long: `Inspect the project configuration.

show prints the effective config for a target after the global,
platform, and format layers are merged.`,
		Example: `  valise config show               # Effective config for the host target
  valise config show -p windows    # Effective config for another platform
  valise config show --json        # Output as JSON`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter valise.toml",
		Args:  cobra.NoArgs,
		Long: `Write a starter valise.toml into the project directory. Unlike
new, this does not scaffold a source tree; use it to bring an existing
code base under valise.`,
		Example: `  valise config init      # Create valise.toml if missing
  valise config init -f   # Overwrite an existing valise.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			path := filepath.Join(projectDir, config.ConfigFileName)
			if _, err := os.Stat(path); err == nil && !force {
				if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
				result, err := prompt.Confirm(fmt.Sprintf("Overwrite %s?", path), false)
				if err != nil {
					return err
				}
				if !result.Confirmed {
					return fmt.Errorf("aborted")
				}
			}

			base := filepath.Base(projectDir)
			content := projectConfig(projectAnswers{
				FormalName:  base,
				AppName:     appNameFrom(base),
				Bundle:      "com.example",
				Version:     "0.0.1",
				Description: "TODO: describe " + base,
			})
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return err
			}

			out.Printf("Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var (
		platformFlag string
		formatFlag   string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			targetPlatform := platformFlag
			if targetPlatform == "" {
				targetPlatform = platform.Host()
			}
			format := formatFlag
			if format == "" {
				def, err := bundlers.DefaultFormat(targetPlatform)
				if err != nil {
					return err
				}
				format = def
			}

			project, err := config.Load(filepath.Join(projectDir, config.ConfigFileName), targetPlatform, format)
			if err != nil {
				return err
			}

			if jsonOutput {
				data, err := json.MarshalIndent(project, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal config: %w", err)
				}
				out.Println(string(data))
				return nil
			}

			out.Printf("Project: %s %s (%s)\n", project.Global.ProjectName, project.Global.Version, project.Global.Bundle)
			out.Printf("Target:  %s/%s\n", targetPlatform, format)
			for _, name := range project.Names {
				app := project.App(name)
				out.Printf("\n[%s]\n", name)
				out.Printf("  formal name: %s\n", app.FormalName)
				out.Printf("  version:     %s\n", app.Version)
				out.Printf("  description: %s\n", app.Description)
				out.Printf("  sources:     %v\n", app.Sources)
				if app.SupportPackageURL != "" {
					out.Printf("  support:     %s\n", app.SupportPackageURL)
				}
			}
			return nil
		},
	}

	addTargetFlags(cmd, &platformFlag, &formatFlag)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
