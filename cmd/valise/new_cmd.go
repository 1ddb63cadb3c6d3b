package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/output"
	"github.com/valisebuild/valise/internal/ui/prompt"
)

func newNewCmd() *cobra.Command {
	var answers projectAnswers

	cmd := &cobra.Command{
		Use:     "new",
		Short:   "Scaffold a new project",
		GroupID: GroupProject,
		Args:    cobra.NoArgs,
		Long: `Scaffold a new project: a directory containing valise.toml and a
starter source tree.

On a terminal, missing values are collected interactively. In
scripts, pass every required value as a flag.`,
		Example: `  valise new                          # Interactive wizard
  valise new --name "My App" --bundle com.example \
    --description "Does things"       # Non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			if err := collectAnswers(&answers); err != nil {
				return err
			}

			root, err := scaffoldProject(projectDir, answers)
			if err != nil {
				return err
			}

			out.Printf("Created %s\n", root)
			out.Printf("Next: cd %s && valise create\n", answers.AppName)
			return nil
		},
	}

	cmd.Flags().StringVar(&answers.FormalName, "name", "", "Formal app name (e.g. \"My App\")")
	cmd.Flags().StringVar(&answers.AppName, "app-name", "", "Machine-friendly app name (default: derived from --name)")
	cmd.Flags().StringVar(&answers.Bundle, "bundle", "", "Reverse-domain bundle identifier (e.g. com.example)")
	cmd.Flags().StringVar(&answers.Version, "app-version", "0.0.1", "Initial version number")
	cmd.Flags().StringVar(&answers.Description, "description", "", "One-line app description")
	cmd.Flags().StringVar(&answers.Author, "author", "", "Author name")
	cmd.Flags().StringVar(&answers.AuthorEmail, "author-email", "", "Author email address")
	cmd.Flags().StringVar(&answers.URL, "url", "", "Project homepage")
	cmd.Flags().StringVar(&answers.License, "license", "BSD-3-Clause", "Project license")

	return cmd
}

// collectAnswers fills in the values the flags did not provide,
// prompting on a terminal and failing otherwise.
func collectAnswers(a *projectAnswers) error {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	ask := func(target *string, label, placeholder, def string) error {
		if *target != "" {
			return nil
		}
		if !interactive {
			if def != "" {
				*target = def
				return nil
			}
			return fmt.Errorf("%s is required (stdin is not a terminal; pass it as a flag)", label)
		}
		result, err := prompt.TextInput(label, placeholder, def)
		if err != nil {
			return err
		}
		if result.Cancelled {
			return fmt.Errorf("cancelled")
		}
		if result.Value == "" {
			return fmt.Errorf("%s is required", label)
		}
		*target = result.Value
		return nil
	}

	if err := ask(&a.FormalName, "Formal name", "My App", ""); err != nil {
		return err
	}
	if err := ask(&a.AppName, "App name", "", appNameFrom(a.FormalName)); err != nil {
		return err
	}
	if err := ask(&a.Bundle, "Bundle identifier", "com.example", ""); err != nil {
		return err
	}
	if err := ask(&a.Description, "Description", "What does this app do?", ""); err != nil {
		return err
	}

	// Optional fields are only prompted for interactively; empty
	// answers leave them out of the generated config.
	if interactive {
		for _, q := range []struct {
			target      *string
			label       string
			placeholder string
		}{
			{&a.Author, "Author", ""},
			{&a.AuthorEmail, "Author email", "you@example.com"},
			{&a.URL, "Project URL", "https://example.com"},
		} {
			if *q.target != "" {
				continue
			}
			result, err := prompt.TextInput(q.label, q.placeholder, "")
			if err != nil {
				return err
			}
			if result.Cancelled {
				return fmt.Errorf("cancelled")
			}
			*q.target = result.Value
		}
	}

	return nil
}
