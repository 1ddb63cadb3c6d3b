package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/valisebuild/valise/internal/bundler/darwin"
	"github.com/valisebuild/valise/internal/bundler/linux"
	"github.com/valisebuild/valise/internal/bundler/windows"
	"github.com/valisebuild/valise/internal/config"
	"github.com/valisebuild/valise/internal/download"
	"github.com/valisebuild/valise/internal/log"
	"github.com/valisebuild/valise/internal/output"
	"github.com/valisebuild/valise/internal/platform"
	"github.com/valisebuild/valise/internal/registry"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	projectDir string
	cacheDir   string

	// Shared state injected into commands
	bundlers *registry.Registry
)

// Command group IDs for organizing help output
const (
	GroupProject = "project"
	GroupPackage = "package"
	GroupUtility = "utility"
)

// Exit codes
const (
	exitError           = 1
	exitConfig          = 2
	exitMissingResource = 3
	exitBadResource     = 4
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "valise",
	Short: "Package apps as native installers for macOS, Linux and Windows",
	Long: `valise packages apps described by a valise.toml file as native
artifacts: .app bundles and dmg images on macOS, AppImages on Linux,
and MSI installers on Windows.

The typical flow is new -> create -> build -> run -> publish.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "valise: failed to get working directory: %v\n", err)
			os.Exit(exitError)
		}
		projectDir = wd
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create logger (stderr for diagnostics)
	logger := log.New(os.Stderr, verbose, quiet)
	ctx = log.WithLogger(ctx, logger)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps error kinds to distinct exit codes so scripted callers
// can tell configuration problems from download failures.
func exitCode(err error) int {
	var cfgErr *config.ConfigError
	if errors.As(err, &cfgErr) {
		return exitConfig
	}
	var missingErr *download.MissingResourceError
	if errors.As(err, &missingErr) {
		return exitMissingResource
	}
	var badErr *download.BadResourceError
	if errors.As(err, &badErr) {
		return exitBadResource
	}
	return exitError
}

// defaultCacheDir is ~/.valise/cache, shared across projects so support
// packages download once per machine.
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".valise", "cache")
	}
	return filepath.Join(home, ".valise", "cache")
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "directory", "C", "", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", defaultCacheDir(), "Download cache directory")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupProject, Title: "Project Commands:"},
		&cobra.Group{ID: GroupPackage, Title: "Packaging Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
	)

	// Bundler registrations; the first format per platform is its
	// default.
	bundlers = registry.New()
	bundlers.Register(platform.Darwin, "app", darwin.NewApp)
	bundlers.Register(platform.Darwin, "dmg", darwin.NewDmg)
	bundlers.Register(platform.Linux, "appimage", linux.NewAppImage)
	bundlers.Register(platform.Windows, "msi", windows.NewMSI)

	// Project commands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newConfigCmd())

	// Packaging commands
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPublishCmd())

	// Utility commands
	rootCmd.AddCommand(newDoctorCmd())
	rootCmd.AddCommand(newVersionCmd())
}
