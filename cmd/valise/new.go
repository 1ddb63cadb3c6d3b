package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/valisebuild/valise/internal/config"
)

// projectAnswers holds everything the new wizard collects.
type projectAnswers struct {
	FormalName  string
	AppName     string
	Bundle      string
	Version     string
	Description string
	Author      string
	AuthorEmail string
	URL         string
	License     string
}

// appNameFrom derives a machine-friendly app name from a formal name:
// lowercased, spaces become hyphens, everything else non-alphanumeric
// is dropped.
func appNameFrom(formalName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(formalName) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}
	return b.String()
}

// scaffoldProject writes the project skeleton: a directory named after
// the app containing valise.toml and a starter source tree.
func scaffoldProject(parentDir string, a projectAnswers) (string, error) {
	root := filepath.Join(parentDir, a.AppName)
	if _, err := os.Stat(root); err == nil {
		return "", fmt.Errorf("directory already exists: %s", root)
	}

	srcDir := filepath.Join(root, "src", a.AppName)
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		return "", fmt.Errorf("create project skeleton: %w", err)
	}

	if err := os.WriteFile(filepath.Join(root, config.ConfigFileName), []byte(projectConfig(a)), 0o644); err != nil {
		return "", err
	}

	launcher := fmt.Sprintf("#!/bin/sh\necho \"Hello from %s\"\n", a.FormalName)
	if err := os.WriteFile(filepath.Join(srcDir, a.AppName), []byte(launcher), 0o755); err != nil {
		return "", err
	}

	return root, nil
}

// projectConfig renders the starter valise.toml.
func projectConfig(a projectAnswers) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[tool.valise]\n")
	fmt.Fprintf(&b, "project_name = %q\n", a.FormalName)
	fmt.Fprintf(&b, "version = %q\n", a.Version)
	fmt.Fprintf(&b, "bundle = %q\n", a.Bundle)
	if a.URL != "" {
		fmt.Fprintf(&b, "url = %q\n", a.URL)
	}
	if a.Author != "" {
		fmt.Fprintf(&b, "author = %q\n", a.Author)
	}
	if a.AuthorEmail != "" {
		fmt.Fprintf(&b, "author_email = %q\n", a.AuthorEmail)
	}
	if a.License != "" {
		fmt.Fprintf(&b, "license = %q\n", a.License)
	}
	fmt.Fprintf(&b, "\n[tool.valise.app.%s]\n", a.AppName)
	fmt.Fprintf(&b, "formal_name = %q\n", a.FormalName)
	fmt.Fprintf(&b, "version = %q\n", a.Version)
	fmt.Fprintf(&b, "bundle = %q\n", a.Bundle)
	fmt.Fprintf(&b, "description = %q\n", a.Description)
	fmt.Fprintf(&b, "sources = [%q]\n", "src/"+a.AppName)
	return b.String()
}
