package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads a valise.toml and materializes the global scope plus every
// app for the given platform and output format.
//
// A missing file fails with *ConfigError("configuration file not
// found"); malformed TOML propagates as the parser's error. Apps are
// returned in declaration order via Project.Names.
func Load(path, platform, outputFormat string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Msg: "configuration file not found"}
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	scope := tableAt(raw, "tool", "valise")

	global, err := Materialize[GlobalConfig](scalarFields(scope), "Global configuration")
	if err != nil {
		return nil, err
	}

	project := &Project{
		Global: global,
		Apps:   make(map[string]*AppConfig),
	}

	appsTable := tableAt(scope, "app")
	for _, name := range appNames(md) {
		base := tableAt(appsTable, name)
		platformLayer := tableAt(base, platform)
		formatLayer := tableAt(platformLayer, outputFormat)

		merged := mergeLayers(
			scalarFields(base),
			scalarFields(platformLayer),
			scalarFields(formatLayer),
		)
		merged["app_name"] = name

		app, err := Materialize[AppConfig](merged, fmt.Sprintf("Configuration for '%s'", name))
		if err != nil {
			return nil, err
		}

		project.Apps[name] = app
		project.Names = append(project.Names, name)
	}

	return project, nil
}

// appNames extracts the app section names in order of first appearance
// in the file. TOML decodes tables into Go maps, which lose ordering;
// the parser metadata keeps it.
func appNames(md toml.MetaData) []string {
	var names []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) < 4 || key[0] != "tool" || key[1] != "valise" || key[2] != "app" {
			continue
		}
		if name := key[3]; !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
