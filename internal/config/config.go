package config

// ConfigFileName is the project configuration file valise looks for.
const ConfigFileName = "valise.toml"

// GlobalConfig holds the project-scope settings from [tool.valise].
// The cfg:"required" tag marks fields that must be present in the file;
// everything else is optional.
type GlobalConfig struct {
	ProjectName string `toml:"project_name" cfg:"required"`
	Version     string `toml:"version" cfg:"required"`
	Bundle      string `toml:"bundle" cfg:"required"`
	URL         string `toml:"url" validate:"omitempty,url"`
	Author      string `toml:"author"`
	AuthorEmail string `toml:"author_email" validate:"omitempty,email"`
	License     string `toml:"license"`
}

// AppConfig holds the effective settings for one app after the
// platform and output-format override layers have been applied.
// AppName is injected from the [tool.valise.app.NAME] section key.
type AppConfig struct {
	AppName     string   `toml:"app_name" cfg:"required"`
	FormalName  string   `toml:"formal_name" cfg:"required"`
	Version     string   `toml:"version" cfg:"required"`
	Bundle      string   `toml:"bundle" cfg:"required"`
	Description string   `toml:"description" cfg:"required"`
	Sources     []string `toml:"sources" cfg:"required"`
	Requires    []string `toml:"requires"`
	Icon        string   `toml:"icon"`
	Splash      string   `toml:"splash"`
	URL         string   `toml:"url" validate:"omitempty,url"`
	Author      string   `toml:"author"`
	AuthorEmail string   `toml:"author_email" validate:"omitempty,email"`

	// SupportPackageURL overrides the platform's default support
	// package location.
	SupportPackageURL string `toml:"support_package_url" validate:"omitempty,url"`
}

// Project is a fully materialized valise.toml: the global scope plus
// every app, keyed by name.
type Project struct {
	Global *GlobalConfig
	Apps   map[string]*AppConfig

	// Names preserves the app declaration order from the file.
	Names []string
}

// App returns the app with the given name, or nil.
func (p *Project) App(name string) *AppConfig {
	return p.Apps[name]
}
