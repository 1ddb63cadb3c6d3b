// Package config loads and materializes the valise project configuration.
//
// Configuration lives in a valise.toml file at the project root. The
// global scope sits under [tool.valise]; each app is declared under
// [tool.valise.app.NAME]. Apps can override fields per packaging target
// with nested sections:
//
//	[tool.valise.app.demo]
//	formal_name = "Demo"
//	version = "1.2.3"
//
//	[tool.valise.app.demo.darwin]
//	icon = "icons/demo.icns"
//
//	[tool.valise.app.demo.darwin.dmg]
//	icon = "icons/demo-installer.icns"
//
// # Merge Order
//
// For a given (platform, output format) pair the effective app fields are
// built by layering: base app fields, then the platform section, then the
// output-format section nested inside it. Later layers win on key
// collision. Sections for other platforms are ignored.
//
// # Materialization
//
// The merged key/value map for each scope is converted into a typed
// struct ([GlobalConfig] or [AppConfig]). Required fields are declared as
// static schema metadata on the struct (cfg:"required" tags); a scope
// missing required keys fails with a [ConfigError] naming every missing
// field. Value-level constraints (URL and email shape) are checked with
// validator tags after decoding.
//
// # Error Kinds
//
// A missing valise.toml and an incomplete section both surface as
// *ConfigError. Malformed TOML propagates as the toml package's parse
// error and is deliberately not wrapped in ConfigError so callers can
// tell the two apart.
package config
