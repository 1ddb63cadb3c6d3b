package config

// ConfigError reports a problem with the project configuration itself:
// the file is missing, a scope lacks required fields, or a field value
// fails validation. TOML parse errors are not ConfigErrors.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }
