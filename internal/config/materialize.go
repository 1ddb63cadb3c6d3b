package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
)

var validate = validator.New()

// Materialize converts a merged field map into a typed config struct.
//
// Presence of required fields (cfg:"required" tags on T) is checked
// against the map keys before decoding, so a field that is present but
// zero-valued still counts as provided. Missing fields fail with a
// *ConfigError listing them in declaration order. Wrong-typed values
// surface as the decoder's own error, unmodified.
func Materialize[T any](fields map[string]any, contextLabel string) (*T, error) {
	var target T

	if missing := missingFields(reflect.TypeOf(target), fields); len(missing) > 0 {
		quoted := make([]string, len(missing))
		for i, name := range missing {
			quoted[i] = "'" + name + "'"
		}
		return nil, &ConfigError{
			Msg: fmt.Sprintf("%s is incomplete (missing %s)", contextLabel, strings.Join(quoted, ", ")),
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &target,
		TagName: "toml",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(fields); err != nil {
		return nil, err
	}

	if err := validate.Struct(&target); err != nil {
		return nil, &ConfigError{
			Msg: fmt.Sprintf("%s is invalid: %v", contextLabel, err),
		}
	}

	return &target, nil
}

// missingFields returns the required keys declared by t that are absent
// from fields, in struct declaration order.
func missingFields(t reflect.Type, fields map[string]any) []string {
	var missing []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("cfg") != "required" {
			continue
		}
		key, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if key == "" || key == "-" {
			continue
		}
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
