// Package registry maps (platform, output format) pairs to bundler
// constructors. The mapping is explicit and populated at startup; there
// is no dynamic discovery.
package registry

import (
	"fmt"
	"strings"

	"github.com/valisebuild/valise/internal/bundler"
)

// Constructor builds a bundler bound to an environment.
type Constructor func(bundler.Env) bundler.Bundler

type key struct {
	platform string
	format   string
}

// Registry holds the registered bundler constructors. The zero value is
// not usable; use New.
type Registry struct {
	entries  map[key]Constructor
	order    []key
	defaults map[string]string
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		entries:  make(map[key]Constructor),
		defaults: make(map[string]string),
	}
}

// Register adds a constructor for a (platform, format) pair. The first
// format registered for a platform becomes its default. Registering the
// same pair twice panics: that is a wiring bug, not a runtime
// condition.
func (r *Registry) Register(platform, format string, fn Constructor) {
	k := key{platform: platform, format: format}
	if _, exists := r.entries[k]; exists {
		panic(fmt.Sprintf("bundler already registered for %s/%s", platform, format))
	}
	r.entries[k] = fn
	r.order = append(r.order, k)
	if _, ok := r.defaults[platform]; !ok {
		r.defaults[platform] = format
	}
}

// Lookup returns the constructor for a (platform, format) pair. Unknown
// pairs fail with an error listing every registered target.
func (r *Registry) Lookup(platform, format string) (Constructor, error) {
	fn, ok := r.entries[key{platform: platform, format: format}]
	if !ok {
		return nil, fmt.Errorf("unsupported target %s/%s (supported: %s)", platform, format, r.targetList())
	}
	return fn, nil
}

// DefaultFormat returns the default output format for a platform.
func (r *Registry) DefaultFormat(platform string) (string, error) {
	format, ok := r.defaults[platform]
	if !ok {
		return "", fmt.Errorf("unsupported platform %s (supported: %s)", platform, strings.Join(r.Platforms(), ", "))
	}
	return format, nil
}

// Platforms returns every registered platform in registration order.
func (r *Registry) Platforms() []string {
	var platforms []string
	seen := make(map[string]bool)
	for _, k := range r.order {
		if !seen[k.platform] {
			seen[k.platform] = true
			platforms = append(platforms, k.platform)
		}
	}
	return platforms
}

// Formats returns the formats registered for a platform, in
// registration order.
func (r *Registry) Formats(platform string) []string {
	var formats []string
	for _, k := range r.order {
		if k.platform == platform {
			formats = append(formats, k.format)
		}
	}
	return formats
}

func (r *Registry) targetList() string {
	targets := make([]string, len(r.order))
	for i, k := range r.order {
		targets[i] = k.platform + "/" + k.format
	}
	return strings.Join(targets, ", ")
}
