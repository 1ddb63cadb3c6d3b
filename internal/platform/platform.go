// Package platform names the operating-system targets valise can package for.
package platform

import "runtime"

// Supported packaging platforms. Values match GOOS so the host platform
// can be used directly as a packaging target.
const (
	Darwin  = "darwin"
	Linux   = "linux"
	Windows = "windows"
)

// Known returns every platform a bundler can be registered for.
func Known() []string {
	return []string{Darwin, Linux, Windows}
}

// IsKnown reports whether name is a supported packaging platform.
func IsKnown(name string) bool {
	switch name {
	case Darwin, Linux, Windows:
		return true
	}
	return false
}

// Host returns the packaging platform of the machine valise runs on.
func Host() string {
	return runtime.GOOS
}
