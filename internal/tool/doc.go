// Package tool runs the external build toolchains valise delegates to.
//
// This package wraps [os/exec] to capture stderr and surface it in error
// messages, making toolchain failures readable for users. Invocations
// are echoed through the context logger in verbose mode, with timing.
//
// # Design Notes
//
// valise shells out to the native tools (hdiutil, appimagetool, WiX,
// gradle) rather than reimplementing any of them. Bundling and
// compilation belong to those tools; valise only orchestrates.
package tool
