// Package prompt provides simple interactive prompts.
//
// This package contains standalone interactive prompts used by the
// project scaffolding wizard and by commands that need to pick one app
// out of several.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
//   - [TextInput]: Single-line text input with an optional default
//   - [Select]: Single selection from a list
package prompt
