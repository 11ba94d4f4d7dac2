// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under ~/.eventbox.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - Watcher: reloads the ConfigStore when the file changes
//   - TemplateStore: user-editable page templates with built-in defaults
package file
