// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content
// (secret names, paths, matches, errors) that render appropriately
// based on terminal capabilities. When colors are available, content is
// colorized. When NO_COLOR is set or the terminal doesn't support
// colors, text-based decorations (backticks, quotes) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Secret.Sprint("web/github")       // Secret names
//	ui.Path.Sprint("~/.password-store")  // File paths
//	ui.Code.Sprint("passtree init")      // Commands
//	ui.Success.Sprint("✓")               // Success indicators
//	ui.Error.Sprint("✗")                 // Error indicators
//	ui.Match.Sprint("hunter2")           // Search match highlights
//	ui.Muted.Sprint("3 entries")         // De-emphasized text
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
//
// When colors are disabled, formatters apply text decorations:
//   - Code: `backticks`
//   - Secret: 'single quotes'
//   - Muted: (parentheses)
//   - Others: no decoration (self-evident from context)
package ui
