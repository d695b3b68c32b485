// Package logger provides leveled logging for passtree commands.
//
// The logger supports multiple verbosity levels controlled by command-line
// flags. Output is formatted with semantic prefixes and colors.
//
// # Verbosity Levels
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: Shows info messages
//   - --debug: Shows all messages including debug details
//
// Warnings and errors are always shown on stderr.
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Re-encrypted %d secrets", count)
//
// Commands typically create a logger in their PersistentPreRun and the
// store engine carries one for reporting non-fatal history failures.
package logger
