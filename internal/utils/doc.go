// Package utils provides shared utility functions for the passtree
// application.
//
// # Terminal Utilities
//
// Functions for terminal detection and interaction:
//   - IsTerminal: checks if stdin is a terminal
//   - ReadSecret: prompts for a secret without echoing input
//
// # I/O Utilities
//
// Functions for reading from stdin and other I/O operations:
//   - ReadStdin: reads all piped data from standard input
package utils
