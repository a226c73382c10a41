// Package logging provides slog-based logging for the pk3strip CLI.
//
// It offers a TTY-optimized text handler with color support, a JSON
// handler for machine consumption, a multi-handler for fanning out to a
// log file, verbosity-to-level mapping for -v flags, and test helpers.
package logging
