// Package logging provides slog-based structured logging for clipforge.
//
// Loggers are constructed once at startup from configuration and threaded
// through the analyzers explicitly. Components attach a standardized
// "component" attribute via NewComponentLogger so console output stays
// scannable and JSON output stays queryable.
package logging
