// Package logging builds the log/slog loggers used across the engine.
// Output is JSON by default; LoggerConfig.Format selects the text handler instead.
package logging
