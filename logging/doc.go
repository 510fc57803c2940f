// Package logging builds the slog loggers handed to every other package
// through their WithLogger options.
package logging
