// Package logging centralizes slog construction for the CLI: a console handler
// for interactive runs, a JSON handler for machine consumption, and helpers for
// attaching component and run context to every line.
package logging
