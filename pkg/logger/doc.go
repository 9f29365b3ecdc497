// Package logger builds the structured slog logger shared by both services.
// Development environments get human-readable text output, production gets JSON.
package logger
