// Package slog provides log/slog decorators for eventscout services.
package slog
