// Package logger provides structured logging setup and context propagation
// helpers for the application. All components log through log/slog with a
// JSON handler; request-scoped loggers travel in the context.
package logger
