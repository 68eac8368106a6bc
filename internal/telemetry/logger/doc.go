// Package logger provides structured logging for respkv.
//
// This package wraps log/slog:
//
//   - logger.go: handler construction and the process-wide level
//   - context.go: context propagation of loggers and connection ids
//   - redact.go: sensitive attribute masking and value truncation
//
// Components receive a *slog.Logger. The level is held in a shared
// slog.LevelVar so it can be changed at runtime (config reload).
package logger
