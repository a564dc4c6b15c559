// Package logging provides structured logging utilities for the granolaexport application.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Token sanitization for credential values
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "transcripts.download")
//	logger.Info("downloaded transcript",
//	    logging.Document(id),
//	    logging.Status(logging.StatusDownloaded))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("loaded credentials",
//	    slog.String("token", logging.SanitizeToken(token)))
//
// # Security Considerations
//
// Bearer tokens read from the desktop app's cache grant full account access,
// so they are never logged directly; SanitizeToken reduces them to a length
// indicator.
package logging
