// Package logging provides structured logging utilities for the potability
// service and CLI.
//
// # Overview
//
// This package wraps the standard library slog package with defaults and
// conventions for consistent logging across components. It supports
// environment-based log level configuration, module/version context
// injection, and source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("potabilityd", "v1.0.0")
//	    slog.Info("processing request", "id", "req-123")
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("potability", "v1.0.0", "warn")
//
// Bridging into net/http:
//
//	srv := &http.Server{ErrorLog: logging.NewLogLogger(slog.LevelError, false)}
//
// # Environment Configuration
//
//	LOG_LEVEL=debug potabilityd
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "server started",
//	    "module": "potabilityd",
//	    "version": "v1.0.0",
//	    "port": 8000
//	}
package logging
