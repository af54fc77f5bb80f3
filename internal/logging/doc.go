// Package logging provides structured logging for the console and simulator.
//
// It wraps zap with convenience functions for the logging patterns used
// throughout the project. Logging is silent by default so interactive use
// stays clean; set GATECON_LOG_LEVEL to enable output.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (request/response bodies, payload parsing)
//   - Info: Normal operations (section loads, applies, discovery hits)
//   - Warn: Non-fatal issues (unparseable payloads, profile write failures)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Section applied",
//	    zap.String("section", "wifi"),
//	    zap.Int("fields", 9),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// Output goes to stderr in console format so it never interleaves with the
// interactive UI on stdout.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
