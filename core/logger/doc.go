// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework used by the serve command.
//
// # Correlation
//
// Every pipeline invocation carries a run_id (WithRunID) so the log lines of one
// sync-cards or sync-images run can be grouped. HTTP requests carry a ray_id
// (WithRayID) set by the rayid middleware.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (default, coloured levels) or json (--json-logs)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log = logger.WithRunID(log, uuid.NewString())
//	log.Info("Sync started")
package logger
