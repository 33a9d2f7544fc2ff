// Package logger provides structured logging utilities built on Go's standard
// slog package: a small factory for environment-specific loggers and a set of
// pre-built attribute helpers for common logging scenarios.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithProduction("authcore"),
//	)
//
//	log.Info("session created",
//		logger.Component("session"),
//		logger.UserID(userID),
//		logger.SessionID(sessionID),
//		logger.ClientIP(ip),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for zero values (nil errors, nil UUIDs,
// empty strings), so call sites never need nil checks:
//
//	log.Error("login failed",
//		logger.Error(err), // no-op when err is nil
//		logger.Event("login"),
//		logger.Result("failure"),
//	)
//
// # Testing with Custom Output
//
//	var buf bytes.Buffer
//	log := logger.New(
//		logger.WithJSONFormatter(),
//		logger.WithOutput(&buf),
//	)
//
//	log.Info("test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
