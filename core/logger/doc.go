// Package logger builds the zap logger shared by the commands and the preview
// server.
//
// Commands print reports on stdout and everything else through this logger,
// on stderr. Level debug switches to zap's development preset; format is
// console (colored levels, ISO8601 times) or json.
//
// WithRayID tags a request-scoped logger with the id set by the rayid
// middleware:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Diff failed", zap.Error(err))
package logger
