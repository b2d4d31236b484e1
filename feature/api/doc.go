// Package api exposes a read-only HTTP preview of reconciliations.
//
// Routes:
//
//	GET  /health                   liveness probe
//	GET  /games/:gameId/remote     summary of the remote set
//	POST /games/:gameId/diff       classified report for a YAML definition body
//
// The diff endpoint plans like the diff command does and never writes to
// RACache. Append ?format=text to get the report as plain text.
package api
