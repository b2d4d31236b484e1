// Package middleware groups the Fiber middleware of the serve command.
//
//   - rayid: tags each request with an X-Ray-ID, reusing a valid incoming one.
//   - auth: checks the X-API-Key header, except on public paths like /health.
//
// Both are installed globally, rayid first so auth failures are traceable.
package middleware
