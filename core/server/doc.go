// Package server holds the HTTP preview server configuration.
//
// While the serve command handles the server startup, this package defines the
// configuration structure: the listen port, the API key guarding every request
// and the maximum size of an uploaded definition file.
//
// # Usage
//
// This package is embedded by core/config and read by the serve command.
package server
