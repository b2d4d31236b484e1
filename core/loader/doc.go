// Package loader registers the HTTP features of the serve command.
//
// A Feature names itself, says whether it is enabled and mounts its routes.
// Manager.LoadAll mounts the enabled ones in registration order and returns
// their names for the startup log.
package loader
