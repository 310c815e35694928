package settings

import (
	"errors"
	"fmt"
)

// Errors returned by settings operations.
var (
	// ErrPluginNotFound indicates the plugin id is not known to the
	// connector.
	ErrPluginNotFound = errors.New("settings plugin not found")

	// ErrInvalidSchema indicates a plugin schema is not valid JSON.
	ErrInvalidSchema = errors.New("invalid plugin schema")

	// ErrInvalidSettings indicates user settings are not valid JSON.
	ErrInvalidSettings = errors.New("invalid user settings")

	// ErrRegistryClosed indicates the registry has been closed.
	ErrRegistryClosed = errors.New("settings registry closed")
)

// LoadError wraps a failure to load one plugin.
type LoadError struct {
	// PluginID is the plugin that failed to load.
	PluginID string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading settings plugin %s: %v", e.PluginID, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
