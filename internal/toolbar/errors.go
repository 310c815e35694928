package toolbar

import "errors"

// Errors returned by toolbar construction.
var (
	// ErrNoDefaultFactory indicates a widget registry was constructed
	// or mutated without a default factory.
	ErrNoDefaultFactory = errors.New("default widget factory is required")
)
