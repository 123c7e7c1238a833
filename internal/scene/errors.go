package scene

import "errors"

var (
	// ErrDetached is returned (or panicked with) when an operation needs a
	// live entity and gets one that was already destroyed.
	ErrDetached = errors.New("entity destroyed")
	// ErrForeignEntity means the entity belongs to a different scene.
	ErrForeignEntity = errors.New("entity belongs to another scene")
)
