package function

import "errors"

var (
	// ErrInvalidName is returned when registering a function whose name
	// does not follow the uppercase convention.
	ErrInvalidName = errors.New("function: invalid function name")

	// ErrNilFunc is returned when registering a nil implementation.
	ErrNilFunc = errors.New("function: nil function")

	// ErrNotRegistered is returned by Call for an unknown name.
	ErrNotRegistered = errors.New("function: not registered")

	// ErrBadArgument is returned by builtins when an argument has the
	// wrong type or an unsupported option value.
	ErrBadArgument = errors.New("function: bad argument")
)
