package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNotFunction is returned when a called global is not a function.
	ErrNotFunction = errors.New("lua global is not a function")

	// ErrBadResult is returned when a strategy returns something other than
	// a list of position pairs.
	ErrBadResult = errors.New("bad strategy result")
)
