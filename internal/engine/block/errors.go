package block

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a key has no block in a map.
var ErrNotFound = errors.New("block not found")

// NotFound returns ErrNotFound annotated with key.
func NotFound(key string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, key)
}
