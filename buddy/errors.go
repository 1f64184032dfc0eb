package buddy

import "github.com/pkg/errors"

// IsOutOfMemory reports whether err (or any error it wraps) is
// ErrOutOfMemory, the sentinel spec §7 calls "the out-of-memory code".
func IsOutOfMemory(err error) bool {
	return errors.Is(err, ErrOutOfMemory)
}
