package bytebuf

import "github.com/pkg/errors"

// Failure causes surfaced by every operation in this package. Callers
// discriminate with errors.Is; the wrapped message carries the detail.
var (
	// ErrOutOfBounds: an index or length fell outside the valid range, or
	// too few readable/writable bytes remained. The buffer is unchanged.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrCapacityExceeded: a write or resize would push the buffer past its
	// max capacity. The buffer is unchanged.
	ErrCapacityExceeded = errors.New("max capacity exceeded")

	// ErrReadOnly: a mutating call on a read-only buffer.
	ErrReadOnly = errors.New("buffer is read-only")

	// ErrReleased: access after the shared reference count reached zero, or
	// an excess release. Always a caller lifetime bug.
	ErrReleased = errors.New("buffer released")

	// ErrInvalidArgument: rejected before any allocation or side effect.
	ErrInvalidArgument = errors.New("invalid argument")
)

func checkRange(index, length, capacity int) error {
	if index < 0 || length < 0 || index+length > capacity || index+length < 0 {
		return errors.Wrapf(ErrOutOfBounds, "range [%d:%d) capacity [%d]", index, index+length, capacity)
	}
	return nil
}
