package bytebuf

import (
	"github.com/pkg/errors"
)

// Static factory surface. Wrap variants never copy bytes; Copied variants
// always do. Inputs with nothing readable normalize to the canonical Empty
// buffer. Buf arguments are borrowed: wrapping retains what it aliases, so
// callers keep (and remain responsible for) their own references.

// NewBuffer allocates a fresh heap buffer through the default allocator.
func NewBuffer(initialCapacity, maxCapacity int) (Buf, error) {
	return defaultAllocator.Allocate(initialCapacity, maxCapacity, false)
}

// Wrap presents b as a buffer without copying. The buffer's capacity and
// growth ceiling are both len(b), the writer index starts at len(b), and
// mutations write through to b. Wrapping an empty slice returns Empty.
func Wrap(b []byte) Buf {
	if len(b) == 0 {
		return Empty
	}
	wrapped := newBuffer(b, len(b), len(b), false, nil, nilInstance)
	wrapped.w = len(b)
	return wrapped
}

// WrapBufs presents the readable bytes of bufs as one logical buffer without
// copying. No readable input returns Empty; exactly one returns a zero-copy
// alias of it; several are assembled into a composite of aliases.
func WrapBufs(bufs ...Buf) (Buf, error) {
	var live []Buf
	for _, b := range bufs {
		if b == nil {
			return nil, errors.Wrap(ErrInvalidArgument, "nil buffer")
		}
		if b.ReadableBytes() > 0 {
			live = append(live, b)
		}
	}
	switch len(live) {
	case 0:
		return Empty, nil
	case 1:
		// wrapped results are always big-endian, whatever the source order
		alias, err := live[0].Slice(live[0].ReaderIndex(), live[0].ReadableBytes())
		if err != nil {
			return nil, err
		}
		if alias.Order() == BigEndian {
			return alias, nil
		}
		normalized, err := alias.WithOrder(BigEndian)
		if err != nil {
			_ = alias.Release()
			return nil, err
		}
		_ = alias.Release()
		return normalized, nil
	}
	c, err := defaultAllocator.Composite(len(live))
	if err != nil {
		return nil, err
	}
	for _, b := range live {
		alias, err := b.Slice(b.ReaderIndex(), b.ReadableBytes())
		if err != nil {
			_ = c.Release()
			return nil, err
		}
		if err := c.AddComponent(alias); err != nil {
			_ = alias.Release()
			_ = c.Release()
			return nil, err
		}
		_ = alias.Release()
	}
	return c, nil
}

// Copied returns a buffer holding a deep copy of the given slices,
// concatenated in order. No bytes returns Empty.
func Copied(slices ...[]byte) (Buf, error) {
	total := 0
	for _, s := range slices {
		total += len(s)
		if total > MaxCapacity || total < 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "combined length exceeds [%d]", MaxCapacity)
		}
	}
	if total == 0 {
		return Empty, nil
	}
	nb, err := defaultAllocator.Allocate(total, MaxCapacity, false)
	if err != nil {
		return nil, err
	}
	for _, s := range slices {
		if len(s) == 0 {
			continue
		}
		if err := nb.WriteBytes(s); err != nil {
			_ = nb.Release()
			return nil, err
		}
	}
	return nb, nil
}

// CopiedBufs returns a buffer holding a deep copy of the readable bytes of
// bufs, concatenated in order. Source cursors are untouched. The inputs must
// agree on byte order, which the result inherits; mixed orders and a combined
// length beyond MaxCapacity fail before any allocation.
func CopiedBufs(bufs ...Buf) (Buf, error) {
	var live []Buf
	total := 0
	for _, b := range bufs {
		if b == nil {
			return nil, errors.Wrap(ErrInvalidArgument, "nil buffer")
		}
		if b.ReadableBytes() == 0 {
			continue
		}
		if len(live) > 0 && b.Order() != live[0].Order() {
			return nil, errors.Wrap(ErrInvalidArgument, "mixed byte orders")
		}
		total += b.ReadableBytes()
		if total > MaxCapacity || total < 0 {
			return nil, errors.Wrapf(ErrInvalidArgument, "combined length exceeds [%d]", MaxCapacity)
		}
		live = append(live, b)
	}
	if total == 0 {
		return Empty, nil
	}
	nb, err := defaultAllocator.Allocate(total, MaxCapacity, false)
	if err != nil {
		return nil, err
	}
	for _, b := range live {
		tmp := make([]byte, b.ReadableBytes())
		if err := b.GetBytes(b.ReaderIndex(), tmp); err != nil {
			_ = nb.Release()
			return nil, err
		}
		if err := nb.WriteBytes(tmp); err != nil {
			_ = nb.Release()
			return nil, err
		}
	}
	setBufferOrder(nb, live[0].Order())
	return nb, nil
}
