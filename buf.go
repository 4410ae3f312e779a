package bytebuf

import (
	"encoding/binary"
	"io"
)

// Byte-order vocabulary consumed by codecs through WithOrder. Buffers default
// to big-endian (network order).
var (
	BigEndian    binary.ByteOrder = binary.BigEndian
	LittleEndian binary.ByteOrder = binary.LittleEndian
)

// MaxCapacity is the largest representable buffer capacity.
const MaxCapacity = 1<<31 - 1

// Buf is the capability contract shared by every buffer variant: the
// single-backing buffer (heap or direct region), the zero-copy views derived
// from it (slice, duplicate, byte-order, read-only), the composite, and the
// canonical Empty buffer.
//
// Indexed accessors never move the cursors. Sequential accessors advance the
// reader or writer index and fail when too few readable/writable bytes
// remain. Every failure leaves the buffer observably unchanged.
//
// Cursor-driven operations assume a single logical owner at a time; only
// Retain/Release are safe to call concurrently.
type Buf interface {
	// Capacity is the currently allocated size, in bytes.
	Capacity() int
	// MaxCapacity is the growth ceiling.
	MaxCapacity() int
	// SetCapacity grows the buffer to newCapacity, reallocating the backing
	// store when required. Shrinking is unsupported.
	SetCapacity(newCapacity int) error

	Order() binary.ByteOrder
	// WithOrder returns a zero-copy view applying the requested byte order to
	// multi-byte accessors. Requesting the current order returns the receiver
	// itself, without a new reference.
	WithOrder(order binary.ByteOrder) (Buf, error)

	ReaderIndex() int
	WriterIndex() int
	SetReaderIndex(index int) error
	SetWriterIndex(index int) error
	ReadableBytes() int
	WritableBytes() int
	// Clear resets both cursors to zero. Contents are untouched.
	Clear()
	// Skip advances the reader index past n readable bytes.
	Skip(n int) error

	GetByte(index int) (byte, error)
	GetUint16(index int) (uint16, error)
	GetUint32(index int) (uint32, error)
	GetUint64(index int) (uint64, error)
	// GetBytes fills dst from the bytes at index. Bounds are validated before
	// any copy, so a failed call observes no partial transfer.
	GetBytes(index int, dst []byte) error

	SetByte(index int, v byte) error
	SetUint16(index int, v uint16) error
	SetUint32(index int, v uint32) error
	SetUint64(index int, v uint64) error
	SetBytes(index int, src []byte) error

	ReadByte() (byte, error)
	ReadUint16() (uint16, error)
	ReadUint32() (uint32, error)
	ReadUint64() (uint64, error)
	// ReadBytes copies out exactly n readable bytes.
	ReadBytes(n int) ([]byte, error)
	// ReadBytesTo transfers exactly n readable bytes to w, or fails without
	// moving the reader index.
	ReadBytesTo(w io.Writer, n int) error

	WriteByte(v byte) error
	WriteUint16(v uint16) error
	WriteUint32(v uint32) error
	WriteUint64(v uint64) error
	WriteBytes(src []byte) error
	// WriteBytesFrom transfers exactly n bytes from r, or fails without
	// making any of them readable.
	WriteBytesFrom(r io.Reader, n int) error
	// WriteBuf transfers n readable bytes from src, advancing both cursors.
	WriteBuf(src Buf, n int) error

	// Slice returns a zero-copy alias over [index, index+length), sharing the
	// backing store and reference count.
	Slice(index, length int) (Buf, error)
	// Duplicate returns a zero-copy alias over the whole buffer with
	// independent cursors.
	Duplicate() (Buf, error)
	// Copy returns an independent buffer holding freshly copied bytes, with
	// its own reference count starting at 1.
	Copy(index, length int) (Buf, error)
	// ReadOnly returns a view forwarding reads and rejecting every mutator.
	ReadOnly() (Buf, error)

	// Retain increments the shared reference count and returns the receiver,
	// for ownership hand-off across goroutines.
	Retain() (Buf, error)
	// Release decrements the shared reference count, reclaiming the backing
	// store exactly when it reaches zero.
	Release() error
	Refs() int32
	// Alive reports whether the backing store is still reachable.
	Alive() bool
}
