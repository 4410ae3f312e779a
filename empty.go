package bytebuf

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Empty is the canonical zero-capacity buffer every all-empty wrap
// normalizes to. It is immutable, permanently alive, and owns no backing
// store, so releasing it reclaims nothing.
var Empty Buf = &emptyBuf{}

type emptyBuf struct{}

func (self *emptyBuf) Capacity() int           { return 0 }
func (self *emptyBuf) MaxCapacity() int        { return 0 }
func (self *emptyBuf) Order() binary.ByteOrder { return BigEndian }
func (self *emptyBuf) ReaderIndex() int        { return 0 }
func (self *emptyBuf) WriterIndex() int        { return 0 }
func (self *emptyBuf) ReadableBytes() int      { return 0 }
func (self *emptyBuf) WritableBytes() int      { return 0 }
func (self *emptyBuf) Clear()                  {}

func (self *emptyBuf) SetCapacity(int) error {
	return errors.Wrap(ErrReadOnly, "empty buffer")
}

func (self *emptyBuf) SetReaderIndex(index int) error {
	if index != 0 {
		return errors.Wrapf(ErrOutOfBounds, "reader index [%d]", index)
	}
	return nil
}

func (self *emptyBuf) SetWriterIndex(index int) error {
	if index != 0 {
		return errors.Wrapf(ErrOutOfBounds, "writer index [%d]", index)
	}
	return nil
}

func (self *emptyBuf) Skip(n int) error {
	if n != 0 {
		return errors.Wrapf(ErrOutOfBounds, "skip [%d]", n)
	}
	return nil
}

func (self *emptyBuf) GetByte(int) (byte, error)     { return 0, errors.Wrap(ErrOutOfBounds, "empty buffer") }
func (self *emptyBuf) GetUint16(int) (uint16, error) { return 0, errors.Wrap(ErrOutOfBounds, "empty buffer") }
func (self *emptyBuf) GetUint32(int) (uint32, error) { return 0, errors.Wrap(ErrOutOfBounds, "empty buffer") }
func (self *emptyBuf) GetUint64(int) (uint64, error) { return 0, errors.Wrap(ErrOutOfBounds, "empty buffer") }

func (self *emptyBuf) GetBytes(index int, dst []byte) error {
	return checkRange(index, len(dst), 0)
}

func (self *emptyBuf) SetByte(int, byte) error     { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) SetUint16(int, uint16) error { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) SetUint32(int, uint32) error { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) SetUint64(int, uint64) error { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) SetBytes(int, []byte) error  { return errors.Wrap(ErrReadOnly, "empty buffer") }

func (self *emptyBuf) ReadByte() (byte, error)     { return 0, errors.Wrap(ErrOutOfBounds, "empty buffer") }
func (self *emptyBuf) ReadUint16() (uint16, error) { return 0, errors.Wrap(ErrOutOfBounds, "empty buffer") }
func (self *emptyBuf) ReadUint32() (uint32, error) { return 0, errors.Wrap(ErrOutOfBounds, "empty buffer") }
func (self *emptyBuf) ReadUint64() (uint64, error) { return 0, errors.Wrap(ErrOutOfBounds, "empty buffer") }

func (self *emptyBuf) ReadBytes(n int) ([]byte, error) {
	if n != 0 {
		return nil, errors.Wrapf(ErrOutOfBounds, "read [%d]", n)
	}
	return []byte{}, nil
}

func (self *emptyBuf) ReadBytesTo(_ io.Writer, n int) error {
	if n != 0 {
		return errors.Wrapf(ErrOutOfBounds, "read [%d]", n)
	}
	return nil
}

func (self *emptyBuf) WriteByte(byte) error     { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) WriteUint16(uint16) error { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) WriteUint32(uint32) error { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) WriteUint64(uint64) error { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) WriteBytes([]byte) error  { return errors.Wrap(ErrReadOnly, "empty buffer") }
func (self *emptyBuf) WriteBytesFrom(io.Reader, int) error {
	return errors.Wrap(ErrReadOnly, "empty buffer")
}
func (self *emptyBuf) WriteBuf(Buf, int) error { return errors.Wrap(ErrReadOnly, "empty buffer") }

func (self *emptyBuf) WithOrder(binary.ByteOrder) (Buf, error) { return self, nil }

func (self *emptyBuf) Slice(index, length int) (Buf, error) {
	if index != 0 || length != 0 {
		return nil, errors.Wrapf(ErrOutOfBounds, "slice [%d:%d)", index, index+length)
	}
	return self, nil
}

func (self *emptyBuf) Duplicate() (Buf, error) { return self, nil }

func (self *emptyBuf) Copy(index, length int) (Buf, error) {
	if index != 0 || length != 0 {
		return nil, errors.Wrapf(ErrOutOfBounds, "copy [%d:%d)", index, index+length)
	}
	return self, nil
}

func (self *emptyBuf) ReadOnly() (Buf, error) { return self, nil }
func (self *emptyBuf) Retain() (Buf, error)   { return self, nil }
func (self *emptyBuf) Release() error         { return nil }
func (self *emptyBuf) Refs() int32            { return 1 }
func (self *emptyBuf) Alive() bool            { return true }
