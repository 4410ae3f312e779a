package bytebuf

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// store is the minimal indexed-access surface a backing variant exposes.
// buffer, view and Composite each implement it; the seq and indexed engines
// below build the full cursor and multi-byte API on top of it, so the
// sequential semantics exist in exactly one place.
type store interface {
	Capacity() int
	Order() binary.ByteOrder
	GetBytes(index int, dst []byte) error
	SetBytes(index int, src []byte) error
	live() error
	makeRoom(needed int) error
}

// seq drives the reader/writer cursors over a store.
type seq struct {
	s store
	r int
	w int
}

func (self *seq) ReaderIndex() int {
	return self.r
}

func (self *seq) WriterIndex() int {
	return self.w
}

func (self *seq) SetReaderIndex(index int) error {
	if index < 0 || index > self.w {
		return errors.Wrapf(ErrOutOfBounds, "reader index [%d] writer index [%d]", index, self.w)
	}
	self.r = index
	return nil
}

func (self *seq) SetWriterIndex(index int) error {
	if index < self.r || index > self.s.Capacity() {
		return errors.Wrapf(ErrOutOfBounds, "writer index [%d] reader index [%d] capacity [%d]", index, self.r, self.s.Capacity())
	}
	self.w = index
	return nil
}

func (self *seq) ReadableBytes() int {
	return self.w - self.r
}

func (self *seq) WritableBytes() int {
	return self.s.Capacity() - self.w
}

func (self *seq) Clear() {
	self.r, self.w = 0, 0
}

func (self *seq) Skip(n int) error {
	if n < 0 || n > self.ReadableBytes() {
		return errors.Wrapf(ErrOutOfBounds, "skip [%d] readable [%d]", n, self.ReadableBytes())
	}
	self.r += n
	return nil
}

func (self *seq) readInto(dst []byte) error {
	if len(dst) > self.ReadableBytes() {
		return errors.Wrapf(ErrOutOfBounds, "read [%d] readable [%d]", len(dst), self.ReadableBytes())
	}
	if err := self.s.GetBytes(self.r, dst); err != nil {
		return err
	}
	self.r += len(dst)
	return nil
}

func (self *seq) ReadByte() (byte, error) {
	var scratch [1]byte
	if err := self.readInto(scratch[:]); err != nil {
		return 0, err
	}
	return scratch[0], nil
}

func (self *seq) ReadUint16() (uint16, error) {
	var scratch [2]byte
	if err := self.readInto(scratch[:]); err != nil {
		return 0, err
	}
	return self.s.Order().Uint16(scratch[:]), nil
}

func (self *seq) ReadUint32() (uint32, error) {
	var scratch [4]byte
	if err := self.readInto(scratch[:]); err != nil {
		return 0, err
	}
	return self.s.Order().Uint32(scratch[:]), nil
}

func (self *seq) ReadUint64() (uint64, error) {
	var scratch [8]byte
	if err := self.readInto(scratch[:]); err != nil {
		return 0, err
	}
	return self.s.Order().Uint64(scratch[:]), nil
}

func (self *seq) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "read [%d]", n)
	}
	dst := make([]byte, n)
	if err := self.readInto(dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (self *seq) ReadBytesTo(w io.Writer, n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "read [%d]", n)
	}
	if n > self.ReadableBytes() {
		return errors.Wrapf(ErrOutOfBounds, "read [%d] readable [%d]", n, self.ReadableBytes())
	}
	tmp := make([]byte, n)
	if err := self.s.GetBytes(self.r, tmp); err != nil {
		return err
	}
	if _, err := w.Write(tmp); err != nil {
		return errors.Wrap(err, "sink write")
	}
	self.r += n
	return nil
}

func (self *seq) writeFrom(src []byte) error {
	if err := self.s.makeRoom(self.w + len(src)); err != nil {
		return err
	}
	if err := self.s.SetBytes(self.w, src); err != nil {
		return err
	}
	self.w += len(src)
	return nil
}

func (self *seq) WriteByte(v byte) error {
	return self.writeFrom([]byte{v})
}

func (self *seq) WriteUint16(v uint16) error {
	var scratch [2]byte
	self.s.Order().PutUint16(scratch[:], v)
	return self.writeFrom(scratch[:])
}

func (self *seq) WriteUint32(v uint32) error {
	var scratch [4]byte
	self.s.Order().PutUint32(scratch[:], v)
	return self.writeFrom(scratch[:])
}

func (self *seq) WriteUint64(v uint64) error {
	var scratch [8]byte
	self.s.Order().PutUint64(scratch[:], v)
	return self.writeFrom(scratch[:])
}

func (self *seq) WriteBytes(src []byte) error {
	return self.writeFrom(src)
}

func (self *seq) WriteBytesFrom(r io.Reader, n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "write [%d]", n)
	}
	if err := self.s.makeRoom(self.w + n); err != nil {
		return err
	}
	// staged through a scratch slice so a short read leaves nothing readable
	tmp := make([]byte, n)
	if _, err := io.ReadFull(r, tmp); err != nil {
		return errors.Wrap(err, "source read")
	}
	if err := self.s.SetBytes(self.w, tmp); err != nil {
		return err
	}
	self.w += n
	return nil
}

func (self *seq) WriteBuf(src Buf, n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidArgument, "write [%d]", n)
	}
	if n > src.ReadableBytes() {
		return errors.Wrapf(ErrOutOfBounds, "write [%d] source readable [%d]", n, src.ReadableBytes())
	}
	if err := self.s.makeRoom(self.w + n); err != nil {
		return err
	}
	tmp, err := src.ReadBytes(n)
	if err != nil {
		return err
	}
	if err := self.s.SetBytes(self.w, tmp); err != nil {
		return err
	}
	self.w += n
	return nil
}

// indexed provides the multi-byte indexed accessors over a store. Single and
// multi-byte gets share the same validated GetBytes/SetBytes path, which is
// what lets the composite decompose boundary-spanning accesses safely.
type indexed struct {
	s store
}

func (self *indexed) GetByte(index int) (byte, error) {
	var scratch [1]byte
	if err := self.s.GetBytes(index, scratch[:]); err != nil {
		return 0, err
	}
	return scratch[0], nil
}

func (self *indexed) GetUint16(index int) (uint16, error) {
	var scratch [2]byte
	if err := self.s.GetBytes(index, scratch[:]); err != nil {
		return 0, err
	}
	return self.s.Order().Uint16(scratch[:]), nil
}

func (self *indexed) GetUint32(index int) (uint32, error) {
	var scratch [4]byte
	if err := self.s.GetBytes(index, scratch[:]); err != nil {
		return 0, err
	}
	return self.s.Order().Uint32(scratch[:]), nil
}

func (self *indexed) GetUint64(index int) (uint64, error) {
	var scratch [8]byte
	if err := self.s.GetBytes(index, scratch[:]); err != nil {
		return 0, err
	}
	return self.s.Order().Uint64(scratch[:]), nil
}

func (self *indexed) SetByte(index int, v byte) error {
	return self.s.SetBytes(index, []byte{v})
}

func (self *indexed) SetUint16(index int, v uint16) error {
	var scratch [2]byte
	self.s.Order().PutUint16(scratch[:], v)
	return self.s.SetBytes(index, scratch[:])
}

func (self *indexed) SetUint32(index int, v uint32) error {
	var scratch [4]byte
	self.s.Order().PutUint32(scratch[:], v)
	return self.s.SetBytes(index, scratch[:])
}

func (self *indexed) SetUint64(index int, v uint64) error {
	var scratch [8]byte
	self.s.Order().PutUint64(scratch[:], v)
	return self.s.SetBytes(index, scratch[:])
}
