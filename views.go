package bytebuf

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// view is the slice/duplicate variant: a fixed window into a root buffer's
// store plus an offset, with its own cursors. Access is delegated through the
// root object (never a captured slice), so a root reallocation on growth
// stays visible to live views. Views of views flatten to the root.
type view struct {
	seq
	indexed
	root   Buf
	adj    int
	window int
	order  binary.ByteOrder
}

func newView(root Buf, adj, window, readerIndex, writerIndex int) (Buf, error) {
	if v, ok := root.(*view); ok {
		adj += v.adj
		root = v.root
	}
	if _, err := root.Retain(); err != nil {
		return nil, err
	}
	nv := &view{root: root, adj: adj, window: window, order: root.Order()}
	nv.seq.s = nv
	nv.indexed.s = nv
	nv.r = readerIndex
	nv.w = writerIndex
	return nv, nil
}

func (self *view) live() error {
	if !self.root.Alive() {
		return errors.Wrap(ErrReleased, "view")
	}
	return nil
}

func (self *view) Capacity() int {
	return self.window
}

func (self *view) MaxCapacity() int {
	return self.window
}

func (self *view) SetCapacity(newCapacity int) error {
	if newCapacity == self.window {
		return nil
	}
	if newCapacity < self.window {
		return errors.Wrapf(ErrInvalidArgument, "shrink [%d -> %d] unsupported", self.window, newCapacity)
	}
	return errors.Wrapf(ErrCapacityExceeded, "view capacity [%d] is fixed", self.window)
}

func (self *view) makeRoom(needed int) error {
	if needed <= self.window {
		return nil
	}
	return errors.Wrapf(ErrCapacityExceeded, "view capacity [%d] is fixed", self.window)
}

func (self *view) Order() binary.ByteOrder {
	return self.order
}

func (self *view) WithOrder(order binary.ByteOrder) (Buf, error) {
	if order == self.order {
		return self, nil
	}
	return newOrderView(self, order)
}

func (self *view) GetBytes(index int, dst []byte) error {
	if err := checkRange(index, len(dst), self.window); err != nil {
		return err
	}
	return self.root.GetBytes(self.adj+index, dst)
}

func (self *view) SetBytes(index int, src []byte) error {
	if err := checkRange(index, len(src), self.window); err != nil {
		return err
	}
	return self.root.SetBytes(self.adj+index, src)
}

func (self *view) Slice(index, length int) (Buf, error) {
	if err := checkRange(index, length, self.window); err != nil {
		return nil, err
	}
	return newView(self, index, length, 0, length)
}

func (self *view) Duplicate() (Buf, error) {
	return newView(self, 0, self.window, self.r, self.w)
}

func (self *view) Copy(index, length int) (Buf, error) {
	return copyRange(self, index, length)
}

func (self *view) ReadOnly() (Buf, error) {
	return newReadOnlyView(self)
}

func (self *view) Retain() (Buf, error) {
	if _, err := self.root.Retain(); err != nil {
		return nil, err
	}
	return self, nil
}

func (self *view) Release() error {
	return self.root.Release()
}

func (self *view) Refs() int32 {
	return self.root.Refs()
}

func (self *view) Alive() bool {
	return self.root.Alive()
}

// orderView applies a different byte order to multi-byte accessors. It shares
// the source's cursors: everything forwards, only the multi-byte encode and
// decode differ.
type orderView struct {
	inner Buf
	order binary.ByteOrder
}

func newOrderView(b Buf, order binary.ByteOrder) (Buf, error) {
	if ov, ok := b.(*orderView); ok {
		b = ov.inner
	}
	if _, err := b.Retain(); err != nil {
		return nil, err
	}
	return &orderView{inner: b, order: order}, nil
}

func (self *orderView) Capacity() int                 { return self.inner.Capacity() }
func (self *orderView) MaxCapacity() int              { return self.inner.MaxCapacity() }
func (self *orderView) SetCapacity(n int) error       { return self.inner.SetCapacity(n) }
func (self *orderView) Order() binary.ByteOrder       { return self.order }
func (self *orderView) ReaderIndex() int              { return self.inner.ReaderIndex() }
func (self *orderView) WriterIndex() int              { return self.inner.WriterIndex() }
func (self *orderView) SetReaderIndex(i int) error    { return self.inner.SetReaderIndex(i) }
func (self *orderView) SetWriterIndex(i int) error    { return self.inner.SetWriterIndex(i) }
func (self *orderView) ReadableBytes() int            { return self.inner.ReadableBytes() }
func (self *orderView) WritableBytes() int            { return self.inner.WritableBytes() }
func (self *orderView) Clear()                        { self.inner.Clear() }
func (self *orderView) Skip(n int) error              { return self.inner.Skip(n) }
func (self *orderView) GetByte(i int) (byte, error)   { return self.inner.GetByte(i) }
func (self *orderView) SetByte(i int, v byte) error   { return self.inner.SetByte(i, v) }
func (self *orderView) GetBytes(i int, d []byte) error { return self.inner.GetBytes(i, d) }
func (self *orderView) SetBytes(i int, s []byte) error { return self.inner.SetBytes(i, s) }
func (self *orderView) ReadByte() (byte, error)       { return self.inner.ReadByte() }
func (self *orderView) ReadBytes(n int) ([]byte, error) { return self.inner.ReadBytes(n) }
func (self *orderView) ReadBytesTo(w io.Writer, n int) error { return self.inner.ReadBytesTo(w, n) }
func (self *orderView) WriteByte(v byte) error        { return self.inner.WriteByte(v) }
func (self *orderView) WriteBytes(s []byte) error     { return self.inner.WriteBytes(s) }
func (self *orderView) WriteBytesFrom(r io.Reader, n int) error {
	return self.inner.WriteBytesFrom(r, n)
}
func (self *orderView) WriteBuf(src Buf, n int) error { return self.inner.WriteBuf(src, n) }

func (self *orderView) WithOrder(order binary.ByteOrder) (Buf, error) {
	if order == self.order {
		return self, nil
	}
	return newOrderView(self, order)
}

func (self *orderView) GetUint16(index int) (uint16, error) {
	var scratch [2]byte
	if err := self.inner.GetBytes(index, scratch[:]); err != nil {
		return 0, err
	}
	return self.order.Uint16(scratch[:]), nil
}

func (self *orderView) GetUint32(index int) (uint32, error) {
	var scratch [4]byte
	if err := self.inner.GetBytes(index, scratch[:]); err != nil {
		return 0, err
	}
	return self.order.Uint32(scratch[:]), nil
}

func (self *orderView) GetUint64(index int) (uint64, error) {
	var scratch [8]byte
	if err := self.inner.GetBytes(index, scratch[:]); err != nil {
		return 0, err
	}
	return self.order.Uint64(scratch[:]), nil
}

func (self *orderView) SetUint16(index int, v uint16) error {
	var scratch [2]byte
	self.order.PutUint16(scratch[:], v)
	return self.inner.SetBytes(index, scratch[:])
}

func (self *orderView) SetUint32(index int, v uint32) error {
	var scratch [4]byte
	self.order.PutUint32(scratch[:], v)
	return self.inner.SetBytes(index, scratch[:])
}

func (self *orderView) SetUint64(index int, v uint64) error {
	var scratch [8]byte
	self.order.PutUint64(scratch[:], v)
	return self.inner.SetBytes(index, scratch[:])
}

func (self *orderView) ReadUint16() (uint16, error) {
	b, err := self.inner.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return self.order.Uint16(b), nil
}

func (self *orderView) ReadUint32() (uint32, error) {
	b, err := self.inner.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return self.order.Uint32(b), nil
}

func (self *orderView) ReadUint64() (uint64, error) {
	b, err := self.inner.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return self.order.Uint64(b), nil
}

func (self *orderView) WriteUint16(v uint16) error {
	var scratch [2]byte
	self.order.PutUint16(scratch[:], v)
	return self.inner.WriteBytes(scratch[:])
}

func (self *orderView) WriteUint32(v uint32) error {
	var scratch [4]byte
	self.order.PutUint32(scratch[:], v)
	return self.inner.WriteBytes(scratch[:])
}

func (self *orderView) WriteUint64(v uint64) error {
	var scratch [8]byte
	self.order.PutUint64(scratch[:], v)
	return self.inner.WriteBytes(scratch[:])
}

func (self *orderView) Slice(index, length int) (Buf, error) {
	sl, err := self.inner.Slice(index, length)
	if err != nil {
		return nil, err
	}
	return &orderView{inner: sl, order: self.order}, nil
}

func (self *orderView) Duplicate() (Buf, error) {
	dup, err := self.inner.Duplicate()
	if err != nil {
		return nil, err
	}
	return &orderView{inner: dup, order: self.order}, nil
}

func (self *orderView) Copy(index, length int) (Buf, error) {
	cp, err := self.inner.Copy(index, length)
	if err != nil {
		return nil, err
	}
	setBufferOrder(cp, self.order)
	return cp, nil
}

func (self *orderView) ReadOnly() (Buf, error) {
	ro, err := self.inner.ReadOnly()
	if err != nil {
		return nil, err
	}
	return &orderView{inner: ro, order: self.order}, nil
}

func (self *orderView) Retain() (Buf, error) {
	if _, err := self.inner.Retain(); err != nil {
		return nil, err
	}
	return self, nil
}

func (self *orderView) Release() error { return self.inner.Release() }
func (self *orderView) Refs() int32    { return self.inner.Refs() }
func (self *orderView) Alive() bool    { return self.inner.Alive() }

// readOnlyView forwards reads and cursor movement, and rejects every mutator
// with ErrReadOnly, which is distinct from capacity exhaustion.
type readOnlyView struct {
	inner Buf
}

func newReadOnlyView(b Buf) (Buf, error) {
	if ro, ok := b.(*readOnlyView); ok {
		return ro.Retain()
	}
	if _, err := b.Retain(); err != nil {
		return nil, err
	}
	return &readOnlyView{inner: b}, nil
}

func (self *readOnlyView) Capacity() int           { return self.inner.Capacity() }
func (self *readOnlyView) MaxCapacity() int        { return self.inner.MaxCapacity() }
func (self *readOnlyView) Order() binary.ByteOrder { return self.inner.Order() }
func (self *readOnlyView) ReaderIndex() int        { return self.inner.ReaderIndex() }
func (self *readOnlyView) WriterIndex() int        { return self.inner.WriterIndex() }
func (self *readOnlyView) SetReaderIndex(i int) error { return self.inner.SetReaderIndex(i) }
func (self *readOnlyView) SetWriterIndex(i int) error { return self.inner.SetWriterIndex(i) }
func (self *readOnlyView) ReadableBytes() int      { return self.inner.ReadableBytes() }
func (self *readOnlyView) WritableBytes() int      { return 0 }
func (self *readOnlyView) Clear()                  { self.inner.Clear() }
func (self *readOnlyView) Skip(n int) error        { return self.inner.Skip(n) }

func (self *readOnlyView) SetCapacity(int) error          { return errors.Wrap(ErrReadOnly, "set capacity") }
func (self *readOnlyView) SetByte(int, byte) error        { return errors.Wrap(ErrReadOnly, "set byte") }
func (self *readOnlyView) SetUint16(int, uint16) error    { return errors.Wrap(ErrReadOnly, "set uint16") }
func (self *readOnlyView) SetUint32(int, uint32) error    { return errors.Wrap(ErrReadOnly, "set uint32") }
func (self *readOnlyView) SetUint64(int, uint64) error    { return errors.Wrap(ErrReadOnly, "set uint64") }
func (self *readOnlyView) SetBytes(int, []byte) error     { return errors.Wrap(ErrReadOnly, "set bytes") }
func (self *readOnlyView) WriteByte(byte) error           { return errors.Wrap(ErrReadOnly, "write byte") }
func (self *readOnlyView) WriteUint16(uint16) error       { return errors.Wrap(ErrReadOnly, "write uint16") }
func (self *readOnlyView) WriteUint32(uint32) error       { return errors.Wrap(ErrReadOnly, "write uint32") }
func (self *readOnlyView) WriteUint64(uint64) error       { return errors.Wrap(ErrReadOnly, "write uint64") }
func (self *readOnlyView) WriteBytes([]byte) error        { return errors.Wrap(ErrReadOnly, "write bytes") }
func (self *readOnlyView) WriteBytesFrom(io.Reader, int) error {
	return errors.Wrap(ErrReadOnly, "write from source")
}
func (self *readOnlyView) WriteBuf(Buf, int) error { return errors.Wrap(ErrReadOnly, "write buf") }

func (self *readOnlyView) GetByte(i int) (byte, error)       { return self.inner.GetByte(i) }
func (self *readOnlyView) GetUint16(i int) (uint16, error)   { return self.inner.GetUint16(i) }
func (self *readOnlyView) GetUint32(i int) (uint32, error)   { return self.inner.GetUint32(i) }
func (self *readOnlyView) GetUint64(i int) (uint64, error)   { return self.inner.GetUint64(i) }
func (self *readOnlyView) GetBytes(i int, d []byte) error    { return self.inner.GetBytes(i, d) }
func (self *readOnlyView) ReadByte() (byte, error)           { return self.inner.ReadByte() }
func (self *readOnlyView) ReadUint16() (uint16, error)       { return self.inner.ReadUint16() }
func (self *readOnlyView) ReadUint32() (uint32, error)       { return self.inner.ReadUint32() }
func (self *readOnlyView) ReadUint64() (uint64, error)       { return self.inner.ReadUint64() }
func (self *readOnlyView) ReadBytes(n int) ([]byte, error)   { return self.inner.ReadBytes(n) }
func (self *readOnlyView) ReadBytesTo(w io.Writer, n int) error {
	return self.inner.ReadBytesTo(w, n)
}

func (self *readOnlyView) WithOrder(order binary.ByteOrder) (Buf, error) {
	if order == self.inner.Order() {
		return self, nil
	}
	return newOrderView(self, order)
}

func (self *readOnlyView) Slice(index, length int) (Buf, error) {
	sl, err := self.inner.Slice(index, length)
	if err != nil {
		return nil, err
	}
	return &readOnlyView{inner: sl}, nil
}

func (self *readOnlyView) Duplicate() (Buf, error) {
	dup, err := self.inner.Duplicate()
	if err != nil {
		return nil, err
	}
	return &readOnlyView{inner: dup}, nil
}

func (self *readOnlyView) Copy(index, length int) (Buf, error) {
	return self.inner.Copy(index, length)
}

func (self *readOnlyView) ReadOnly() (Buf, error) {
	return self.Retain()
}

func (self *readOnlyView) Retain() (Buf, error) {
	if _, err := self.inner.Retain(); err != nil {
		return nil, err
	}
	return self, nil
}

func (self *readOnlyView) Release() error { return self.inner.Release() }
func (self *readOnlyView) Refs() int32    { return self.inner.Refs() }
func (self *readOnlyView) Alive() bool    { return self.inner.Alive() }
