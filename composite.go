package bytebuf

import (
	"encoding/binary"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/pkg/errors"
)

// Composite presents an ordered set of component buffers as one contiguous
// logical buffer, without copying their bytes. Components are held in a
// treemap keyed by their start offset in the logical address space; a floor
// lookup locates the component owning any index. Offsets are monotonic and
// contiguous: component[i].off + component[i].length == component[i+1].off.
//
// Adding a component retains it; releasing the composite releases every
// component exactly once. When the component count passes the configured
// ceiling the composite consolidates: components are merged into a single
// allocator-provided backing, trading one copy for less access indirection.
type Composite struct {
	seq
	indexed
	comps         *treemap.Map
	count         int
	capacity      int
	maxComponents int
	alloc         Allocator
	order         binary.ByteOrder
	refs          *refCount
	ii            InstrumentInstance
}

type component struct {
	buf    Buf
	off    int
	base   int
	length int
}

// NewComposite builds an empty composite that consolidates through alloc
// whenever the component count exceeds maxComponents.
func NewComposite(alloc Allocator, maxComponents int) (*Composite, error) {
	return newComposite(alloc, maxComponents, nilInstance)
}

func newComposite(alloc Allocator, maxComponents int, ii InstrumentInstance) (*Composite, error) {
	if maxComponents < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "max components [%d]", maxComponents)
	}
	c := &Composite{
		comps:         treemap.NewWith(utils.IntComparator),
		maxComponents: maxComponents,
		alloc:         alloc,
		order:         BigEndian,
		ii:            ii,
	}
	c.seq.s = c
	c.indexed.s = c
	c.refs = newRefCount(c.reclaim)
	return c, nil
}

func (self *Composite) reclaim() {
	it := self.comps.Iterator()
	for it.Next() {
		comp := it.Value().(*component)
		_ = comp.buf.Release()
	}
	self.comps.Clear()
	self.count = 0
}

func (self *Composite) live() error {
	if !self.refs.alive() {
		return errors.Wrap(ErrReleased, "composite")
	}
	return nil
}

// AddComponent appends the readable bytes of b to the logical address space,
// retaining b. Buffers with nothing readable are skipped. The writer index
// extends to cover the new component.
func (self *Composite) AddComponent(b Buf) error {
	if err := self.live(); err != nil {
		return err
	}
	if b == nil {
		return errors.Wrap(ErrInvalidArgument, "nil component")
	}
	length := b.ReadableBytes()
	if length == 0 {
		return nil
	}
	if self.capacity+length > MaxCapacity || self.capacity+length < 0 {
		return errors.Wrapf(ErrInvalidArgument, "combined length overflows [%d + %d]", self.capacity, length)
	}
	if _, err := b.Retain(); err != nil {
		return err
	}
	self.comps.Put(self.capacity, &component{buf: b, off: self.capacity, base: b.ReaderIndex(), length: length})
	self.count++
	self.capacity += length
	self.w = self.capacity
	if self.count > self.maxComponents {
		return self.Consolidate()
	}
	return nil
}

// Consolidate merges all components into a single freshly allocated backing
// and releases them. Logical content and cursors are unchanged.
func (self *Composite) Consolidate() error {
	if err := self.live(); err != nil {
		return err
	}
	if self.count <= 1 {
		return nil
	}
	merged, err := self.alloc.Allocate(self.capacity, self.capacity, false)
	if err != nil {
		return errors.Wrap(err, "consolidate")
	}
	it := self.comps.Iterator()
	for it.Next() {
		comp := it.Value().(*component)
		tmp := make([]byte, comp.length)
		if err := comp.buf.GetBytes(comp.base, tmp); err != nil {
			_ = merged.Release()
			return errors.Wrap(err, "consolidate")
		}
		if err := merged.WriteBytes(tmp); err != nil {
			_ = merged.Release()
			return errors.Wrap(err, "consolidate")
		}
	}
	it = self.comps.Iterator()
	for it.Next() {
		_ = it.Value().(*component).buf.Release()
	}
	if self.ii != nil {
		self.ii.Consolidate(self.count, self.capacity)
	}
	self.comps.Clear()
	self.comps.Put(0, &component{buf: merged, off: 0, base: 0, length: self.capacity})
	self.count = 1
	return nil
}

func (self *Composite) ComponentCount() int {
	return self.count
}

func (self *Composite) Capacity() int {
	return self.capacity
}

func (self *Composite) MaxCapacity() int {
	return self.capacity
}

func (self *Composite) SetCapacity(newCapacity int) error {
	if newCapacity == self.capacity {
		return nil
	}
	if newCapacity < self.capacity {
		return errors.Wrapf(ErrInvalidArgument, "shrink [%d -> %d] unsupported", self.capacity, newCapacity)
	}
	return errors.Wrap(ErrCapacityExceeded, "composite grows by adding components")
}

func (self *Composite) makeRoom(needed int) error {
	if needed <= self.capacity {
		return nil
	}
	return errors.Wrap(ErrCapacityExceeded, "composite grows by adding components")
}

func (self *Composite) Order() binary.ByteOrder {
	return self.order
}

func (self *Composite) WithOrder(order binary.ByteOrder) (Buf, error) {
	if order == self.order {
		return self, nil
	}
	return newOrderView(self, order)
}

func (self *Composite) find(index int) (*component, error) {
	_, v := self.comps.Floor(index)
	if v == nil {
		return nil, errors.Wrapf(ErrOutOfBounds, "index [%d]", index)
	}
	return v.(*component), nil
}

// GetBytes validates the whole range first, then decomposes into
// per-component sub-reads; a boundary-spanning access either fully succeeds
// or fails before any byte moves.
func (self *Composite) GetBytes(index int, dst []byte) error {
	if err := self.live(); err != nil {
		return err
	}
	if err := checkRange(index, len(dst), self.capacity); err != nil {
		return err
	}
	pos, off := index, 0
	for off < len(dst) {
		comp, err := self.find(pos)
		if err != nil {
			return err
		}
		local := pos - comp.off
		chunk := comp.length - local
		if chunk > len(dst)-off {
			chunk = len(dst) - off
		}
		if err := comp.buf.GetBytes(comp.base+local, dst[off:off+chunk]); err != nil {
			return err
		}
		pos += chunk
		off += chunk
	}
	return nil
}

// SetBytes validates the whole range first, then decomposes into
// per-component sub-writes. When a component rejects its sub-write partway
// (a read-only component, for instance), the already-written prefix is
// restored from staged content, so a failed spanning write observes no
// mutation.
func (self *Composite) SetBytes(index int, src []byte) error {
	if err := self.live(); err != nil {
		return err
	}
	if err := checkRange(index, len(src), self.capacity); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	prev := make([]byte, len(src))
	if err := self.GetBytes(index, prev); err != nil {
		return err
	}
	pos, off := index, 0
	for off < len(src) {
		comp, err := self.find(pos)
		if err != nil {
			self.restore(index, prev[:off])
			return err
		}
		local := pos - comp.off
		chunk := comp.length - local
		if chunk > len(src)-off {
			chunk = len(src) - off
		}
		if err := comp.buf.SetBytes(comp.base+local, src[off:off+chunk]); err != nil {
			self.restore(index, prev[:off])
			return err
		}
		pos += chunk
		off += chunk
	}
	return nil
}

// restore rewrites prev over [index, index+len(prev)). Only components that
// already accepted a sub-write are touched, so the unwind cannot fail.
func (self *Composite) restore(index int, prev []byte) {
	pos, off := index, 0
	for off < len(prev) {
		comp, err := self.find(pos)
		if err != nil {
			return
		}
		local := pos - comp.off
		chunk := comp.length - local
		if chunk > len(prev)-off {
			chunk = len(prev) - off
		}
		_ = comp.buf.SetBytes(comp.base+local, prev[off:off+chunk])
		pos += chunk
		off += chunk
	}
}

func (self *Composite) Slice(index, length int) (Buf, error) {
	if err := checkRange(index, length, self.capacity); err != nil {
		return nil, err
	}
	return newView(self, index, length, 0, length)
}

func (self *Composite) Duplicate() (Buf, error) {
	return newView(self, 0, self.capacity, self.r, self.w)
}

func (self *Composite) Copy(index, length int) (Buf, error) {
	return copyRange(self, index, length)
}

func (self *Composite) ReadOnly() (Buf, error) {
	return newReadOnlyView(self)
}

func (self *Composite) Retain() (Buf, error) {
	if err := self.refs.retain(); err != nil {
		return nil, err
	}
	return self, nil
}

func (self *Composite) Release() error {
	return self.refs.release()
}

func (self *Composite) Refs() int32 {
	return self.refs.count()
}

func (self *Composite) Alive() bool {
	return self.refs.alive()
}
