package bytebuf

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	// Growth policy: double from growthFloor until growthThreshold, then
	// step by growthThreshold. Policy, not contract.
	growthFloor     = 64
	growthThreshold = 4 * 1024 * 1024
)

// buffer is the single-backing variant. The region it holds may be a heap
// slice, a direct (mmap) region, or caller-supplied wrapped storage; the
// regionSource it came from decides how the region is reclaimed on the last
// release. The region may be larger than the current capacity when it was
// satisfied from a size-classed pool.
type buffer struct {
	seq
	indexed
	region      []byte
	capacity    int
	maxCapacity int
	order       binary.ByteOrder
	direct      bool
	src         regionSource
	refs        *refCount
	ii          InstrumentInstance
}

func newBuffer(region []byte, capacity, maxCapacity int, direct bool, src regionSource, ii InstrumentInstance) *buffer {
	b := &buffer{
		region:      region,
		capacity:    capacity,
		maxCapacity: maxCapacity,
		order:       BigEndian,
		direct:      direct,
		src:         src,
		ii:          ii,
	}
	b.seq.s = b
	b.indexed.s = b
	b.refs = newRefCount(b.reclaim)
	return b
}

func (self *buffer) reclaim() {
	if self.src != nil {
		self.src.yield(self.region, self.direct)
	}
	self.region = nil
}

func (self *buffer) live() error {
	if !self.refs.alive() {
		return errors.Wrap(ErrReleased, "buffer")
	}
	return nil
}

func (self *buffer) Capacity() int {
	return self.capacity
}

func (self *buffer) MaxCapacity() int {
	return self.maxCapacity
}

func (self *buffer) SetCapacity(newCapacity int) error {
	if err := self.live(); err != nil {
		return err
	}
	if newCapacity < self.capacity {
		return errors.Wrapf(ErrInvalidArgument, "shrink [%d -> %d] unsupported", self.capacity, newCapacity)
	}
	if newCapacity > self.maxCapacity {
		return errors.Wrapf(ErrCapacityExceeded, "capacity [%d] max [%d]", newCapacity, self.maxCapacity)
	}
	if newCapacity <= len(self.region) {
		self.capacity = newCapacity
		return nil
	}
	if self.src == nil {
		return errors.Wrapf(ErrCapacityExceeded, "wrapped backing cannot grow past [%d]", len(self.region))
	}
	region, err := self.src.grab(newCapacity, self.direct)
	if err != nil {
		return errors.Wrap(err, "grow")
	}
	copy(region, self.region[:self.capacity])
	old := self.region
	self.region = region
	if self.ii != nil {
		self.ii.Grow(self.capacity, newCapacity)
	}
	self.capacity = newCapacity
	self.src.yield(old, self.direct)
	return nil
}

func (self *buffer) makeRoom(needed int) error {
	if needed <= self.capacity {
		return nil
	}
	if needed > self.maxCapacity {
		return errors.Wrapf(ErrCapacityExceeded, "need [%d] max [%d]", needed, self.maxCapacity)
	}
	return self.SetCapacity(growCapacity(needed, self.maxCapacity))
}

func growCapacity(needed, max int) int {
	if needed > growthThreshold {
		c := (needed/growthThreshold + 1) * growthThreshold
		if c > max {
			c = max
		}
		return c
	}
	c := growthFloor
	for c < needed {
		c <<= 1
	}
	if c > max {
		c = max
	}
	return c
}

func (self *buffer) Order() binary.ByteOrder {
	return self.order
}

func (self *buffer) WithOrder(order binary.ByteOrder) (Buf, error) {
	if order == self.order {
		return self, nil
	}
	return newOrderView(self, order)
}

func (self *buffer) GetBytes(index int, dst []byte) error {
	if err := self.live(); err != nil {
		return err
	}
	if err := checkRange(index, len(dst), self.capacity); err != nil {
		return err
	}
	copy(dst, self.region[index:index+len(dst)])
	return nil
}

func (self *buffer) SetBytes(index int, src []byte) error {
	if err := self.live(); err != nil {
		return err
	}
	if err := checkRange(index, len(src), self.capacity); err != nil {
		return err
	}
	copy(self.region[index:index+len(src)], src)
	return nil
}

func (self *buffer) Slice(index, length int) (Buf, error) {
	if err := checkRange(index, length, self.capacity); err != nil {
		return nil, err
	}
	return newView(self, index, length, 0, length)
}

func (self *buffer) Duplicate() (Buf, error) {
	return newView(self, 0, self.capacity, self.r, self.w)
}

func (self *buffer) Copy(index, length int) (Buf, error) {
	return copyRange(self, index, length)
}

func (self *buffer) ReadOnly() (Buf, error) {
	return newReadOnlyView(self)
}

func (self *buffer) Retain() (Buf, error) {
	if err := self.refs.retain(); err != nil {
		return nil, err
	}
	return self, nil
}

func (self *buffer) Release() error {
	return self.refs.release()
}

func (self *buffer) Refs() int32 {
	return self.refs.count()
}

func (self *buffer) Alive() bool {
	return self.refs.alive()
}

// copyRange backs the Copy operation of every variant: independent heap
// storage, the source's byte order, a fresh reference count.
func copyRange(src Buf, index, length int) (Buf, error) {
	if err := checkRange(index, length, src.Capacity()); err != nil {
		return nil, err
	}
	nb, err := defaultAllocator.Allocate(length, MaxCapacity, false)
	if err != nil {
		return nil, err
	}
	tmp := make([]byte, length)
	if err := src.GetBytes(index, tmp); err != nil {
		_ = nb.Release()
		return nil, err
	}
	if err := nb.WriteBytes(tmp); err != nil {
		_ = nb.Release()
		return nil, err
	}
	setBufferOrder(nb, src.Order())
	return nb, nil
}

func setBufferOrder(b Buf, order binary.ByteOrder) {
	if hb, ok := b.(*buffer); ok {
		hb.order = order
	}
}
