package bytebuf

import (
	"sync"

	"github.com/pkg/errors"
)

// regionSource hands out and takes back raw backing regions. Buffers keep a
// reference to the source they came from and return their region through it
// on the last release, so pooled and unpooled reclamation share one path.
type regionSource interface {
	grab(capacity int, direct bool) ([]byte, error)
	yield(region []byte, direct bool)
}

// Allocator produces buffers. The pooled variant satisfies requests from
// size-classed pools of previously released regions; the unpooled variant
// always allocates fresh and frees unconditionally.
type Allocator interface {
	// Allocate returns a buffer with capacity initialCapacity, growable to
	// maxCapacity, backed by a heap slice or, when direct, an anonymous
	// mmap region. Cursors start at zero; the order is big-endian.
	Allocate(initialCapacity, maxCapacity int, direct bool) (Buf, error)
	// Composite returns an empty composite that consolidates through this
	// allocator. maxComponents == 0 selects the allocator's default ceiling.
	Composite(maxComponents int) (*Composite, error)
}

const defaultMaxComponents = 16

func checkAllocArgs(initialCapacity, maxCapacity int) error {
	if initialCapacity < 0 || initialCapacity > maxCapacity {
		return errors.Wrapf(ErrInvalidArgument, "initial capacity [%d] max capacity [%d]", initialCapacity, maxCapacity)
	}
	if maxCapacity > MaxCapacity {
		return errors.Wrapf(ErrInvalidArgument, "max capacity [%d] limit [%d]", maxCapacity, MaxCapacity)
	}
	return nil
}

type unpooledAllocator struct {
	ii InstrumentInstance
}

func NewUnpooledAllocator(instrument Instrument) Allocator {
	return &unpooledAllocator{ii: instrument.NewInstance("unpooled")}
}

// defaultAllocator backs the static factory surface and Copy.
var defaultAllocator = NewUnpooledAllocator(NewNilInstrument())

func (self *unpooledAllocator) Allocate(initialCapacity, maxCapacity int, direct bool) (Buf, error) {
	if err := checkAllocArgs(initialCapacity, maxCapacity); err != nil {
		return nil, err
	}
	region, err := self.grab(initialCapacity, direct)
	if err != nil {
		return nil, err
	}
	return newBuffer(region, initialCapacity, maxCapacity, direct, self, self.ii), nil
}

func (self *unpooledAllocator) Composite(maxComponents int) (*Composite, error) {
	if maxComponents == 0 {
		maxComponents = defaultMaxComponents
	}
	return newComposite(self, maxComponents, self.ii)
}

func (self *unpooledAllocator) grab(capacity int, direct bool) ([]byte, error) {
	var region []byte
	var err error
	if direct {
		region, err = mapRegion(capacity)
		if err != nil {
			return nil, err
		}
	} else {
		region = make([]byte, capacity)
	}
	self.ii.Allocate(capacity, direct)
	return region, nil
}

func (self *unpooledAllocator) yield(region []byte, direct bool) {
	if direct {
		unmapRegion(region)
	}
	self.ii.Free(len(region), direct)
}

// sizeClass pools released regions of one size. Heap regions ride a
// sync.Pool; direct regions sit on a bounded freelist under a mutex so
// overflow can be unmapped instead of lingering. Pop-before-hand-out keeps
// any region owned by at most one live buffer.
type sizeClass struct {
	size  int
	depth int
	heap  *sync.Pool
	lock  sync.Mutex
	free  [][]byte
}

type pooledAllocator struct {
	profile *Profile
	classes []*sizeClass
	ii      InstrumentInstance
}

func NewPooledAllocator(profile *Profile, instrument Instrument) (Allocator, error) {
	if profile == nil {
		profile = NewBaselineProfile()
	}
	if profile.PoolMinChunk < 1 || profile.PoolMaxChunk < profile.PoolMinChunk {
		return nil, errors.Wrapf(ErrInvalidArgument, "pool chunk range [%d, %d]", profile.PoolMinChunk, profile.PoolMaxChunk)
	}
	if profile.PoolDepth < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "pool depth [%d]", profile.PoolDepth)
	}
	a := &pooledAllocator{
		profile: profile,
		ii:      instrument.NewInstance("pooled"),
	}
	for size := ceilPow2(profile.PoolMinChunk); size <= ceilPow2(profile.PoolMaxChunk); size <<= 1 {
		a.classes = append(a.classes, &sizeClass{size: size, depth: profile.PoolDepth, heap: new(sync.Pool)})
	}
	return a, nil
}

func ceilPow2(n int) int {
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}

func (self *pooledAllocator) Allocate(initialCapacity, maxCapacity int, direct bool) (Buf, error) {
	if err := checkAllocArgs(initialCapacity, maxCapacity); err != nil {
		return nil, err
	}
	region, err := self.grab(initialCapacity, direct)
	if err != nil {
		return nil, err
	}
	return newBuffer(region, initialCapacity, maxCapacity, direct, self, self.ii), nil
}

func (self *pooledAllocator) Composite(maxComponents int) (*Composite, error) {
	if maxComponents == 0 {
		maxComponents = self.profile.MaxComponents
	}
	return newComposite(self, maxComponents, self.ii)
}

func (self *pooledAllocator) classFor(capacity int) *sizeClass {
	for _, c := range self.classes {
		if c.size >= capacity {
			return c
		}
	}
	return nil
}

func (self *pooledAllocator) classOf(size int) *sizeClass {
	for _, c := range self.classes {
		if c.size == size {
			return c
		}
	}
	return nil
}

func (self *pooledAllocator) grab(capacity int, direct bool) ([]byte, error) {
	c := self.classFor(capacity)
	if c == nil {
		// oversize requests bypass the pools
		var region []byte
		var err error
		if direct {
			region, err = mapRegion(capacity)
			if err != nil {
				return nil, err
			}
		} else {
			region = make([]byte, capacity)
		}
		self.ii.Allocate(capacity, direct)
		return region, nil
	}
	if direct {
		c.lock.Lock()
		if n := len(c.free); n > 0 {
			region := c.free[n-1]
			c.free = c.free[:n-1]
			c.lock.Unlock()
			self.ii.Reuse(c.size, true)
			return region, nil
		}
		c.lock.Unlock()
		region, err := mapRegion(c.size)
		if err != nil {
			return nil, err
		}
		self.ii.Allocate(c.size, true)
		return region, nil
	}
	if v := c.heap.Get(); v != nil {
		self.ii.Reuse(c.size, false)
		return v.([]byte), nil
	}
	self.ii.Allocate(c.size, false)
	return make([]byte, c.size), nil
}

func (self *pooledAllocator) yield(region []byte, direct bool) {
	c := self.classOf(len(region))
	if c == nil {
		if direct {
			unmapRegion(region)
		}
		self.ii.Free(len(region), direct)
		return
	}
	if direct {
		c.lock.Lock()
		if len(c.free) < c.depth {
			c.free = append(c.free, region)
			c.lock.Unlock()
			self.ii.Pooled(c.size, true)
			return
		}
		c.lock.Unlock()
		unmapRegion(region)
		self.ii.Free(c.size, true)
		return
	}
	c.heap.Put(region)
	self.ii.Pooled(c.size, false)
}
