package bytebuf

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// refCount is the shared ownership handle carried by a root buffer and every
// zero-copy view derived from it. The count starts at 1 for the allocating
// owner. CAS loops (rather than bare adds) make a double release and a
// retain-after-free deterministic failures instead of silent underflow.
type refCount struct {
	refs    int32
	reclaim func()
}

func newRefCount(reclaim func()) *refCount {
	return &refCount{refs: 1, reclaim: reclaim}
}

func (self *refCount) retain() error {
	for {
		refs := atomic.LoadInt32(&self.refs)
		if refs < 1 {
			return errors.Wrap(ErrReleased, "retain")
		}
		if atomic.CompareAndSwapInt32(&self.refs, refs, refs+1) {
			return nil
		}
	}
}

func (self *refCount) release() error {
	for {
		refs := atomic.LoadInt32(&self.refs)
		if refs < 1 {
			return errors.Wrap(ErrReleased, "excess release")
		}
		if atomic.CompareAndSwapInt32(&self.refs, refs, refs-1) {
			if refs == 1 && self.reclaim != nil {
				self.reclaim()
			}
			return nil
		}
	}
}

func (self *refCount) count() int32 {
	return atomic.LoadInt32(&self.refs)
}

func (self *refCount) alive() bool {
	return atomic.LoadInt32(&self.refs) > 0
}
