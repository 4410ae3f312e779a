package bytebuf

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestRefCountSymmetry(t *testing.T) {
	reclaimed := 0
	rc := newRefCount(func() { reclaimed++ })
	assert.Equal(t, int32(1), rc.count())
	assert.True(t, rc.alive())

	assert.NoError(t, rc.retain())
	assert.Equal(t, int32(2), rc.count())
	assert.NoError(t, rc.release())
	assert.Equal(t, 0, reclaimed)

	assert.NoError(t, rc.release())
	assert.Equal(t, 1, reclaimed)
	assert.False(t, rc.alive())
}

func TestRefCountExcessRelease(t *testing.T) {
	reclaimed := 0
	rc := newRefCount(func() { reclaimed++ })
	assert.NoError(t, rc.release())

	err := rc.release()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrReleased))
	assert.Equal(t, 1, reclaimed)
}

func TestRefCountRetainAfterFree(t *testing.T) {
	rc := newRefCount(nil)
	assert.NoError(t, rc.release())

	err := rc.retain()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrReleased))
}

func TestRefCountConcurrent(t *testing.T) {
	reclaimed := 0
	rc := newRefCount(func() { reclaimed++ })

	workers := 16
	wg := sync.WaitGroup{}
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if err := rc.retain(); err != nil {
					panic(err)
				}
				if err := rc.release(); err != nil {
					panic(err)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), rc.count())
	assert.NoError(t, rc.release())
	assert.Equal(t, 1, reclaimed)
}
