// +build !windows

package bytebuf

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// Direct regions live outside the Go heap in anonymous private mappings.
// They are reclaimed by munmap, never by the collector.
func mapRegion(size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrapf(err, "mmap [%d]", size)
	}
	return region, nil
}

func unmapRegion(region []byte) {
	if len(region) == 0 {
		return
	}
	if err := unix.Munmap(region); err != nil {
		logrus.Errorf("munmap [%d] (%v)", len(region), err)
	}
}
