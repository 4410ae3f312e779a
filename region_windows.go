// +build windows

package bytebuf

import "github.com/pkg/errors"

func mapRegion(size int) ([]byte, error) {
	if size == 0 {
		return []byte{}, nil
	}
	return nil, errors.Wrap(ErrInvalidArgument, "direct regions unsupported on this platform")
}

func unmapRegion([]byte) {}
