package bytebuf

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrapEmptyNormalizes(t *testing.T) {
	assert.Same(t, Empty, Wrap(nil))
	assert.Same(t, Empty, Wrap([]byte{}))

	e := Wrap([]byte{})
	assert.Equal(t, 0, e.Capacity())
	assert.True(t, errors.Is(e.SetByte(0, 1), ErrReadOnly))
	assert.True(t, errors.Is(e.WriteByte(1), ErrReadOnly))
	_, err := e.ReadByte()
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	// the canonical instance is never reclaimed
	assert.NoError(t, e.Release())
	assert.True(t, e.Alive())
}

func TestWrapAliasesStorage(t *testing.T) {
	backing := []byte{1, 2, 3, 4}
	buf := Wrap(backing)
	assert.Equal(t, 4, buf.Capacity())
	assert.Equal(t, 4, buf.MaxCapacity())
	assert.Equal(t, 4, buf.ReadableBytes())

	assert.NoError(t, buf.SetByte(0, 0xaa))
	assert.Equal(t, byte(0xaa), backing[0])

	backing[1] = 0xbb
	b, err := buf.GetByte(1)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xbb), b)

	// wrapped storage cannot grow
	assert.True(t, errors.Is(buf.WriteByte(9), ErrCapacityExceeded))
	assert.NoError(t, buf.Release())
}

func TestWrapBufsAllEmpty(t *testing.T) {
	w, err := WrapBufs()
	assert.NoError(t, err)
	assert.Same(t, Empty, w)

	w, err = WrapBufs(Empty, Wrap(nil))
	assert.NoError(t, err)
	assert.Same(t, Empty, w)
}

func TestWrapBufsSingleAliases(t *testing.T) {
	src := Wrap([]byte{1, 2, 3})
	w, err := WrapBufs(src)
	assert.NoError(t, err)
	assert.Equal(t, 3, w.Capacity())
	assert.Equal(t, int32(2), src.Refs())

	assert.NoError(t, w.SetByte(0, 9))
	b, err := src.GetByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(9), b)

	assert.NoError(t, w.Release())
	assert.NoError(t, src.Release())
}

func TestWrapBufsNormalizesOrder(t *testing.T) {
	src := Wrap([]byte{1, 2})
	sle, err := src.WithOrder(LittleEndian)
	assert.NoError(t, err)

	w, err := WrapBufs(sle)
	assert.NoError(t, err)
	assert.Equal(t, BigEndian, w.Order())

	v, err := w.GetUint16(0)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v)

	// still an alias of the source storage
	assert.NoError(t, w.SetByte(0, 9))
	b, err := src.GetByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(9), b)

	assert.NoError(t, w.Release())
	assert.NoError(t, sle.Release())
	assert.NoError(t, src.Release())
}

func TestWrapBufsComposite(t *testing.T) {
	a := Wrap([]byte{0, 1})
	b := Wrap([]byte{2, 3, 4})
	c := Wrap([]byte{5, 6, 7, 8, 9})

	w, err := WrapBufs(a, b, c)
	assert.NoError(t, err)
	assert.Equal(t, 10, w.Capacity())

	out := make([]byte, 2)
	assert.NoError(t, w.GetBytes(4, out))
	assert.Equal(t, []byte{4, 5}, out)

	// no copies: mutations flow through to the sources
	assert.NoError(t, w.SetByte(0, 0xaa))
	bv, err := a.GetByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xaa), bv)

	assert.NoError(t, w.Release())
	assert.NoError(t, a.Release())
	assert.NoError(t, b.Release())
	assert.NoError(t, c.Release())
}

func TestWrapBufsSkipsUnreadable(t *testing.T) {
	a := Wrap([]byte{1, 2})
	b := Wrap([]byte{3})
	w, err := WrapBufs(a, Empty, b)
	assert.NoError(t, err)
	assert.Equal(t, 3, w.Capacity())

	out := make([]byte, 3)
	assert.NoError(t, w.GetBytes(0, out))
	assert.Equal(t, []byte{1, 2, 3}, out)

	assert.NoError(t, w.Release())
	assert.NoError(t, a.Release())
	assert.NoError(t, b.Release())
}

func TestCopiedEmpty(t *testing.T) {
	c, err := Copied()
	assert.NoError(t, err)
	assert.Same(t, Empty, c)

	c, err = Copied([]byte{}, nil)
	assert.NoError(t, err)
	assert.Same(t, Empty, c)
}

func TestCopiedIsDeep(t *testing.T) {
	src := []byte{1, 2, 3}
	c, err := Copied(src, []byte{4, 5})
	assert.NoError(t, err)
	assert.Equal(t, 5, c.ReadableBytes())
	assert.Equal(t, int32(1), c.Refs())

	src[0] = 0xff
	out, err := c.ReadBytes(5)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, out)
	assert.NoError(t, c.Release())
}

func TestCopiedBufs(t *testing.T) {
	a := Wrap([]byte{1, 2})
	b := Wrap([]byte{3, 4, 5})

	c, err := CopiedBufs(a, Empty, b)
	assert.NoError(t, err)
	assert.Equal(t, 5, c.ReadableBytes())

	// source cursors are untouched
	assert.Equal(t, 2, a.ReadableBytes())
	assert.Equal(t, 3, b.ReadableBytes())

	// and the copy is independent
	assert.NoError(t, a.SetByte(0, 0xff))
	out, err := c.ReadBytes(5)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, out)

	assert.NoError(t, c.Release())
	assert.NoError(t, a.Release())
	assert.NoError(t, b.Release())
}

func TestCopiedRoundTrip(t *testing.T) {
	roundTrip := func(src Buf) {
		first, err := CopiedBufs(src)
		assert.NoError(t, err)
		readable := make([]byte, first.ReadableBytes())
		assert.NoError(t, first.GetBytes(first.ReaderIndex(), readable))

		second, err := Copied(readable)
		assert.NoError(t, err)
		assert.Equal(t, first.ReadableBytes(), second.ReadableBytes())
		out := make([]byte, second.ReadableBytes())
		assert.NoError(t, second.GetBytes(0, out))
		assert.Equal(t, readable, out)

		assert.NoError(t, first.Release())
		assert.NoError(t, second.Release())
	}

	roundTrip(Empty)

	one := Wrap([]byte{42})
	roundTrip(one)
	assert.NoError(t, one.Release())

	multi, err := WrapBufs(Wrap([]byte{1, 2}), Wrap([]byte{3, 4, 5}), Wrap([]byte{6}))
	assert.NoError(t, err)
	roundTrip(multi)
	assert.NoError(t, multi.Release())
}

func TestCopiedBufsAllEmpty(t *testing.T) {
	c, err := CopiedBufs(Empty)
	assert.NoError(t, err)
	assert.Same(t, Empty, c)
}

func TestCopiedBufsMixedOrders(t *testing.T) {
	a := Wrap([]byte{1, 2})
	b := Wrap([]byte{3, 4})
	ble, err := b.WithOrder(LittleEndian)
	assert.NoError(t, err)

	_, err = CopiedBufs(a, ble)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	assert.NoError(t, ble.Release())
	assert.NoError(t, a.Release())
	assert.NoError(t, b.Release())
}

func TestCopiedBufsInheritsOrder(t *testing.T) {
	a := Wrap([]byte{1, 2})
	ale, err := a.WithOrder(LittleEndian)
	assert.NoError(t, err)

	c, err := CopiedBufs(ale)
	assert.NoError(t, err)
	assert.Equal(t, LittleEndian, c.Order())

	v, err := c.GetUint16(0)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v)

	assert.NoError(t, c.Release())
	assert.NoError(t, ale.Release())
	assert.NoError(t, a.Release())
}
