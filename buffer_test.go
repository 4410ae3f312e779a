package bytebuf

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWriteReadBigEndian(t *testing.T) {
	buf, err := NewBuffer(4, 4)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	assert.Equal(t, BigEndian, buf.Order())
	assert.NoError(t, buf.WriteUint32(0x01020304))

	out := make([]byte, 4)
	assert.NoError(t, buf.GetBytes(0, out))
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, out)

	le, err := buf.WithOrder(LittleEndian)
	assert.NoError(t, err)
	v, err := le.GetUint32(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), v)

	v, err = le.ReadUint32()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), v)
	assert.NoError(t, le.Release())
}

func TestWithOrderSameIsReceiver(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	same, err := buf.WithOrder(BigEndian)
	assert.NoError(t, err)
	assert.Same(t, buf, same)
	assert.Equal(t, int32(1), buf.Refs())
}

func TestIndexedBounds(t *testing.T) {
	buf, err := NewBuffer(4, 4)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	_, err = buf.GetByte(4)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	_, err = buf.GetUint32(1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	err = buf.SetBytes(2, []byte{0, 0, 0})
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	_, err = buf.GetByte(-1)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestCursors(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	assert.NoError(t, buf.WriteBytes([]byte{1, 2, 3, 4}))
	assert.Equal(t, 4, buf.ReadableBytes())
	assert.Equal(t, 4, buf.WritableBytes())

	assert.NoError(t, buf.Skip(2))
	assert.Equal(t, 2, buf.ReaderIndex())
	b, err := buf.ReadByte()
	assert.NoError(t, err)
	assert.Equal(t, byte(3), b)

	assert.True(t, errors.Is(buf.SetReaderIndex(5), ErrOutOfBounds))
	assert.True(t, errors.Is(buf.SetWriterIndex(2), ErrOutOfBounds))
	assert.True(t, errors.Is(buf.Skip(2), ErrOutOfBounds))

	buf.Clear()
	assert.Equal(t, 0, buf.ReaderIndex())
	assert.Equal(t, 0, buf.WriterIndex())
}

func TestSequentialUnderflow(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	assert.NoError(t, buf.WriteUint16(0xcafe))
	_, err = buf.ReadUint32()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, 0, buf.ReaderIndex())

	v, err := buf.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xcafe), v)
}

func TestGrowth(t *testing.T) {
	buf, err := NewBuffer(4, 128)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	assert.Equal(t, 4, buf.Capacity())
	assert.NoError(t, buf.WriteBytes(make([]byte, 100)))
	assert.Equal(t, 128, buf.Capacity())
	assert.Equal(t, 100, buf.ReadableBytes())
}

func TestGrowthPreservesContent(t *testing.T) {
	buf, err := NewBuffer(4, 64)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	assert.NoError(t, buf.WriteUint32(0xdeadbeef))
	assert.NoError(t, buf.WriteBytes(make([]byte, 32)))

	v, err := buf.GetUint32(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), v)
}

func TestGrowthCeiling(t *testing.T) {
	buf, err := NewBuffer(4, 8)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	err = buf.WriteBytes(make([]byte, 16))
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, 0, buf.ReadableBytes())

	assert.True(t, errors.Is(buf.SetCapacity(16), ErrCapacityExceeded))
	assert.True(t, errors.Is(buf.SetCapacity(2), ErrInvalidArgument))
}

func TestSliceAliases(t *testing.T) {
	buf, err := NewBuffer(16, 16)
	assert.NoError(t, err)
	assert.NoError(t, buf.WriteBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7}))

	sl, err := buf.Slice(4, 4)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), buf.Refs())
	assert.Equal(t, 4, sl.Capacity())
	assert.Equal(t, 4, sl.ReadableBytes())

	b, err := sl.GetByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(4), b)

	// writes through the slice land in the parent
	assert.NoError(t, sl.SetByte(0, 0xaa))
	b, err = buf.GetByte(4)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xaa), b)

	_, err = sl.GetByte(4)
	assert.True(t, errors.Is(err, ErrOutOfBounds))

	assert.NoError(t, sl.Release())
	assert.Equal(t, int32(1), buf.Refs())
	assert.NoError(t, buf.Release())
}

func TestSliceOfSlice(t *testing.T) {
	buf, err := NewBuffer(16, 16)
	assert.NoError(t, err)
	assert.NoError(t, buf.WriteBytes([]byte{0, 1, 2, 3, 4, 5, 6, 7}))

	outer, err := buf.Slice(2, 6)
	assert.NoError(t, err)
	inner, err := outer.Slice(2, 2)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), buf.Refs())

	b, err := inner.GetByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(4), b)

	assert.NoError(t, inner.Release())
	assert.NoError(t, outer.Release())
	assert.NoError(t, buf.Release())
}

func TestDuplicate(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	assert.NoError(t, buf.WriteBytes([]byte{1, 2, 3, 4}))

	dup, err := buf.Duplicate()
	assert.NoError(t, err)
	assert.Equal(t, int32(2), buf.Refs())
	assert.Equal(t, 4, dup.ReadableBytes())

	// cursors are independent, bytes are shared
	_, err = dup.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, 0, buf.ReaderIndex())

	assert.NoError(t, dup.SetByte(0, 0xff))
	b, err := buf.GetByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(0xff), b)

	assert.NoError(t, dup.Release())
	assert.NoError(t, buf.Release())
}

func TestCopyIndependence(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	assert.NoError(t, buf.WriteBytes([]byte{1, 2, 3, 4}))

	cp, err := buf.Copy(0, 4)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), buf.Refs())
	assert.Equal(t, int32(1), cp.Refs())

	assert.NoError(t, buf.SetByte(0, 0xee))
	b, err := cp.GetByte(0)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), b)

	assert.NoError(t, buf.Release())
	b, err = cp.GetByte(3)
	assert.NoError(t, err)
	assert.Equal(t, byte(4), b)
	assert.NoError(t, cp.Release())
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	assert.NoError(t, buf.WriteBytes([]byte{1, 2, 3, 4}))

	ro, err := buf.ReadOnly()
	assert.NoError(t, err)
	assert.Equal(t, int32(2), buf.Refs())
	assert.Equal(t, 0, ro.WritableBytes())

	err = ro.SetByte(0, 0)
	assert.True(t, errors.Is(err, ErrReadOnly))
	assert.False(t, errors.Is(err, ErrCapacityExceeded))
	assert.True(t, errors.Is(ro.WriteBytes([]byte{1}), ErrReadOnly))
	assert.True(t, errors.Is(ro.SetCapacity(16), ErrReadOnly))

	b, err := ro.GetByte(1)
	assert.NoError(t, err)
	assert.Equal(t, byte(2), b)
	v, err := ro.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v)

	assert.NoError(t, ro.Release())
	assert.NoError(t, buf.Release())
}

func TestUseAfterFree(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	assert.NoError(t, buf.WriteBytes([]byte{1, 2}))
	assert.NoError(t, buf.Release())
	assert.False(t, buf.Alive())

	_, err = buf.GetByte(0)
	assert.True(t, errors.Is(err, ErrReleased))
	assert.True(t, errors.Is(buf.WriteByte(0), ErrReleased))
	assert.True(t, errors.Is(buf.Release(), ErrReleased))
	_, err = buf.Retain()
	assert.True(t, errors.Is(err, ErrReleased))
	_, err = buf.Slice(0, 1)
	assert.True(t, errors.Is(err, ErrReleased))
}

func TestReadBytesTo(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()
	assert.NoError(t, buf.WriteBytes([]byte{1, 2, 3, 4}))

	out := new(bytes.Buffer)
	assert.NoError(t, buf.ReadBytesTo(out, 3))
	assert.Equal(t, []byte{1, 2, 3}, out.Bytes())
	assert.Equal(t, 1, buf.ReadableBytes())

	assert.True(t, errors.Is(buf.ReadBytesTo(out, 2), ErrOutOfBounds))
	assert.Equal(t, 1, buf.ReadableBytes())
}

func TestWriteBytesFromShortSource(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	defer func() { _ = buf.Release() }()

	assert.NoError(t, buf.WriteBytesFrom(bytes.NewReader([]byte{1, 2, 3, 4}), 4))
	assert.Equal(t, 4, buf.ReadableBytes())

	// a short read makes nothing readable
	err = buf.WriteBytesFrom(bytes.NewReader([]byte{5, 6}), 4)
	assert.Error(t, err)
	assert.Equal(t, 4, buf.ReadableBytes())
}

func TestWriteBuf(t *testing.T) {
	src, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	assert.NoError(t, src.WriteBytes([]byte{1, 2, 3, 4}))

	dst, err := NewBuffer(8, 8)
	assert.NoError(t, err)

	assert.NoError(t, dst.WriteBuf(src, 3))
	assert.Equal(t, 1, src.ReadableBytes())
	assert.Equal(t, 3, dst.ReadableBytes())

	out, err := dst.ReadBytes(3)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, out)

	assert.True(t, errors.Is(dst.WriteBuf(src, 2), ErrOutOfBounds))

	assert.NoError(t, src.Release())
	assert.NoError(t, dst.Release())
}

func TestOrderViewSharesCursors(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)

	le, err := buf.WithOrder(LittleEndian)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), buf.Refs())

	assert.NoError(t, le.WriteUint16(0x0102))
	assert.Equal(t, 2, buf.WriterIndex())

	// the same bytes decode differently through each order
	v, err := buf.GetUint16(0)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0201), v)
	lv, err := le.GetUint16(0)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0102), lv)

	back, err := le.WithOrder(BigEndian)
	assert.NoError(t, err)
	assert.Equal(t, BigEndian, back.Order())

	assert.NoError(t, back.Release())
	assert.NoError(t, le.Release())
	assert.NoError(t, buf.Release())
}

func TestOrderViewCopyKeepsOrder(t *testing.T) {
	buf, err := NewBuffer(8, 8)
	assert.NoError(t, err)
	assert.NoError(t, buf.WriteUint32(0x01020304))

	le, err := buf.WithOrder(LittleEndian)
	assert.NoError(t, err)
	cp, err := le.Copy(0, 4)
	assert.NoError(t, err)
	assert.Equal(t, LittleEndian, cp.Order())

	v, err := cp.GetUint32(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), v)

	assert.NoError(t, cp.Release())
	assert.NoError(t, le.Release())
	assert.NoError(t, buf.Release())
}
