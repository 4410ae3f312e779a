package bytebuf

import (
	"bytes"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// Transport is the write side of a buffer hand-off. Write transfers ownership
// of buf to the transport, which releases it once the bytes are on the wire
// (or on failure). Implementations are free to batch; Flush forces pending
// writes out.
type Transport interface {
	Write(buf Buf) error
	Flush() error
	Close() error
}

// Sink is the read side of a buffer hand-off. Accept transfers ownership of
// buf to the sink.
type Sink interface {
	Accept(buf Buf) error
	Close()
}

const defaultReadsQueueSize = 1024

// NewReadSinkAdapter bridges a buffer-producing I/O loop to an io.Reader
// consumer. Accepted buffers are copied into allocator-provided read buffers
// and released immediately, so the producer's buffers return to their pool
// without waiting on the consumer.
func NewReadSinkAdapter(alloc Allocator, queueSize int) *ReadSinkAdapter {
	if queueSize < 1 {
		queueSize = defaultReadsQueueSize
	}
	return &ReadSinkAdapter{
		alloc: alloc,
		reads: make(chan Buf, queueSize),
	}
}

type ReadSinkAdapter struct {
	alloc      Allocator
	reads      chan Buf
	readBuffer bytes.Buffer
	closeOnce  sync.Once
}

func (self *ReadSinkAdapter) Accept(data Buf) error {
	n := data.ReadableBytes()
	if n < 1 {
		return data.Release()
	}
	buf, err := self.alloc.Allocate(n, n, false)
	if err != nil {
		_ = data.Release()
		return errors.Wrap(err, "read buffer")
	}
	if err := buf.WriteBuf(data, n); err != nil {
		_ = buf.Release()
		_ = data.Release()
		return errors.Wrap(err, "copy")
	}
	if err := data.Release(); err != nil {
		_ = buf.Release()
		return err
	}
	self.reads <- buf
	return nil
}

func (self *ReadSinkAdapter) Close() {
	self.closeOnce.Do(func() {
		self.reads <- nil
	})
}

// Read drains queued buffers into the staging buffer before satisfying p,
// blocking only when nothing is buffered. A nil buffer on the queue marks
// end of stream.
func (self *ReadSinkAdapter) Read(p []byte) (int, error) {
preread:
	for {
		select {
		case buf, ok := <-self.reads:
			if !ok {
				break preread
			}
			if buf == nil {
				close(self.reads)
				break preread
			}
			if err := self.drain(buf); err != nil {
				return 0, err
			}

		default:
			break preread
		}
	}
	if self.readBuffer.Len() > 0 {
		return self.readBuffer.Read(p)
	}
	buf, ok := <-self.reads
	if !ok {
		return 0, io.EOF
	}
	if buf == nil {
		close(self.reads)
		return 0, io.EOF
	}
	if err := self.drain(buf); err != nil {
		return 0, err
	}
	return self.readBuffer.Read(p)
}

func (self *ReadSinkAdapter) drain(buf Buf) error {
	err := buf.ReadBytesTo(&self.readBuffer, buf.ReadableBytes())
	if rErr := buf.Release(); rErr != nil && err == nil {
		err = rErr
	}
	if err != nil {
		return errors.Wrap(err, "drain")
	}
	return nil
}
