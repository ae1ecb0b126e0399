package transport

import (
	"bytes"
	"errors"
	"io"
)

// MemoryBuffer is an in-memory Transport. Reads consume from the front,
// writes append to the back.
type MemoryBuffer struct {
	buf []byte
	off int
}

// NewMemoryBuffer returns a buffer preloaded with a copy of data.
func NewMemoryBuffer(data []byte) *MemoryBuffer {
	b := &MemoryBuffer{}
	if len(data) > 0 {
		b.buf = append(make([]byte, 0, len(data)), data...)
	}
	return b
}

// ReadMemoryBuffer drains r into a new buffer.
func ReadMemoryBuffer(r io.Reader) (*MemoryBuffer, error) {
	var staged bytes.Buffer
	if _, err := staged.ReadFrom(r); err != nil {
		return nil, err
	}
	return &MemoryBuffer{buf: staged.Bytes()}, nil
}

func (b *MemoryBuffer) Write(p []byte) error {
	if b == nil {
		return errors.New("transport: nil memory buffer")
	}
	b.compact()
	b.buf = append(b.buf, p...)
	return nil
}

// Read returns a fresh copy of the next n bytes.
func (b *MemoryBuffer) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, UnderflowError{Want: n, Have: b.Available()}
	}
	if have := b.Available(); n > have {
		return nil, UnderflowError{Want: n, Have: have}
	}
	out := make([]byte, n)
	copy(out, b.buf[b.off:b.off+n])
	b.off += n
	return out, nil
}

func (b *MemoryBuffer) Available() int {
	return len(b.buf) - b.off
}

// Bytes returns the unread bytes without consuming them.
func (b *MemoryBuffer) Bytes() []byte {
	return b.buf[b.off:]
}

// Reset drops all buffered bytes.
func (b *MemoryBuffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

// compact reclaims the consumed prefix once it dominates the buffer.
func (b *MemoryBuffer) compact() {
	if b.off == 0 {
		return
	}
	if b.off == len(b.buf) {
		b.buf = b.buf[:0]
		b.off = 0
		return
	}
	if b.off < len(b.buf)/2 {
		return
	}
	n := copy(b.buf, b.buf[b.off:])
	b.buf = b.buf[:n]
	b.off = 0
}
