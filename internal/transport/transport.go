// Package transport owns the byte sink/source consumed by the protocol codecs.
//
// Ownership boundary:
// - Transport contract (write, exact read, available)
// - in-memory buffer implementation
// - metering wrapper
package transport

import (
	"errors"
	"fmt"
)

// ErrUnderflow reports a read larger than the bytes currently available.
var ErrUnderflow = errors.New("transport: underflow")

// Transport is an ordered byte sink/source.
//
// Read returns exactly n bytes or fails with ErrUnderflow without consuming
// anything. Available is the count of buffered bytes ready to read.
type Transport interface {
	Write(p []byte) error
	Read(n int) ([]byte, error)
	Available() int
}

// UnderflowError carries the requested and available byte counts.
type UnderflowError struct {
	Want int
	Have int
}

func (e UnderflowError) Error() string {
	return fmt.Sprintf("transport: underflow: want %d bytes, have %d", e.Want, e.Have)
}

func (e UnderflowError) Is(target error) bool {
	return target == ErrUnderflow
}
