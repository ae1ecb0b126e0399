package fastbinary

import (
	"errors"
	"fmt"

	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/transport"
)

var ErrTrailingBytes = errors.New("fastbinary: trailing bytes after message")

// Marshal encodes m as one struct region and returns the bytes.
func Marshal(m protocol.Message) ([]byte, error) {
	return MarshalWithLimits(m, protocol.DefaultLimits())
}

func MarshalWithLimits(m protocol.Message, limits protocol.Limits) ([]byte, error) {
	buf := transport.NewMemoryBuffer(nil)
	if err := NewCodec(buf, limits).WriteMessage(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes exactly one struct region from data into m.
func Unmarshal(data []byte, m protocol.Message) error {
	return UnmarshalWithLimits(data, m, protocol.DefaultLimits())
}

func UnmarshalWithLimits(data []byte, m protocol.Message, limits protocol.Limits) error {
	buf := transport.NewMemoryBuffer(data)
	if err := NewCodec(buf, limits).ReadMessage(m); err != nil {
		return err
	}
	if n := buf.Available(); n != 0 {
		return fmt.Errorf("%w: %d", ErrTrailingBytes, n)
	}
	return nil
}
