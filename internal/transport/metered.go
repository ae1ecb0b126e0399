package transport

import (
	"errors"

	"github.com/danmuck/binwire/internal/observability"
)

// Metered wraps a Transport and records byte counts and underflows under name.
type Metered struct {
	inner Transport
	name  string
}

func NewMetered(inner Transport, name string) *Metered {
	return &Metered{inner: inner, name: name}
}

func (m *Metered) Write(p []byte) error {
	if err := m.inner.Write(p); err != nil {
		return err
	}
	observability.RecordTransportBytes(m.name, "write", len(p))
	return nil
}

func (m *Metered) Read(n int) ([]byte, error) {
	b, err := m.inner.Read(n)
	if err != nil {
		if errors.Is(err, ErrUnderflow) {
			observability.RecordTransportUnderflow(m.name)
		}
		return nil, err
	}
	observability.RecordTransportBytes(m.name, "read", len(b))
	return b, nil
}

func (m *Metered) Available() int {
	return m.inner.Available()
}

// Unwrap returns the wrapped transport.
func (m *Metered) Unwrap() Transport {
	return m.inner
}
