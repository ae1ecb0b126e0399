// Package tbinary is the reference binary protocol: every primitive goes to
// the transport as its own write, using encoding/binary big-endian layouts.
package tbinary

import (
	"encoding/binary"
	"math"

	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/transport"
)

const Name = "tbinary"

// Protocol implements protocol.Protocol over a borrowed transport.
type Protocol struct {
	trans  transport.Transport
	limits protocol.Limits
}

var _ protocol.Protocol = (*Protocol)(nil)

func New(t transport.Transport, limits protocol.Limits) *Protocol {
	return &Protocol{trans: t, limits: limits}
}

// NewCodec is shorthand for protocol.NewCodec(New(t, limits)).
func NewCodec(t transport.Transport, limits protocol.Limits) *protocol.Codec {
	return protocol.NewCodec(New(t, limits))
}

func (p *Protocol) Name() string                   { return Name }
func (p *Protocol) Transport() transport.Transport { return p.trans }
func (p *Protocol) Limits() protocol.Limits        { return p.limits }

func (p *Protocol) WriteBool(v bool) error {
	if v {
		return p.trans.Write([]byte{1})
	}
	return p.trans.Write([]byte{0})
}

func (p *Protocol) WriteI8(v int8) error {
	return p.trans.Write([]byte{byte(v)})
}

func (p *Protocol) WriteI16(v int16) error {
	buf := make([]byte, 2)
	binary.BigEndian.PutUint16(buf, uint16(v))
	return p.trans.Write(buf)
}

func (p *Protocol) WriteI32(v int32) error {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(v))
	return p.trans.Write(buf)
}

func (p *Protocol) WriteI64(v int64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(v))
	return p.trans.Write(buf)
}

func (p *Protocol) WriteDouble(v float64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(v))
	return p.trans.Write(buf)
}

func (p *Protocol) WriteString(v string) error {
	return p.WriteBinary([]byte(v))
}

func (p *Protocol) WriteBinary(v []byte) error {
	if uint64(len(v)) > math.MaxUint32 {
		return protocol.ErrStringTooLong
	}
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(len(v)))
	if err := p.trans.Write(buf); err != nil {
		return err
	}
	if len(v) == 0 {
		return nil
	}
	return p.trans.Write(v)
}

func (p *Protocol) WriteFieldBegin(t protocol.Type, id int16) error {
	if err := p.WriteI8(int8(t)); err != nil {
		return err
	}
	return p.WriteI16(id)
}

func (p *Protocol) WriteFieldStop() error {
	return p.WriteI8(int8(protocol.TypeStop))
}

func (p *Protocol) ReadBool() (bool, error) {
	b, err := p.trans.Read(1)
	if err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func (p *Protocol) ReadI8() (int8, error) {
	b, err := p.trans.Read(1)
	if err != nil {
		return 0, err
	}
	return int8(b[0]), nil
}

func (p *Protocol) ReadI16() (int16, error) {
	b, err := p.trans.Read(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

func (p *Protocol) ReadI32() (int32, error) {
	b, err := p.trans.Read(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (p *Protocol) ReadI64() (int64, error) {
	b, err := p.trans.Read(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

func (p *Protocol) ReadDouble() (float64, error) {
	b, err := p.trans.Read(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

func (p *Protocol) ReadString() (string, error) {
	b, err := p.ReadBinary()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *Protocol) ReadBinary() ([]byte, error) {
	b, err := p.trans.Read(4)
	if err != nil {
		return nil, err
	}
	size := binary.BigEndian.Uint32(b)
	if p.limits.StringLimit > 0 && uint64(size) > uint64(p.limits.StringLimit) {
		return nil, protocol.StringLimitError{Length: size, Limit: p.limits.StringLimit}
	}
	if uint64(size) > uint64(math.MaxInt) {
		return nil, protocol.StringLimitError{Length: size, Limit: math.MaxInt}
	}
	return p.trans.Read(int(size))
}

func (p *Protocol) ReadFieldBegin() (protocol.Type, int16, error) {
	b, err := p.trans.Read(1)
	if err != nil {
		return protocol.TypeStop, 0, err
	}
	t := protocol.Type(b[0])
	if t == protocol.TypeStop {
		return protocol.TypeStop, 0, nil
	}
	id, err := p.ReadI16()
	if err != nil {
		return protocol.TypeStop, 0, err
	}
	return t, id, nil
}
