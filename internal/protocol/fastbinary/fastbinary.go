// Package fastbinary is a second, independent binary protocol. Field headers
// and strings are assembled in one slice and handed to the transport in a
// single write; integers are packed by hand.
package fastbinary

import (
	"math"

	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/transport"
)

const Name = "fastbinary"

// Protocol implements protocol.Protocol over a borrowed transport.
type Protocol struct {
	trans  transport.Transport
	limits protocol.Limits
}

var _ protocol.Protocol = (*Protocol)(nil)

func New(t transport.Transport, limits protocol.Limits) *Protocol {
	return &Protocol{trans: t, limits: limits}
}

func NewCodec(t transport.Transport, limits protocol.Limits) *protocol.Codec {
	return protocol.NewCodec(New(t, limits))
}

func (p *Protocol) Name() string                   { return Name }
func (p *Protocol) Transport() transport.Transport { return p.trans }
func (p *Protocol) Limits() protocol.Limits        { return p.limits }

func putU16(b []byte, v uint16) []byte {
	return append(b, byte(v>>8), byte(v))
}

func putU32(b []byte, v uint32) []byte {
	return append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func putU64(b []byte, v uint64) []byte {
	return append(b,
		byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32),
		byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func u64(b []byte) uint64 {
	return uint64(u32(b[:4]))<<32 | uint64(u32(b[4:8]))
}

func (p *Protocol) WriteBool(v bool) error {
	var b byte
	if v {
		b = 1
	}
	return p.trans.Write([]byte{b})
}

func (p *Protocol) WriteI8(v int8) error {
	return p.trans.Write([]byte{byte(v)})
}

func (p *Protocol) WriteI16(v int16) error {
	var scratch [2]byte
	return p.trans.Write(putU16(scratch[:0], uint16(v)))
}

func (p *Protocol) WriteI32(v int32) error {
	var scratch [4]byte
	return p.trans.Write(putU32(scratch[:0], uint32(v)))
}

func (p *Protocol) WriteI64(v int64) error {
	var scratch [8]byte
	return p.trans.Write(putU64(scratch[:0], uint64(v)))
}

func (p *Protocol) WriteDouble(v float64) error {
	var scratch [8]byte
	return p.trans.Write(putU64(scratch[:0], math.Float64bits(v)))
}

func (p *Protocol) WriteString(v string) error {
	if uint64(len(v)) > math.MaxUint32 {
		return protocol.ErrStringTooLong
	}
	out := make([]byte, 0, 4+len(v))
	out = putU32(out, uint32(len(v)))
	out = append(out, v...)
	return p.trans.Write(out)
}

func (p *Protocol) WriteBinary(v []byte) error {
	if uint64(len(v)) > math.MaxUint32 {
		return protocol.ErrStringTooLong
	}
	out := make([]byte, 0, 4+len(v))
	out = putU32(out, uint32(len(v)))
	out = append(out, v...)
	return p.trans.Write(out)
}

func (p *Protocol) WriteFieldBegin(t protocol.Type, id int16) error {
	var scratch [3]byte
	out := append(scratch[:0], byte(t))
	return p.trans.Write(putU16(out, uint16(id)))
}

func (p *Protocol) WriteFieldStop() error {
	return p.trans.Write([]byte{byte(protocol.TypeStop)})
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
	return int16(u16(b)), nil
}

func (p *Protocol) ReadI32() (int32, error) {
	b, err := p.trans.Read(4)
	if err != nil {
		return 0, err
	}
	return int32(u32(b)), nil
}

func (p *Protocol) ReadI64() (int64, error) {
	b, err := p.trans.Read(8)
	if err != nil {
		return 0, err
	}
	return int64(u64(b)), nil
}

func (p *Protocol) ReadDouble() (float64, error) {
	b, err := p.trans.Read(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u64(b)), nil
}

func (p *Protocol) ReadString() (string, error) {
	b, err := p.ReadBinary()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBinary checks the declared length against the limit before reading
// the payload, so an oversized prefix never allocates.
func (p *Protocol) ReadBinary() ([]byte, error) {
	head, err := p.trans.Read(4)
	if err != nil {
		return nil, err
	}
	size := u32(head)
	if limit := p.limits.StringLimit; limit > 0 && uint64(size) > uint64(limit) {
		return nil, protocol.StringLimitError{Length: size, Limit: limit}
	}
	if uint64(size) > uint64(math.MaxInt) {
		return nil, protocol.StringLimitError{Length: size, Limit: math.MaxInt}
	}
	if size == 0 {
		return []byte{}, nil
	}
	return p.trans.Read(int(size))
}

func (p *Protocol) ReadFieldBegin() (protocol.Type, int16, error) {
	tb, err := p.trans.Read(1)
	if err != nil {
		return protocol.TypeStop, 0, err
	}
	t := protocol.Type(tb[0])
	if t == protocol.TypeStop {
		return t, 0, nil
	}
	idb, err := p.trans.Read(2)
	if err != nil {
		return protocol.TypeStop, 0, err
	}
	return t, int16(u16(idb)), nil
}
