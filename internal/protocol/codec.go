package protocol

import (
	"github.com/danmuck/binwire/internal/observability"
	"github.com/danmuck/binwire/internal/transport"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Encoder writes primitive values and field headers to a transport.
type Encoder interface {
	WriteBool(v bool) error
	WriteI8(v int8) error
	WriteI16(v int16) error
	WriteI32(v int32) error
	WriteI64(v int64) error
	WriteDouble(v float64) error
	WriteString(v string) error
	WriteBinary(v []byte) error
	WriteFieldBegin(t Type, id int16) error
	WriteFieldStop() error
}

// Decoder reads primitive values and field headers from a transport.
// ReadFieldBegin returns TypeStop with id 0 at the end of a struct.
type Decoder interface {
	ReadBool() (bool, error)
	ReadI8() (int8, error)
	ReadI16() (int16, error)
	ReadI32() (int32, error)
	ReadI64() (int64, error)
	ReadDouble() (float64, error)
	ReadString() (string, error)
	ReadBinary() ([]byte, error)
	ReadFieldBegin() (Type, int16, error)
}

// Protocol is one wire implementation bound to a transport. Implementations
// hold no bytes between calls, so two of them may share a transport.
type Protocol interface {
	Encoder
	Decoder
	Name() string
	Transport() transport.Transport
	Limits() Limits
}

// Message is a struct that serializes its own fields.
type Message interface {
	Write(c *Codec) error
	Read(c *Codec) error
}

// Codec adds typed dispatch and struct handling on top of a Protocol.
//
// A Codec tracks nesting depth while a call is in flight and must not be
// used from more than one goroutine at a time.
type Codec struct {
	Protocol

	limits  Limits
	log     zerolog.Logger
	metrics bool
	depth   int
}

func NewCodec(p Protocol) *Codec {
	return &Codec{
		Protocol: p,
		limits:   p.Limits(),
		log:      log.Logger.With().Str("codec", p.Name()).Logger(),
	}
}

// WithLogger replaces the codec's logger.
func (c *Codec) WithLogger(logger zerolog.Logger) *Codec {
	c.log = logger.With().Str("codec", c.Name()).Logger()
	return c
}

// WithMetrics toggles prometheus recording of typed values and failures.
func (c *Codec) WithMetrics(enabled bool) *Codec {
	c.metrics = enabled
	return c
}

// Depth is the current struct nesting level; zero between calls.
func (c *Codec) Depth() int {
	return c.depth
}

// WriteMessage encodes m as a struct region (fields then stop marker).
func (c *Codec) WriteMessage(m Message) error {
	if m == nil {
		return c.fail("write", MismatchError{Tag: TypeStruct})
	}
	if err := c.enter(); err != nil {
		return c.fail("write", err)
	}
	defer c.leave()
	return m.Write(c)
}

// ReadMessage decodes one struct region into m.
func (c *Codec) ReadMessage(m Message) error {
	if m == nil {
		return c.fail("read", MismatchError{Tag: TypeStruct})
	}
	if err := c.enter(); err != nil {
		return c.fail("read", err)
	}
	defer c.leave()
	return m.Read(c)
}

func (c *Codec) enter() error {
	if c.limits.MaxDepth > 0 && c.depth >= c.limits.MaxDepth {
		return ErrDepthExceeded
	}
	c.depth++
	c.log.Trace().Int("depth", c.depth).Msg("struct begin")
	return nil
}

func (c *Codec) leave() {
	c.log.Trace().Int("depth", c.depth).Msg("struct end")
	c.depth--
}

// fail logs and records err once, at the depth where it surfaced.
func (c *Codec) fail(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := ErrorKind(err)
	if c.metrics {
		observability.RecordCodecError(c.Name(), op, kind)
	}
	c.log.Debug().Str("op", op).Str("kind", kind).Int("depth", c.depth).Err(err).Msg("codec failure")
	return err
}

func (c *Codec) record(op string, t Type) {
	if c.metrics {
		observability.RecordCodecValue(c.Name(), op, t.String())
	}
}
