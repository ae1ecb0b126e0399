package protocol_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/protocol/fastbinary"
	"github.com/danmuck/binwire/internal/protocol/tbinary"
	"github.com/danmuck/binwire/internal/testutil/testlog"
	"github.com/danmuck/binwire/internal/transport"
)

func exampleStruct() *protocol.Struct {
	return protocol.NewStruct(
		protocol.NewFieldBool(1, true),
		protocol.NewFieldI16(2, 27000),
		protocol.NewFieldString(3, "hi"),
	)
}

var exampleBytes = []byte{
	0x02, 0x00, 0x01, 0x01, // bool id=1 true
	0x06, 0x00, 0x02, 0x69, 0x78, // i16 id=2 27000
	0x0B, 0x00, 0x03, 0x00, 0x00, 0x00, 0x02, 'h', 'i', // string id=3 "hi"
	0x00, // stop
}

func TestStructExampleWireLayout(t *testing.T) {
	testlog.Start(t)
	for name, newCodec := range implementations {
		buf := transport.NewMemoryBuffer(nil)
		c := newCodec(buf, protocol.DefaultLimits())
		if err := c.WriteTyped(protocol.TypeStruct, exampleStruct()); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		if !bytes.Equal(buf.Bytes(), exampleBytes) {
			t.Fatalf("%s: unexpected bytes:\n got % x\nwant % x", name, buf.Bytes(), exampleBytes)
		}
		got, err := c.ReadTyped(protocol.TypeStruct)
		if err != nil {
			t.Fatalf("%s: read: %v", name, err)
		}
		s := got.(*protocol.Struct)
		if s.Len() != 3 || !s.Equal(exampleStruct()) {
			t.Fatalf("%s: decoded %+v", name, s.Fields)
		}
		if buf.Available() != 0 {
			t.Fatalf("%s: stop marker not last byte read, %d left", name, buf.Available())
		}
	}
}

func TestStructReadStopsAtMarkerLeavingTrailingBytes(t *testing.T) {
	testlog.Start(t)
	data := append(append([]byte{}, exampleBytes...), 0xAA, 0xBB)
	buf := transport.NewMemoryBuffer(data)
	s := &protocol.Struct{}
	if err := tbinary.NewCodec(buf, protocol.DefaultLimits()).ReadMessage(s); err != nil {
		t.Fatalf("read: %v", err)
	}
	if buf.Available() != 2 {
		t.Fatalf("expected 2 trailing bytes, got %d", buf.Available())
	}
}

func TestEmptyStructIsSingleStopByte(t *testing.T) {
	testlog.Start(t)
	for name, newCodec := range implementations {
		buf := transport.NewMemoryBuffer(nil)
		c := newCodec(buf, protocol.DefaultLimits())
		if err := c.WriteMessage(protocol.NewStruct()); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		if !bytes.Equal(buf.Bytes(), []byte{0}) {
			t.Fatalf("%s: unexpected bytes % x", name, buf.Bytes())
		}
		got, err := c.ReadTyped(protocol.TypeStruct)
		if err != nil || got.(*protocol.Struct).Len() != 0 {
			t.Fatalf("%s: read: %v %v", name, got, err)
		}
	}
}

func TestStructPreservesOrderAndDuplicates(t *testing.T) {
	testlog.Start(t)
	in := protocol.NewStruct().
		Add(9, protocol.I32(1)).
		Add(-3, protocol.String("neg id")).
		Add(9, protocol.I32(2)).
		Add(1, protocol.Double(0.5))
	buf := transport.NewMemoryBuffer(nil)
	c := fastbinary.NewCodec(buf, protocol.DefaultLimits())
	if err := c.WriteMessage(in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := &protocol.Struct{}
	if err := tbinary.NewCodec(buf, protocol.DefaultLimits()).ReadMessage(out); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("decoded %+v want %+v", out.Fields, in.Fields)
	}
	f, ok := out.Get(9)
	if v, err := f.I32(); !ok || err != nil || v != 1 {
		t.Fatalf("Get returned %+v %v %v", f, ok, err)
	}
	if _, ok := out.Get(100); ok {
		t.Fatalf("Get found a missing id")
	}
}

func TestNestedStructRoundTrip(t *testing.T) {
	testlog.Start(t)
	inner := protocol.NewStruct(protocol.NewFieldI64(1, -33), protocol.NewFieldString(2, "inner"))
	in := protocol.NewStruct(
		protocol.NewFieldByte(1, -42),
		protocol.NewFieldStruct(2, inner),
		protocol.NewFieldStruct(3, protocol.NewStruct(protocol.NewFieldStruct(1, protocol.NewStruct()))),
		protocol.NewFieldBool(4, false),
	)
	for name, newCodec := range implementations {
		buf := transport.NewMemoryBuffer(nil)
		c := newCodec(buf, protocol.DefaultLimits())
		if err := c.WriteMessage(in); err != nil {
			t.Fatalf("%s: write: %v", name, err)
		}
		got, err := c.ReadTyped(protocol.TypeStruct)
		if err != nil {
			t.Fatalf("%s: read: %v", name, err)
		}
		if !protocol.Equal(got, in) {
			t.Fatalf("%s: nested mismatch", name)
		}
		if c.Depth() != 0 {
			t.Fatalf("%s: depth not restored: %d", name, c.Depth())
		}
	}
}

func TestTruncatedStructReportsUnderflowWithPath(t *testing.T) {
	testlog.Start(t)
	in := protocol.NewStruct(
		protocol.NewFieldI32(1, 7),
		protocol.NewFieldStruct(5, protocol.NewStruct(protocol.NewFieldString(2, "abcdef"))),
	)
	full := transport.NewMemoryBuffer(nil)
	if err := tbinary.NewCodec(full, protocol.DefaultLimits()).WriteMessage(in); err != nil {
		t.Fatalf("write: %v", err)
	}
	encoded := full.Bytes()

	for cut := 0; cut < len(encoded); cut++ {
		buf := transport.NewMemoryBuffer(encoded[:cut])
		_, err := fastbinary.NewCodec(buf, protocol.DefaultLimits()).ReadTyped(protocol.TypeStruct)
		if !errors.Is(err, protocol.ErrUnderflow) {
			t.Fatalf("cut=%d: expected ErrUnderflow, got %v", cut, err)
		}
	}

	// Inner string payload cut short: path is 5.2.
	buf := transport.NewMemoryBuffer(encoded[:len(encoded)-4])
	_, err := tbinary.NewCodec(buf, protocol.DefaultLimits()).ReadTyped(protocol.TypeStruct)
	var fe *protocol.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %v", err)
	}
	if len(fe.Path) != 2 || fe.Path[0] != 5 || fe.Path[1] != 2 {
		t.Fatalf("unexpected path %v", fe.Path)
	}
}

func TestUnknownTagInsideStructFailsBeforeConsumingValue(t *testing.T) {
	testlog.Start(t)
	// field header with tag 13 (map), id 1, followed by bytes that must stay unread
	buf := transport.NewMemoryBuffer([]byte{13, 0, 1, 0xDE, 0xAD})
	_, err := tbinary.NewCodec(buf, protocol.DefaultLimits()).ReadTyped(protocol.TypeStruct)
	if !errors.Is(err, protocol.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if buf.Available() != 2 {
		t.Fatalf("expected value bytes untouched, %d left", buf.Available())
	}
}

func TestStructWriteRejectsBadFieldValues(t *testing.T) {
	testlog.Start(t)
	buf := transport.NewMemoryBuffer(nil)
	c := tbinary.NewCodec(buf, protocol.DefaultLimits())
	err := c.WriteMessage(protocol.NewStruct(protocol.Field{ID: 4}))
	var fe *protocol.FieldError
	if !errors.Is(err, protocol.ErrTypeMismatch) || !errors.As(err, &fe) || fe.Path[0] != 4 {
		t.Fatalf("expected mismatch at field 4, got %v", err)
	}
	if buf.Available() != 0 {
		t.Fatalf("bad field wrote %d bytes", buf.Available())
	}
}

func nestStructs(depth int) *protocol.Struct {
	s := protocol.NewStruct()
	for i := 1; i < depth; i++ {
		s = protocol.NewStruct(protocol.NewFieldStruct(1, s))
	}
	return s
}

func TestDepthLimit(t *testing.T) {
	testlog.Start(t)
	limits := protocol.Limits{MaxDepth: 8}

	buf := transport.NewMemoryBuffer(nil)
	c := fastbinary.NewCodec(buf, limits)
	if err := c.WriteMessage(nestStructs(8)); err != nil {
		t.Fatalf("write at limit: %v", err)
	}
	if _, err := c.ReadTyped(protocol.TypeStruct); err != nil {
		t.Fatalf("read at limit: %v", err)
	}

	if err := c.WriteMessage(nestStructs(9)); !errors.Is(err, protocol.ErrDepthExceeded) {
		t.Fatalf("expected write depth error, got %v", err)
	}
	if c.Depth() != 0 {
		t.Fatalf("depth not restored after failure: %d", c.Depth())
	}

	buf.Reset()
	if err := tbinary.NewCodec(buf, protocol.Limits{}).WriteMessage(nestStructs(9)); err != nil {
		t.Fatalf("unlimited write: %v", err)
	}
	encoded := append([]byte{}, buf.Bytes()...)
	if _, err := c.ReadTyped(protocol.TypeStruct); !errors.Is(err, protocol.ErrDepthExceeded) {
		t.Fatalf("expected read depth error, got %v", err)
	}
	skip := fastbinary.NewCodec(transport.NewMemoryBuffer(encoded), limits)
	if err := skip.Skip(protocol.TypeStruct); !errors.Is(err, protocol.ErrDepthExceeded) {
		t.Fatalf("expected skip depth error, got %v", err)
	}
}

func TestSkipConsumesExactlyOneValue(t *testing.T) {
	testlog.Start(t)
	values := []protocol.Value{
		protocol.Bool(true), protocol.Byte(1), protocol.I16(2), protocol.I32(3),
		protocol.I64(4), protocol.Double(5), protocol.String("six"), exampleStruct(),
		protocol.NewStruct(protocol.NewFieldStruct(1, exampleStruct())),
	}
	for name, newCodec := range implementations {
		buf := transport.NewMemoryBuffer(nil)
		c := newCodec(buf, protocol.DefaultLimits())
		for _, v := range values {
			if err := c.WriteTyped(v.Type(), v); err != nil {
				t.Fatalf("%s: write %T: %v", name, v, err)
			}
			if err := c.WriteI8(0x7A); err != nil {
				t.Fatalf("%s: sentinel: %v", name, err)
			}
			if err := c.Skip(v.Type()); err != nil {
				t.Fatalf("%s: skip %T: %v", name, v, err)
			}
			if b, err := c.ReadI8(); err != nil || b != 0x7A {
				t.Fatalf("%s: skip %T overran: %v %v", name, v, b, err)
			}
		}
	}
}

func TestEqualSemantics(t *testing.T) {
	if !protocol.Equal(nil, nil) || protocol.Equal(protocol.I32(1), nil) {
		t.Fatalf("nil handling")
	}
	if protocol.Equal(protocol.I32(1), protocol.I64(1)) {
		t.Fatalf("different types compared equal")
	}
	if !protocol.Equal(protocol.Double(math.NaN()), protocol.Double(math.NaN())) {
		t.Fatalf("NaN did not compare equal to itself")
	}
	if protocol.Equal(protocol.Double(0), protocol.Double(math.Copysign(0, -1))) {
		t.Fatalf("signed zeros compared equal")
	}
	a := exampleStruct()
	b := exampleStruct()
	b.Fields[2].Value = protocol.String("ho")
	if a.Equal(b) || !a.Equal(exampleStruct()) {
		t.Fatalf("struct equality")
	}
}

func TestFieldAccessorsRejectWrongType(t *testing.T) {
	f := protocol.NewFieldString(1, "x")
	if _, err := f.I32(); !errors.Is(err, protocol.ErrTypeMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if b, err := f.Bytes(); err != nil || string(b) != "x" {
		t.Fatalf("bytes accessor: %v %v", b, err)
	}
	if _, err := protocol.NewFieldBool(1, true).Struct(); !errors.Is(err, protocol.ErrTypeMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
}

func TestNilStructIsAMismatchBothWays(t *testing.T) {
	testlog.Start(t)
	for name, newCodec := range implementations {
		c := newCodec(transport.NewMemoryBuffer([]byte{0x00}), protocol.DefaultLimits())
		if err := c.WriteMessage((*protocol.Struct)(nil)); !errors.Is(err, protocol.ErrTypeMismatch) {
			t.Fatalf("%s: write nil struct: %v", name, err)
		}
		if err := c.ReadMessage((*protocol.Struct)(nil)); !errors.Is(err, protocol.ErrTypeMismatch) {
			t.Fatalf("%s: read nil struct: %v", name, err)
		}
		if c.Depth() != 0 {
			t.Fatalf("%s: depth %d after failed read", name, c.Depth())
		}
	}
}
