package tbinary

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/testutil/testlog"
	"github.com/danmuck/binwire/internal/transport"
)

func TestPrimitiveLayouts(t *testing.T) {
	testlog.Start(t)
	buf := transport.NewMemoryBuffer(nil)
	p := New(buf, protocol.DefaultLimits())

	steps := []struct {
		name  string
		write func() error
		want  []byte
	}{
		{"bool", func() error { return p.WriteBool(true) }, []byte{0x01}},
		{"i8", func() error { return p.WriteI8(-1) }, []byte{0xFF}},
		{"i16", func() error { return p.WriteI16(27000) }, []byte{0x69, 0x78}},
		{"i32", func() error { return p.WriteI32(-1073741825) }, []byte{0xBF, 0xFF, 0xFF, 0xFF}},
		{"i64", func() error { return p.WriteI64(math.MinInt64) }, []byte{0x80, 0, 0, 0, 0, 0, 0, 0}},
		{"double", func() error { return p.WriteDouble(-2.0) }, []byte{0xC0, 0, 0, 0, 0, 0, 0, 0}},
		{"string", func() error { return p.WriteString("ab") }, []byte{0, 0, 0, 2, 'a', 'b'}},
		{"field", func() error { return p.WriteFieldBegin(protocol.TypeI64, 258) }, []byte{0x0A, 0x01, 0x02}},
		{"stop", p.WriteFieldStop, []byte{0x00}},
	}
	for _, step := range steps {
		buf.Reset()
		if err := step.write(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if !bytes.Equal(buf.Bytes(), step.want) {
			t.Fatalf("%s: got % x want % x", step.name, buf.Bytes(), step.want)
		}
	}
}

func TestReadFieldBeginStopHasNoID(t *testing.T) {
	buf := transport.NewMemoryBuffer([]byte{0x00, 0x7F})
	p := New(buf, protocol.DefaultLimits())
	tag, id, err := p.ReadFieldBegin()
	if err != nil || tag != protocol.TypeStop || id != 0 {
		t.Fatalf("got %v %d %v", tag, id, err)
	}
	if buf.Available() != 1 {
		t.Fatalf("stop consumed id bytes")
	}
}

func TestReadBinaryReturnsCopy(t *testing.T) {
	buf := transport.NewMemoryBuffer([]byte{0, 0, 0, 3, 1, 2, 3})
	p := New(buf, protocol.DefaultLimits())
	b, err := p.ReadBinary()
	if err != nil || !bytes.Equal(b, []byte{1, 2, 3}) {
		t.Fatalf("got %v %v", b, err)
	}
	if _, err := p.ReadBinary(); !errors.Is(err, protocol.ErrUnderflow) {
		t.Fatalf("expected underflow on empty buffer, got %v", err)
	}
}

func TestReadDoubleSpecialValues(t *testing.T) {
	for _, v := range []float64{math.Inf(1), math.Inf(-1), math.Copysign(0, -1), math.MaxFloat64, math.SmallestNonzeroFloat64} {
		buf := transport.NewMemoryBuffer(nil)
		p := New(buf, protocol.DefaultLimits())
		if err := p.WriteDouble(v); err != nil {
			t.Fatalf("write %v: %v", v, err)
		}
		got, err := p.ReadDouble()
		if err != nil || math.Float64bits(got) != math.Float64bits(v) {
			t.Fatalf("round trip %v: got %v %v", v, got, err)
		}
	}
	buf := transport.NewMemoryBuffer(nil)
	p := New(buf, protocol.DefaultLimits())
	if err := p.WriteDouble(math.NaN()); err != nil {
		t.Fatalf("write NaN: %v", err)
	}
	if got, err := p.ReadDouble(); err != nil || !math.IsNaN(got) {
		t.Fatalf("NaN round trip: %v %v", got, err)
	}
}
