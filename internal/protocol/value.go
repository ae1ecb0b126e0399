package protocol

import "math"

// Value is one typed wire value. The concrete types are Bool, Byte, I16,
// I32, I64, Double, String, *Struct, and any Message reporting TypeStruct.
type Value interface {
	Type() Type
}

type (
	Bool   bool
	Byte   int8
	I16    int16
	I32    int32
	I64    int64
	Double float64
	// String is a length-prefixed byte string; it may hold any bytes.
	String string
)

func (Bool) Type() Type   { return TypeBool }
func (Byte) Type() Type   { return TypeByte }
func (I16) Type() Type    { return TypeI16 }
func (I32) Type() Type    { return TypeI32 }
func (I64) Type() Type    { return TypeI64 }
func (Double) Type() Type { return TypeDouble }
func (String) Type() Type { return TypeString }

// Equal compares two values. Doubles compare by bit pattern so NaN payloads
// and signed zeros round-trip exactly; structs compare field by field in order.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Type() != b.Type() {
		return false
	}
	switch av := a.(type) {
	case Double:
		bv, ok := b.(Double)
		return ok && math.Float64bits(float64(av)) == math.Float64bits(float64(bv))
	case *Struct:
		bv, ok := b.(*Struct)
		return ok && av.Equal(bv)
	case Bool, Byte, I16, I32, I64, String:
		return a == b
	default:
		return false
	}
}
