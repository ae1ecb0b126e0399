package protocol

import (
	"fmt"
	"strings"
)

// Type is the one-byte wire tag preceding every encoded value.
type Type byte

const (
	TypeStop   Type = 0
	TypeBool   Type = 2
	TypeByte   Type = 3
	TypeDouble Type = 4
	TypeI16    Type = 6
	TypeI32    Type = 8
	TypeI64    Type = 10
	TypeString Type = 11
	TypeStruct Type = 12
)

var typeNames = map[Type]string{
	TypeBool:   "bool",
	TypeByte:   "byte",
	TypeDouble: "double",
	TypeI16:    "i16",
	TypeI32:    "i32",
	TypeI64:    "i64",
	TypeString: "string",
	TypeStruct: "struct",
}

// Valid reports whether t names a value shape. TypeStop is not a value.
func (t Type) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

func (t Type) String() string {
	if t == TypeStop {
		return "stop"
	}
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type(%d)", byte(t))
}

// FixedSize returns the encoded size of fixed-width types.
func (t Type) FixedSize() (int, bool) {
	switch t {
	case TypeBool, TypeByte:
		return 1, true
	case TypeI16:
		return 2, true
	case TypeI32:
		return 4, true
	case TypeI64, TypeDouble:
		return 8, true
	default:
		return 0, false
	}
}

// ParseType maps a type name ("i32", "string", ...) back to its tag.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	if name == "i8" {
		return TypeByte, nil
	}
	return TypeStop, UnknownTypeError{Name: name}
}

// Limits bounds decoding work on untrusted input. Zero means unlimited.
type Limits struct {
	MaxDepth    int
	StringLimit int
}

func DefaultLimits() Limits {
	return Limits{MaxDepth: 64}
}
