package protocol

import "reflect"

// Coercion adapts loosely typed caller input to a Bool. It sits outside the
// dispatcher, which only accepts Bool for TypeBool.
type Coercion struct {
	// NilAsFalse encodes absent values as false instead of rejecting them.
	NilAsFalse bool
}

// CompatCoercion treats absent values as false.
var CompatCoercion = Coercion{NilAsFalse: true}

// Bool maps v to a Bool: false and Bool(false) are false, an absent value is
// false under NilAsFalse and ErrAbsentValue otherwise, everything else
// (zero, negatives, empty strings) is true.
func (co Coercion) Bool(v any) (Bool, error) {
	if isAbsent(v) {
		if co.NilAsFalse {
			return false, nil
		}
		return false, ErrAbsentValue
	}
	switch b := v.(type) {
	case bool:
		return Bool(b), nil
	case Bool:
		return b, nil
	case *bool:
		return Bool(*b), nil
	}
	return true, nil
}

// WriteBool coerces v and writes it through the dispatcher.
func (co Coercion) WriteBool(c *Codec, v any) error {
	b, err := co.Bool(v)
	if err != nil {
		return c.fail("write", err)
	}
	return c.WriteTyped(TypeBool, b)
}

// Truthy is CompatCoercion.Bool without the error.
func Truthy(v any) bool {
	b, _ := CompatCoercion.Bool(v)
	return bool(b)
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
