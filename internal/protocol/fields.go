package protocol

// NewFieldBool creates a bool field.
func NewFieldBool(id int16, v bool) Field {
	return Field{ID: id, Value: Bool(v)}
}

// NewFieldByte creates a byte field.
func NewFieldByte(id int16, v int8) Field {
	return Field{ID: id, Value: Byte(v)}
}

// NewFieldI16 creates an i16 field.
func NewFieldI16(id int16, v int16) Field {
	return Field{ID: id, Value: I16(v)}
}

// NewFieldI32 creates an i32 field.
func NewFieldI32(id int16, v int32) Field {
	return Field{ID: id, Value: I32(v)}
}

// NewFieldI64 creates an i64 field.
func NewFieldI64(id int16, v int64) Field {
	return Field{ID: id, Value: I64(v)}
}

// NewFieldDouble creates a double field.
func NewFieldDouble(id int16, v float64) Field {
	return Field{ID: id, Value: Double(v)}
}

// NewFieldString creates a string field.
func NewFieldString(id int16, v string) Field {
	return Field{ID: id, Value: String(v)}
}

// NewFieldBytes creates a string field from raw bytes.
func NewFieldBytes(id int16, v []byte) Field {
	return Field{ID: id, Value: String(v)}
}

// NewFieldStruct creates a nested struct field.
func NewFieldStruct(id int16, v *Struct) Field {
	return Field{ID: id, Value: v}
}

// Bool returns the field value as bool.
func (f Field) Bool() (bool, error) {
	v, ok := f.Value.(Bool)
	if !ok {
		return false, MismatchError{Tag: TypeBool, Value: f.Value}
	}
	return bool(v), nil
}

// Byte returns the field value as int8.
func (f Field) Byte() (int8, error) {
	v, ok := f.Value.(Byte)
	if !ok {
		return 0, MismatchError{Tag: TypeByte, Value: f.Value}
	}
	return int8(v), nil
}

// I16 returns the field value as int16.
func (f Field) I16() (int16, error) {
	v, ok := f.Value.(I16)
	if !ok {
		return 0, MismatchError{Tag: TypeI16, Value: f.Value}
	}
	return int16(v), nil
}

// I32 returns the field value as int32.
func (f Field) I32() (int32, error) {
	v, ok := f.Value.(I32)
	if !ok {
		return 0, MismatchError{Tag: TypeI32, Value: f.Value}
	}
	return int32(v), nil
}

// I64 returns the field value as int64.
func (f Field) I64() (int64, error) {
	v, ok := f.Value.(I64)
	if !ok {
		return 0, MismatchError{Tag: TypeI64, Value: f.Value}
	}
	return int64(v), nil
}

// Double returns the field value as float64.
func (f Field) Double() (float64, error) {
	v, ok := f.Value.(Double)
	if !ok {
		return 0, MismatchError{Tag: TypeDouble, Value: f.Value}
	}
	return float64(v), nil
}

// String returns the field value as string.
func (f Field) String() (string, error) {
	v, ok := f.Value.(String)
	if !ok {
		return "", MismatchError{Tag: TypeString, Value: f.Value}
	}
	return string(v), nil
}

// Bytes returns a copy of the field value as bytes.
func (f Field) Bytes() ([]byte, error) {
	v, ok := f.Value.(String)
	if !ok {
		return nil, MismatchError{Tag: TypeString, Value: f.Value}
	}
	return []byte(v), nil
}

// Struct returns the field value as a generic struct.
func (f Field) Struct() (*Struct, error) {
	v, ok := f.Value.(*Struct)
	if !ok {
		return nil, MismatchError{Tag: TypeStruct, Value: f.Value}
	}
	return v, nil
}
