package protocol

// Field is one struct member: a caller-defined id and its value.
type Field struct {
	ID    int16
	Value Value
}

// Struct is a generic struct value: fields in write order. Duplicate and
// missing ids are legal; schema checks belong to callers.
type Struct struct {
	Fields []Field
}

func NewStruct(fields ...Field) *Struct {
	return &Struct{Fields: fields}
}

func (*Struct) Type() Type { return TypeStruct }

// Add appends a field and returns s for chaining.
func (s *Struct) Add(id int16, v Value) *Struct {
	s.Fields = append(s.Fields, Field{ID: id, Value: v})
	return s
}

// Get returns the first field with the given id.
func (s *Struct) Get(id int16) (Field, bool) {
	for _, f := range s.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Len is the number of fields, counting duplicates.
func (s *Struct) Len() int {
	return len(s.Fields)
}

// Equal reports whether both structs hold equal fields in the same order.
func (s *Struct) Equal(o *Struct) bool {
	if s == nil || o == nil {
		return s == o
	}
	if len(s.Fields) != len(o.Fields) {
		return false
	}
	for i := range s.Fields {
		if s.Fields[i].ID != o.Fields[i].ID || !Equal(s.Fields[i].Value, o.Fields[i].Value) {
			return false
		}
	}
	return true
}

// Write emits a header and value per field, then the stop marker.
func (s *Struct) Write(c *Codec) error {
	if s == nil {
		return c.fail("write", MismatchError{Tag: TypeStruct})
	}
	for _, f := range s.Fields {
		if f.Value == nil {
			return wrapField(c.fail("write", MismatchError{}), f.ID)
		}
		tag := f.Value.Type()
		if !tag.Valid() {
			return wrapField(c.fail("write", UnknownTypeError{Tag: tag}), f.ID)
		}
		if err := c.WriteFieldBegin(tag, f.ID); err != nil {
			return wrapField(c.fail("write", err), f.ID)
		}
		if err := c.WriteTyped(tag, f.Value); err != nil {
			return wrapField(err, f.ID)
		}
	}
	return c.fail("write", c.WriteFieldStop())
}

// Read replaces s's fields with the next struct region on the wire.
// Running out of bytes before the stop marker is an underflow.
func (s *Struct) Read(c *Codec) error {
	if s == nil {
		return c.fail("read", MismatchError{Tag: TypeStruct})
	}
	s.Fields = s.Fields[:0]
	for {
		tag, id, err := c.ReadFieldBegin()
		if err != nil {
			return c.fail("read", err)
		}
		if tag == TypeStop {
			return nil
		}
		v, err := c.ReadTyped(tag)
		if err != nil {
			return wrapField(err, id)
		}
		s.Fields = append(s.Fields, Field{ID: id, Value: v})
	}
}
