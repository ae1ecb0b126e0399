package fixtures

import "github.com/danmuck/binwire/internal/protocol"

// OneOfEach carries one field of every primitive type.
type OneOfEach struct {
	ImTrue          bool
	ImFalse         bool
	ABite           int8
	Integer16       int16
	Integer32       int32
	Integer64       int64
	DoublePrecision float64
	SomeCharacters  string
	ZomgUnicode     string
}

func (*OneOfEach) Type() protocol.Type { return protocol.TypeStruct }

func (m *OneOfEach) Write(c *protocol.Codec) error {
	fields := []protocol.Field{
		protocol.NewFieldBool(1, m.ImTrue),
		protocol.NewFieldBool(2, m.ImFalse),
		protocol.NewFieldByte(3, m.ABite),
		protocol.NewFieldI16(4, m.Integer16),
		protocol.NewFieldI32(5, m.Integer32),
		protocol.NewFieldI64(6, m.Integer64),
		protocol.NewFieldDouble(7, m.DoublePrecision),
		protocol.NewFieldString(8, m.SomeCharacters),
		protocol.NewFieldString(9, m.ZomgUnicode),
	}
	for _, f := range fields {
		if err := c.WriteFieldBegin(f.Value.Type(), f.ID); err != nil {
			return err
		}
		if err := c.WriteTyped(f.Value.Type(), f.Value); err != nil {
			return err
		}
	}
	return c.WriteFieldStop()
}

func (m *OneOfEach) Read(c *protocol.Codec) error {
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		var err error
		switch {
		case id == 1 && t == protocol.TypeBool:
			m.ImTrue, err = c.ReadBool()
		case id == 2 && t == protocol.TypeBool:
			m.ImFalse, err = c.ReadBool()
		case id == 3 && t == protocol.TypeByte:
			m.ABite, err = c.ReadI8()
		case id == 4 && t == protocol.TypeI16:
			m.Integer16, err = c.ReadI16()
		case id == 5 && t == protocol.TypeI32:
			m.Integer32, err = c.ReadI32()
		case id == 6 && t == protocol.TypeI64:
			m.Integer64, err = c.ReadI64()
		case id == 7 && t == protocol.TypeDouble:
			m.DoublePrecision, err = c.ReadDouble()
		case id == 8 && t == protocol.TypeString:
			m.SomeCharacters, err = c.ReadString()
		case id == 9 && t == protocol.TypeString:
			m.ZomgUnicode, err = c.ReadString()
		default:
			return false, nil
		}
		return true, err
	})
}

// Nested wraps a OneOfEach with a counter and an optional note.
type Nested struct {
	Inner   OneOfEach
	Count   int32
	Note    string
	NoteSet bool
}

func (*Nested) Type() protocol.Type { return protocol.TypeStruct }

// SetNote assigns the optional note.
func (m *Nested) SetNote(note string) {
	m.Note = note
	m.NoteSet = true
}

func (m *Nested) Write(c *protocol.Codec) error {
	if err := c.WriteFieldBegin(protocol.TypeStruct, 1); err != nil {
		return err
	}
	if err := c.WriteTyped(protocol.TypeStruct, &m.Inner); err != nil {
		return err
	}
	if err := c.WriteFieldBegin(protocol.TypeI32, 2); err != nil {
		return err
	}
	if err := c.WriteI32(m.Count); err != nil {
		return err
	}
	if m.NoteSet {
		if err := c.WriteFieldBegin(protocol.TypeString, 3); err != nil {
			return err
		}
		if err := c.WriteString(m.Note); err != nil {
			return err
		}
	}
	return c.WriteFieldStop()
}

func (m *Nested) Read(c *protocol.Codec) error {
	m.NoteSet = false
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		var err error
		switch {
		case id == 1 && t == protocol.TypeStruct:
			m.Inner = OneOfEach{}
			err = c.ReadMessage(&m.Inner)
		case id == 2 && t == protocol.TypeI32:
			m.Count, err = c.ReadI32()
		case id == 3 && t == protocol.TypeString:
			m.Note, err = c.ReadString()
			m.NoteSet = err == nil
		default:
			return false, nil
		}
		return true, err
	})
}
