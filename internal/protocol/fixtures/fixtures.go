// Package fixtures holds hand-written messages shaped like generated struct
// code. Tests across the module use them to exercise the Message contract.
package fixtures

import "github.com/danmuck/binwire/internal/protocol"

// readFields walks one struct region, handing each header to fn. fn returns
// false for ids it does not handle, which are then skipped.
func readFields(c *protocol.Codec, fn func(t protocol.Type, id int16) (bool, error)) error {
	for {
		t, id, err := c.ReadFieldBegin()
		if err != nil {
			return err
		}
		if t == protocol.TypeStop {
			return nil
		}
		handled, err := fn(t, id)
		if err != nil {
			return err
		}
		if !handled {
			if err := c.Skip(t); err != nil {
				return err
			}
		}
	}
}

// OneBool holds a single bool at id 1.
type OneBool struct {
	Bool bool
}

func (*OneBool) Type() protocol.Type { return protocol.TypeStruct }

func (m *OneBool) Write(c *protocol.Codec) error {
	if err := c.WriteFieldBegin(protocol.TypeBool, 1); err != nil {
		return err
	}
	if err := c.WriteBool(m.Bool); err != nil {
		return err
	}
	return c.WriteFieldStop()
}

func (m *OneBool) Read(c *protocol.Codec) error {
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		if id != 1 || t != protocol.TypeBool {
			return false, nil
		}
		v, err := c.ReadBool()
		m.Bool = v
		return true, err
	})
}

// OneByte holds a single byte at id 1.
type OneByte struct {
	Byte int8
}

func (*OneByte) Type() protocol.Type { return protocol.TypeStruct }

func (m *OneByte) Write(c *protocol.Codec) error {
	if err := c.WriteFieldBegin(protocol.TypeByte, 1); err != nil {
		return err
	}
	if err := c.WriteI8(m.Byte); err != nil {
		return err
	}
	return c.WriteFieldStop()
}

func (m *OneByte) Read(c *protocol.Codec) error {
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		if id != 1 || t != protocol.TypeByte {
			return false, nil
		}
		v, err := c.ReadI8()
		m.Byte = v
		return true, err
	})
}

// OneI16 holds a single i16 at id 1.
type OneI16 struct {
	I16 int16
}

func (*OneI16) Type() protocol.Type { return protocol.TypeStruct }

func (m *OneI16) Write(c *protocol.Codec) error {
	if err := c.WriteFieldBegin(protocol.TypeI16, 1); err != nil {
		return err
	}
	if err := c.WriteI16(m.I16); err != nil {
		return err
	}
	return c.WriteFieldStop()
}

func (m *OneI16) Read(c *protocol.Codec) error {
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		if id != 1 || t != protocol.TypeI16 {
			return false, nil
		}
		v, err := c.ReadI16()
		m.I16 = v
		return true, err
	})
}

// OneI32 holds a single i32 at id 1.
type OneI32 struct {
	I32 int32
}

func (*OneI32) Type() protocol.Type { return protocol.TypeStruct }

func (m *OneI32) Write(c *protocol.Codec) error {
	if err := c.WriteFieldBegin(protocol.TypeI32, 1); err != nil {
		return err
	}
	if err := c.WriteI32(m.I32); err != nil {
		return err
	}
	return c.WriteFieldStop()
}

func (m *OneI32) Read(c *protocol.Codec) error {
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		if id != 1 || t != protocol.TypeI32 {
			return false, nil
		}
		v, err := c.ReadI32()
		m.I32 = v
		return true, err
	})
}

// OneI64 holds a single i64 at id 1.
type OneI64 struct {
	I64 int64
}

func (*OneI64) Type() protocol.Type { return protocol.TypeStruct }

func (m *OneI64) Write(c *protocol.Codec) error {
	if err := c.WriteFieldBegin(protocol.TypeI64, 1); err != nil {
		return err
	}
	if err := c.WriteI64(m.I64); err != nil {
		return err
	}
	return c.WriteFieldStop()
}

func (m *OneI64) Read(c *protocol.Codec) error {
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		if id != 1 || t != protocol.TypeI64 {
			return false, nil
		}
		v, err := c.ReadI64()
		m.I64 = v
		return true, err
	})
}

// OneDouble holds a single double at id 1.
type OneDouble struct {
	Double float64
}

func (*OneDouble) Type() protocol.Type { return protocol.TypeStruct }

func (m *OneDouble) Write(c *protocol.Codec) error {
	if err := c.WriteFieldBegin(protocol.TypeDouble, 1); err != nil {
		return err
	}
	if err := c.WriteDouble(m.Double); err != nil {
		return err
	}
	return c.WriteFieldStop()
}

func (m *OneDouble) Read(c *protocol.Codec) error {
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		if id != 1 || t != protocol.TypeDouble {
			return false, nil
		}
		v, err := c.ReadDouble()
		m.Double = v
		return true, err
	})
}

// OneString holds a single string at id 1.
type OneString struct {
	String string
}

func (*OneString) Type() protocol.Type { return protocol.TypeStruct }

func (m *OneString) Write(c *protocol.Codec) error {
	if err := c.WriteFieldBegin(protocol.TypeString, 1); err != nil {
		return err
	}
	if err := c.WriteString(m.String); err != nil {
		return err
	}
	return c.WriteFieldStop()
}

func (m *OneString) Read(c *protocol.Codec) error {
	return readFields(c, func(t protocol.Type, id int16) (bool, error) {
		if id != 1 || t != protocol.TypeString {
			return false, nil
		}
		v, err := c.ReadString()
		m.String = v
		return true, err
	})
}
