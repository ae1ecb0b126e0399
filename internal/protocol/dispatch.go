package protocol

// WriteTyped encodes v as a value of type tag. Unknown tags and values that
// do not fit the tag fail before anything reaches the transport.
func (c *Codec) WriteTyped(tag Type, v Value) error {
	if !tag.Valid() {
		c.log.Warn().Uint8("tag", uint8(tag)).Msg("write of unknown type rejected")
		return c.fail("write", UnknownTypeError{Tag: tag})
	}
	if v == nil || v.Type() != tag {
		return c.fail("write", MismatchError{Tag: tag, Value: v})
	}
	c.record("write", tag)

	var err error
	switch tag {
	case TypeBool:
		err = c.WriteBool(bool(v.(Bool)))
	case TypeByte:
		err = c.WriteI8(int8(v.(Byte)))
	case TypeI16:
		err = c.WriteI16(int16(v.(I16)))
	case TypeI32:
		err = c.WriteI32(int32(v.(I32)))
	case TypeI64:
		err = c.WriteI64(int64(v.(I64)))
	case TypeDouble:
		err = c.WriteDouble(float64(v.(Double)))
	case TypeString:
		err = c.WriteString(string(v.(String)))
	case TypeStruct:
		m, ok := v.(Message)
		if !ok {
			return c.fail("write", MismatchError{Tag: tag, Value: v})
		}
		return c.WriteMessage(m)
	}
	return c.fail("write", err)
}

// ReadTyped decodes a fresh value of type tag. Structs decode into a
// generic *Struct.
func (c *Codec) ReadTyped(tag Type) (Value, error) {
	if !tag.Valid() {
		c.log.Warn().Uint8("tag", uint8(tag)).Msg("read of unknown type rejected")
		return nil, c.fail("read", UnknownTypeError{Tag: tag})
	}
	c.record("read", tag)

	switch tag {
	case TypeBool:
		v, err := c.ReadBool()
		if err != nil {
			return nil, c.fail("read", err)
		}
		return Bool(v), nil
	case TypeByte:
		v, err := c.ReadI8()
		if err != nil {
			return nil, c.fail("read", err)
		}
		return Byte(v), nil
	case TypeI16:
		v, err := c.ReadI16()
		if err != nil {
			return nil, c.fail("read", err)
		}
		return I16(v), nil
	case TypeI32:
		v, err := c.ReadI32()
		if err != nil {
			return nil, c.fail("read", err)
		}
		return I32(v), nil
	case TypeI64:
		v, err := c.ReadI64()
		if err != nil {
			return nil, c.fail("read", err)
		}
		return I64(v), nil
	case TypeDouble:
		v, err := c.ReadDouble()
		if err != nil {
			return nil, c.fail("read", err)
		}
		return Double(v), nil
	case TypeString:
		v, err := c.ReadString()
		if err != nil {
			return nil, c.fail("read", err)
		}
		return String(v), nil
	default:
		s := &Struct{}
		if err := c.ReadMessage(s); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Skip consumes one value of type tag without materializing it.
func (c *Codec) Skip(tag Type) error {
	if !tag.Valid() {
		return c.fail("skip", UnknownTypeError{Tag: tag})
	}
	if size, ok := tag.FixedSize(); ok {
		_, err := c.Transport().Read(size)
		return c.fail("skip", err)
	}
	if tag == TypeString {
		_, err := c.ReadBinary()
		return c.fail("skip", err)
	}

	if err := c.enter(); err != nil {
		return c.fail("skip", err)
	}
	defer c.leave()
	for {
		ft, id, err := c.ReadFieldBegin()
		if err != nil {
			return c.fail("skip", err)
		}
		if ft == TypeStop {
			return nil
		}
		if err := c.Skip(ft); err != nil {
			return wrapField(err, id)
		}
	}
}
