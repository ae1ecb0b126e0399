// Package inspect converts generic structs to and from a self-describing
// document form that survives JSON and TOML. Every field keeps its wire tag
// so a document encodes back to the exact bytes it was decoded from.
package inspect

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/danmuck/binwire/internal/protocol"
)

var ErrInvalidDocument = errors.New("inspect: invalid document")

// Document is one struct region.
type Document struct {
	Fields []FieldDoc `json:"fields" toml:"fields"`
}

// FieldDoc is one field. Exactly one of Value, Base64 or Struct is set:
// Base64 carries string payloads that are not valid UTF-8, Struct carries
// nested regions. Non-finite doubles are spelled "NaN", "+Inf" and "-Inf".
type FieldDoc struct {
	ID     int16     `json:"id" toml:"id"`
	Type   string    `json:"type" toml:"type"`
	Value  any       `json:"value,omitempty" toml:"value,omitempty"`
	Base64 string    `json:"base64,omitempty" toml:"base64,omitempty"`
	Struct *Document `json:"struct,omitempty" toml:"struct,omitempty"`
}

// FromStruct builds the document form of s.
func FromStruct(s *protocol.Struct) (*Document, error) {
	doc := &Document{Fields: make([]FieldDoc, 0, s.Len())}
	for _, f := range s.Fields {
		fd, err := fromField(f)
		if err != nil {
			return nil, err
		}
		doc.Fields = append(doc.Fields, fd)
	}
	return doc, nil
}

func fromField(f protocol.Field) (FieldDoc, error) {
	if f.Value == nil {
		return FieldDoc{}, fmt.Errorf("field %d: %w", f.ID, protocol.ErrTypeMismatch)
	}
	fd := FieldDoc{ID: f.ID, Type: f.Value.Type().String()}
	switch v := f.Value.(type) {
	case protocol.Bool:
		fd.Value = bool(v)
	case protocol.Byte:
		fd.Value = int64(v)
	case protocol.I16:
		fd.Value = int64(v)
	case protocol.I32:
		fd.Value = int64(v)
	case protocol.I64:
		fd.Value = int64(v)
	case protocol.Double:
		fd.Value = formatDouble(float64(v))
	case protocol.String:
		if utf8.ValidString(string(v)) {
			fd.Value = string(v)
		} else {
			fd.Base64 = base64.StdEncoding.EncodeToString([]byte(v))
		}
	case *protocol.Struct:
		inner, err := FromStruct(v)
		if err != nil {
			return FieldDoc{}, fmt.Errorf("field %d: %w", f.ID, err)
		}
		fd.Struct = inner
	default:
		return FieldDoc{}, fmt.Errorf("field %d: %w", f.ID, protocol.MismatchError{Tag: f.Value.Type(), Value: f.Value})
	}
	return fd, nil
}

func formatDouble(v float64) any {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return v
	}
}

// ToStruct converts a document back into a generic struct. Bool fields go
// through co, so loose values such as 0 or "" encode as true and a missing
// value follows co.NilAsFalse.
func (d *Document) ToStruct(co protocol.Coercion) (*protocol.Struct, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: missing struct", ErrInvalidDocument)
	}
	s := protocol.NewStruct()
	for _, fd := range d.Fields {
		v, err := fd.value(co)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", fd.ID, err)
		}
		s.Add(fd.ID, v)
	}
	return s, nil
}

func (fd FieldDoc) value(co protocol.Coercion) (protocol.Value, error) {
	t, err := protocol.ParseType(fd.Type)
	if err != nil {
		return nil, err
	}
	switch t {
	case protocol.TypeBool:
		b, err := co.Bool(fd.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: bool value: %w", ErrInvalidDocument, err)
		}
		return b, nil
	case protocol.TypeByte:
		n, err := parseInt(fd.Value, 8)
		return protocol.Byte(n), err
	case protocol.TypeI16:
		n, err := parseInt(fd.Value, 16)
		return protocol.I16(n), err
	case protocol.TypeI32:
		n, err := parseInt(fd.Value, 32)
		return protocol.I32(n), err
	case protocol.TypeI64:
		n, err := parseInt(fd.Value, 64)
		return protocol.I64(n), err
	case protocol.TypeDouble:
		f, err := parseDouble(fd.Value)
		return protocol.Double(f), err
	case protocol.TypeString:
		if fd.Base64 != "" {
			raw, err := base64.StdEncoding.DecodeString(fd.Base64)
			if err != nil {
				return nil, fmt.Errorf("%w: base64: %v", ErrInvalidDocument, err)
			}
			return protocol.String(raw), nil
		}
		if fd.Value == nil {
			return protocol.String(""), nil
		}
		s, ok := fd.Value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: string value %v", ErrInvalidDocument, fd.Value)
		}
		return protocol.String(s), nil
	case protocol.TypeStruct:
		return fd.Struct.ToStruct(co)
	default:
		return nil, protocol.UnknownTypeError{Tag: t}
	}
}

// parseInt accepts the numeric shapes JSON and TOML decoders produce.
func parseInt(v any, bits int) (int64, error) {
	var n int64
	var err error
	switch x := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		n, err = strconv.ParseInt(x.String(), 10, bits)
	case string:
		n, err = strconv.ParseInt(x, 10, bits)
	case int64:
		n = x
		if bits < 64 && (x < -(1<<(bits-1)) || x > 1<<(bits-1)-1) {
			err = strconv.ErrRange
		}
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%w: %v is not an integer", ErrInvalidDocument, x)
		}
		return parseInt(strconv.FormatFloat(x, 'f', -1, 64), bits)
	default:
		return 0, fmt.Errorf("%w: integer value %v", ErrInvalidDocument, v)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return n, nil
}

func parseDouble(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return f, nil
	case float64:
		return x, nil
	case int64:
		return float64(x), nil
	case string:
		switch x {
		case "NaN":
			return math.NaN(), nil
		case "+Inf", "Inf":
			return math.Inf(1), nil
		case "-Inf":
			return math.Inf(-1), nil
		}
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: double value %v", ErrInvalidDocument, v)
	}
}
