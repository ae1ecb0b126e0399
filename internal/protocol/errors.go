package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/danmuck/binwire/internal/transport"
)

var (
	ErrUnderflow     = transport.ErrUnderflow
	ErrUnknownType   = errors.New("protocol: unknown type")
	ErrTypeMismatch  = errors.New("protocol: value type mismatch")
	ErrDepthExceeded = errors.New("protocol: struct nesting too deep")
	ErrStringTooLong = errors.New("protocol: string exceeds limit")
	ErrAbsentValue   = errors.New("protocol: absent value")
)

// UnknownTypeError reports a tag outside the defined set.
type UnknownTypeError struct {
	Tag  Type
	Name string
}

func (e UnknownTypeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("protocol: unknown type %q", e.Name)
	}
	return fmt.Sprintf("protocol: unknown type %d", byte(e.Tag))
}

func (e UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// MismatchError reports a value whose Go type does not fit the tag.
type MismatchError struct {
	Tag   Type
	Value Value
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("protocol: value %T does not encode as %s", e.Value, e.Tag)
}

func (e MismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// StringLimitError reports a declared length above the configured limit.
type StringLimitError struct {
	Length uint32
	Limit  int
}

func (e StringLimitError) Error() string {
	return fmt.Sprintf("protocol: string length %d exceeds limit %d", e.Length, e.Limit)
}

func (e StringLimitError) Is(target error) bool {
	return target == ErrStringTooLong
}

// FieldError locates an error inside nested structs by field id path.
type FieldError struct {
	Path []int16 // outermost first
	Err  error
}

func (e *FieldError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, len(e.Path))
	for i, id := range e.Path {
		parts[i] = strconv.Itoa(int(id))
	}
	return fmt.Sprintf("at field %s: %v", strings.Join(parts, "."), e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// wrapField prefixes err's path with id.
func wrapField(err error, id int16) error {
	if err == nil {
		return nil
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{Path: append([]int16{id}, fe.Path...), Err: fe.Err}
	}
	return &FieldError{Path: []int16{id}, Err: err}
}

// ErrorKind buckets err into a short label for metrics, logs and API errors.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnderflow):
		return "underflow"
	case errors.Is(err, ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrDepthExceeded):
		return "depth"
	case errors.Is(err, ErrStringTooLong):
		return "string_limit"
	case errors.Is(err, ErrAbsentValue):
		return "absent_value"
	default:
		return "other"
	}
}
