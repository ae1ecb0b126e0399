// Package schema validates decoded structs against caller-declared field
// layouts. The codec itself never enforces a schema.
package schema

import (
	"fmt"
	"strings"

	"github.com/danmuck/binwire/internal/protocol"
	"github.com/rs/zerolog/log"
)

// FieldSpec declares one known field.
type FieldSpec struct {
	ID       int16
	Type     protocol.Type
	Required bool
	// Nested validates a struct-typed field's contents.
	Nested *Schema
}

// Schema is the expected layout of one struct.
type Schema struct {
	Name   string
	Fields []FieldSpec
	// Strict rejects ids not listed in Fields.
	Strict bool
	// Unique rejects repeated ids.
	Unique bool
}

type ValidationError struct {
	Schema  string
	Path    []int16
	FieldID int16
	Reason  string
}

func (e ValidationError) Error() string {
	where := e.Schema
	if len(e.Path) > 0 {
		parts := make([]string, len(e.Path))
		for i, id := range e.Path {
			parts[i] = fmt.Sprint(id)
		}
		where = fmt.Sprintf("%s@%s", e.Schema, strings.Join(parts, "."))
	}
	if e.FieldID == 0 {
		return fmt.Sprintf("schema: %s: %s", where, e.Reason)
	}
	return fmt.Sprintf("schema: %s field=%d: %s", where, e.FieldID, e.Reason)
}

// Validate enforces required fields and declared types. Unknown fields are
// ignored unless the schema is strict.
func Validate(s *protocol.Struct, sc Schema) error {
	return validate(s, sc, nil)
}

func validate(s *protocol.Struct, sc Schema, path []int16) error {
	logger := log.With().Str("schema", sc.Name).Logger()
	if s == nil {
		logger.Error().Msg("schema.Validate nil struct")
		return ValidationError{Schema: sc.Name, Path: path, Reason: "missing struct"}
	}
	logger.Debug().Int("fields", s.Len()).Msg("schema.Validate")

	known := make(map[int16]FieldSpec, len(sc.Fields))
	for _, spec := range sc.Fields {
		known[spec.ID] = spec
	}
	seen := make(map[int16]bool, s.Len())

	for _, f := range s.Fields {
		if sc.Unique && seen[f.ID] {
			logger.Error().Int16("field_id", f.ID).Msg("schema.Validate duplicate field")
			return ValidationError{Schema: sc.Name, Path: path, FieldID: f.ID, Reason: "duplicate field"}
		}
		seen[f.ID] = true
		if f.Value == nil {
			logger.Error().Int16("field_id", f.ID).Msg("schema.Validate missing value")
			return ValidationError{Schema: sc.Name, Path: path, FieldID: f.ID, Reason: "missing value"}
		}

		spec, ok := known[f.ID]
		if !ok {
			if sc.Strict {
				logger.Error().Int16("field_id", f.ID).Msg("schema.Validate unknown field")
				return ValidationError{Schema: sc.Name, Path: path, FieldID: f.ID, Reason: "unknown field"}
			}
			continue
		}
		if got := f.Value.Type(); got != spec.Type {
			logger.Error().
				Int16("field_id", f.ID).
				Str("got", got.String()).
				Str("want", spec.Type.String()).
				Msg("schema.Validate type mismatch")
			return ValidationError{Schema: sc.Name, Path: path, FieldID: f.ID, Reason: "type mismatch"}
		}
		if spec.Nested != nil {
			inner, err := f.Struct()
			if err != nil {
				return ValidationError{Schema: sc.Name, Path: path, FieldID: f.ID, Reason: "nested value is not a generic struct"}
			}
			if err := validate(inner, *spec.Nested, append(append([]int16{}, path...), f.ID)); err != nil {
				return err
			}
		}
	}

	for _, spec := range sc.Fields {
		if spec.Required && !seen[spec.ID] {
			logger.Error().Int16("field_id", spec.ID).Msg("schema.Validate missing field")
			return ValidationError{Schema: sc.Name, Path: path, FieldID: spec.ID, Reason: "missing required field"}
		}
	}
	logger.Debug().Msg("schema.Validate ok")
	return nil
}
