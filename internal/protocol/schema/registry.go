package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/binwire/internal/protocol"
)

// FieldDef is the configuration form of a FieldSpec.
type FieldDef struct {
	ID       int16  `toml:"id"`
	Type     string `toml:"type"`
	Required bool   `toml:"required"`
	Nested   string `toml:"nested"`
}

// Def is the configuration form of a Schema. Nested refers to other defs
// by name.
type Def struct {
	Name   string     `toml:"name"`
	Strict bool       `toml:"strict"`
	Unique bool       `toml:"unique"`
	Fields []FieldDef `toml:"fields"`
}

// Registry holds named schemas.
type Registry struct {
	schemas map[string]Schema
}

// Build resolves defs into a registry. Nested references must name a def in
// the same set and may not form a cycle.
func Build(defs []Def) (*Registry, error) {
	byName := make(map[string]Def, len(defs))
	for i, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("schema[%d]: name is required", i)
		}
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("schema %q defined twice", name)
		}
		byName[name] = d
	}

	r := &Registry{schemas: make(map[string]Schema, len(defs))}
	resolving := make(map[string]bool)
	var resolve func(name string) (*Schema, error)
	resolve = func(name string) (*Schema, error) {
		if s, ok := r.schemas[name]; ok {
			return &s, nil
		}
		d, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("schema %q not defined", name)
		}
		if resolving[name] {
			return nil, fmt.Errorf("schema %q nests itself", name)
		}
		resolving[name] = true
		defer delete(resolving, name)

		s := Schema{Name: name, Strict: d.Strict, Unique: d.Unique}
		for _, fd := range d.Fields {
			t, err := protocol.ParseType(fd.Type)
			if err != nil {
				return nil, fmt.Errorf("schema %q field %d: %w", name, fd.ID, err)
			}
			spec := FieldSpec{ID: fd.ID, Type: t, Required: fd.Required}
			if nested := strings.TrimSpace(fd.Nested); nested != "" {
				if t != protocol.TypeStruct {
					return nil, fmt.Errorf("schema %q field %d: nested schema on %s field", name, fd.ID, t)
				}
				inner, err := resolve(nested)
				if err != nil {
					return nil, err
				}
				spec.Nested = inner
			}
			s.Fields = append(s.Fields, spec)
		}
		r.schemas[name] = s
		return &s, nil
	}

	for name := range byName {
		if _, err := resolve(name); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Lookup(name string) (Schema, bool) {
	if r == nil {
		return Schema{}, false
	}
	s, ok := r.schemas[name]
	return s, ok
}

// Names lists registered schemas in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
