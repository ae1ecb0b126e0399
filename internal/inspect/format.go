package inspect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", raw)
	}
}

// Render writes the document in the requested format.
func Render(d *Document, f Format) ([]byte, error) {
	switch f {
	case FormatTOML:
		return toml.Marshal(d)
	case FormatJSON, "":
		return json.MarshalIndent(d, "", "  ")
	default:
		return nil, fmt.Errorf("unknown format: %s", f)
	}
}

// Parse reads a document. JSON numbers are kept exact so i64 values beyond
// 2^53 are not rounded.
func Parse(data []byte, f Format) (*Document, error) {
	var doc Document
	switch f {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	default:
		return nil, fmt.Errorf("unknown format: %s", f)
	}
	return &doc, nil
}
