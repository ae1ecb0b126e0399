package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "binwire":
		return binwireTemplate, nil
	case "minimal":
		return minimalTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const binwireTemplate = `[codec]
implementation = "tbinary"
max_depth = 64
string_limit = 0
nil_as_false = true
metrics = true

[server]
name = "binwire"
addr = ":9400"
cors_origins = ["http://localhost:3000"]
max_body_bytes = 1048576

[log]
level = "info"

[[schemas]]
name = "point"
strict = false

  [[schemas.fields]]
  id = 1
  type = "i32"
  required = true

  [[schemas.fields]]
  id = 2
  type = "i32"
  required = true

[[schemas]]
name = "labeled_point"
unique = true

  [[schemas.fields]]
  id = 1
  type = "string"
  required = true

  [[schemas.fields]]
  id = 2
  type = "struct"
  nested = "point"
`

const minimalTemplate = `[codec]
implementation = "fastbinary"
`
