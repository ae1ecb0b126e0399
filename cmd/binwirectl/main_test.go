package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/binwire/internal/testutil/testlog"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.Execute()
	return out.String(), err
}

const exampleHex = "0200010106000269780b0003000000026869" + "00"

func TestDecodeHexToJSON(t *testing.T) {
	testlog.Start(t)
	for _, impl := range []string{"tbinary", "fastbinary"} {
		out, err := run(t, exampleHex, "decode", "--hex", "--impl", impl, "--log-level", "warn")
		if err != nil {
			t.Fatalf("%s: decode: %v", impl, err)
		}
		for _, want := range []string{`"type": "bool"`, `"value": 27000`, `"value": "hi"`} {
			if !strings.Contains(out, want) {
				t.Fatalf("%s: missing %s in:\n%s", impl, want, out)
			}
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testlog.Start(t)
	doc, err := run(t, exampleHex, "decode", "--hex", "--format", "toml", "--log-level", "warn")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := run(t, doc, "encode", "--hex", "--format", "toml", "--impl", "fastbinary", "--log-level", "warn")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.TrimSpace(out) != exampleHex {
		t.Fatalf("got %q want %q", strings.TrimSpace(out), exampleHex)
	}
}

func TestDecodeErrors(t *testing.T) {
	testlog.Start(t)
	if _, err := run(t, "0200", "decode", "--hex", "--log-level", "warn"); err == nil || !strings.Contains(err.Error(), "underflow") {
		t.Fatalf("expected underflow, got %v", err)
	}
	if _, err := run(t, exampleHex+"00", "decode", "--hex", "--log-level", "warn"); err == nil || !strings.Contains(err.Error(), "trailing") {
		t.Fatalf("expected trailing bytes error, got %v", err)
	}
	if _, err := run(t, exampleHex, "decode", "--hex", "--impl", "compact"); err == nil {
		t.Fatalf("expected unknown implementation error")
	}
	if _, err := run(t, "zz", "decode", "--hex", "--log-level", "warn"); err == nil {
		t.Fatalf("expected hex error")
	}
}

func TestConfigInitValidateAndUse(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "binwire.toml")
	if _, err := run(t, "", "config", "init", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := run(t, "", "config", "init", path); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	out, err := run(t, "", "config", "validate", path)
	if err != nil || !strings.Contains(out, "schemas=[labeled_point point]") {
		t.Fatalf("validate: %q %v", out, err)
	}

	// point requires ids 1 and 2 as i32; the example struct does not fit.
	_, err = run(t, exampleHex, "--config", path, "--log-level", "warn", "decode", "--hex", "--schema", "point")
	if err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("expected schema violation, got %v", err)
	}
	point := "080001000000010800020000000200"
	if _, err := run(t, point, "--config", path, "--log-level", "warn", "decode", "--hex", "--schema", "point"); err != nil {
		t.Fatalf("point decode: %v", err)
	}
}
