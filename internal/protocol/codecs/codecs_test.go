package codecs

import (
	"errors"
	"testing"

	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/transport"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		f, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %q: %v", name, err)
		}
		if got := f(transport.NewMemoryBuffer(nil), protocol.DefaultLimits()).Name(); got != name {
			t.Fatalf("factory for %q built %q", name, got)
		}
	}
	f, err := Lookup("")
	if err != nil || f(transport.NewMemoryBuffer(nil), protocol.Limits{}).Name() != Default {
		t.Fatalf("empty name did not select default: %v", err)
	}
	if _, err := Lookup("compact"); !errors.Is(err, ErrUnknownImplementation) {
		t.Fatalf("expected ErrUnknownImplementation, got %v", err)
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != "fastbinary" || names[1] != "tbinary" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestRegisterRejectsDuplicatesAndBlanks(t *testing.T) {
	if err := Register("tbinary", Must("fastbinary")); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if err := Register(" ", Must("tbinary")); err == nil {
		t.Fatalf("expected blank name error")
	}
	if err := Register("nil-factory", nil); err == nil {
		t.Fatalf("expected nil factory error")
	}
}
