// Package codecs resolves protocol implementations by name for config,
// HTTP and CLI callers.
package codecs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/protocol/fastbinary"
	"github.com/danmuck/binwire/internal/protocol/tbinary"
	"github.com/danmuck/binwire/internal/transport"
)

var (
	ErrUnknownImplementation = errors.New("codecs: unknown implementation")
	ErrDuplicateName         = errors.New("codecs: implementation already registered")
)

// Factory builds a codec over a borrowed transport.
type Factory func(t transport.Transport, limits protocol.Limits) *protocol.Codec

const Default = tbinary.Name

var (
	mu        sync.RWMutex
	factories = map[string]Factory{
		tbinary.Name:    tbinary.NewCodec,
		fastbinary.Name: fastbinary.NewCodec,
	}
)

// Register adds an implementation under name. Names are unique.
func Register(name string, f Factory) error {
	name = strings.TrimSpace(name)
	if name == "" || f == nil {
		return fmt.Errorf("codecs: register requires a name and factory")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := factories[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	factories[name] = f
	return nil
}

// Lookup returns the factory for name; an empty name selects Default.
func Lookup(name string) (Factory, error) {
	if name == "" {
		name = Default
	}
	mu.RLock()
	defer mu.RUnlock()
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownImplementation, name)
	}
	return f, nil
}

// Must is Lookup for names known at compile time.
func Must(name string) Factory {
	f, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return f
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
