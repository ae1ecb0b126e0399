package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/binwire/internal/logging"
	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/protocol/codecs"
	"github.com/danmuck/binwire/internal/protocol/schema"
	"github.com/rs/zerolog"
)

// Config is the resolved binwire configuration.
type Config struct {
	Codec   CodecConfig
	Server  ServerConfig
	Log     LogConfig
	Schemas []schema.Def
}

type CodecConfig struct {
	Implementation string
	Limits         protocol.Limits
	NilAsFalse     bool
	Metrics        bool
}

type ServerConfig struct {
	Name         string
	Addr         string
	CorsOrigins  []string
	MaxBodyBytes int64
}

type LogConfig struct {
	Level zerolog.Level
}

type fileConfig struct {
	Codec struct {
		Implementation string `toml:"implementation"`
		MaxDepth       int    `toml:"max_depth"`
		StringLimit    int    `toml:"string_limit"`
		NilAsFalse     bool   `toml:"nil_as_false"`
		Metrics        bool   `toml:"metrics"`
	} `toml:"codec"`
	Server struct {
		Name         string   `toml:"name"`
		Addr         string   `toml:"addr"`
		CorsOrigins  []string `toml:"cors_origins"`
		MaxBodyBytes int64    `toml:"max_body_bytes"`
	} `toml:"server"`
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Schemas []schema.Def `toml:"schemas"`
}

func Default() Config {
	return Config{
		Codec: CodecConfig{
			Implementation: codecs.Default,
			Limits:         protocol.DefaultLimits(),
			NilAsFalse:     true,
			Metrics:        true,
		},
		Server: ServerConfig{
			Name:         "binwire",
			Addr:         ":9400",
			CorsOrigins:  []string{"http://localhost:3000"},
			MaxBodyBytes: 1 << 20,
		},
		Log: LogConfig{Level: zerolog.InfoLevel},
	}
}

// Load reads path over Default; keys absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load binwire config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	if meta.IsDefined("codec", "implementation") {
		cfg.Codec.Implementation = strings.TrimSpace(raw.Codec.Implementation)
	}
	if meta.IsDefined("codec", "max_depth") {
		cfg.Codec.Limits.MaxDepth = raw.Codec.MaxDepth
	}
	if meta.IsDefined("codec", "string_limit") {
		cfg.Codec.Limits.StringLimit = raw.Codec.StringLimit
	}
	if meta.IsDefined("codec", "nil_as_false") {
		cfg.Codec.NilAsFalse = raw.Codec.NilAsFalse
	}
	if meta.IsDefined("codec", "metrics") {
		cfg.Codec.Metrics = raw.Codec.Metrics
	}

	if meta.IsDefined("server", "name") {
		cfg.Server.Name = strings.TrimSpace(raw.Server.Name)
	}
	if meta.IsDefined("server", "addr") {
		cfg.Server.Addr = strings.TrimSpace(raw.Server.Addr)
	}
	if meta.IsDefined("server", "cors_origins") {
		cfg.Server.CorsOrigins = normalizeOrigins(raw.Server.CorsOrigins)
	}
	if meta.IsDefined("server", "max_body_bytes") {
		cfg.Server.MaxBodyBytes = raw.Server.MaxBodyBytes
	}

	if meta.IsDefined("log", "level") {
		level, ok := logging.ParseLevel(raw.Log.Level)
		if !ok {
			return Config{}, fmt.Errorf("parse log level: %q", raw.Log.Level)
		}
		cfg.Log.Level = level
	}

	if meta.IsDefined("schemas") {
		cfg.Schemas = raw.Schemas
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("binwire config %s: %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, err := codecs.Lookup(cfg.Codec.Implementation); err != nil {
		return err
	}
	if cfg.Codec.Limits.MaxDepth < 0 {
		return fmt.Errorf("codec max_depth must be >= 0")
	}
	if cfg.Codec.Limits.StringLimit < 0 {
		return fmt.Errorf("codec string_limit must be >= 0")
	}
	if strings.TrimSpace(cfg.Server.Name) == "" {
		return fmt.Errorf("server config missing name")
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server max_body_bytes must be > 0")
	}
	if _, err := schema.Build(cfg.Schemas); err != nil {
		return err
	}
	return nil
}

// Registry builds the schema registry declared in the config.
func (c Config) Registry() (*schema.Registry, error) {
	return schema.Build(c.Schemas)
}

// Coercion returns the bool adapter selected by codec.nil_as_false.
func (c Config) Coercion() protocol.Coercion {
	return protocol.Coercion{NilAsFalse: c.Codec.NilAsFalse}
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
