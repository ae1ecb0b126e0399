package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/binwire/internal/config"
	"github.com/danmuck/binwire/internal/inspect"
	"github.com/danmuck/binwire/internal/protocol"
	"github.com/danmuck/binwire/internal/protocol/codecs"
	"github.com/danmuck/binwire/internal/protocol/schema"
	"github.com/danmuck/binwire/internal/transport"
	"github.com/spf13/cobra"
)

type codecFlags struct {
	format string
	schema string
	hex    bool
}

func (f *codecFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "json", "document format: json|toml")
	cmd.Flags().StringVar(&f.schema, "schema", "", "validate against a schema from the config")
	cmd.Flags().BoolVar(&f.hex, "hex", false, "binary side is hex text instead of raw bytes")
}

func newDecodeCmd(c *cli) *cobra.Command {
	var flags codecFlags
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode one binary struct into a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()
			return decode(c.cfg, flags, in, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	return cmd
}

func newEncodeCmd(c *cli) *cobra.Command {
	var flags codecFlags
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a document into one binary struct",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()
			return encode(c.cfg, flags, in, cmd.OutOrStdout())
		},
	}
	flags.register(cmd)
	return cmd
}

func decode(cfg config.Config, flags codecFlags, in io.Reader, out io.Writer) error {
	format, sc, err := resolve(cfg, flags)
	if err != nil {
		return err
	}
	factory, err := codecs.Lookup(cfg.Codec.Implementation)
	if err != nil {
		return err
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if flags.hex {
		raw, err = hex.DecodeString(strings.Join(strings.Fields(string(raw)), ""))
		if err != nil {
			return fmt.Errorf("parse hex input: %w", err)
		}
	}

	buf := transport.NewMemoryBuffer(raw)
	v, err := factory(buf, cfg.Codec.Limits).ReadTyped(protocol.TypeStruct)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if n := buf.Available(); n != 0 {
		return fmt.Errorf("decode: %d trailing bytes", n)
	}
	st := v.(*protocol.Struct)
	if sc != nil {
		if err := schema.Validate(st, *sc); err != nil {
			return err
		}
	}

	doc, err := inspect.FromStruct(st)
	if err != nil {
		return err
	}
	rendered, err := inspect.Render(doc, format)
	if err != nil {
		return err
	}
	if !bytes.HasSuffix(rendered, []byte("\n")) {
		rendered = append(rendered, '\n')
	}
	_, err = out.Write(rendered)
	return err
}

func encode(cfg config.Config, flags codecFlags, in io.Reader, out io.Writer) error {
	format, sc, err := resolve(cfg, flags)
	if err != nil {
		return err
	}
	factory, err := codecs.Lookup(cfg.Codec.Implementation)
	if err != nil {
		return err
	}

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	doc, err := inspect.Parse(raw, format)
	if err != nil {
		return err
	}
	st, err := doc.ToStruct(cfg.Coercion())
	if err != nil {
		return err
	}
	if sc != nil {
		if err := schema.Validate(st, *sc); err != nil {
			return err
		}
	}

	buf := transport.NewMemoryBuffer(nil)
	if err := factory(buf, cfg.Codec.Limits).WriteTyped(protocol.TypeStruct, st); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if flags.hex {
		_, err = fmt.Fprintln(out, hex.EncodeToString(buf.Bytes()))
		return err
	}
	_, err = out.Write(buf.Bytes())
	return err
}

func resolve(cfg config.Config, flags codecFlags) (inspect.Format, *schema.Schema, error) {
	format, err := inspect.ParseFormat(flags.format)
	if err != nil {
		return "", nil, err
	}
	if flags.schema == "" {
		return format, nil, nil
	}
	reg, err := cfg.Registry()
	if err != nil {
		return "", nil, err
	}
	sc, ok := reg.Lookup(flags.schema)
	if !ok {
		return "", nil, fmt.Errorf("schema %q not defined", flags.schema)
	}
	return format, &sc, nil
}

// openInput returns the named file, or stdin for no argument or "-".
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
