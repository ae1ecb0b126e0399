package main

import (
	"fmt"
	"os"

	"github.com/danmuck/binwire/internal/config"
	"github.com/danmuck/binwire/internal/logging"
	"github.com/spf13/cobra"
)

// cli holds state shared by subcommands, filled in by PersistentPreRunE.
type cli struct {
	cfgFile  string
	logLevel string
	impl     string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "binwirectl",
		Short:         "Encode, decode and serve binary struct payloads",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
	}
	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (defaults are used when empty)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override the configured log level")
	root.PersistentFlags().StringVar(&c.impl, "impl", "", "protocol implementation: tbinary|fastbinary")

	root.AddCommand(
		newDecodeCmd(c),
		newEncodeCmd(c),
		newServeCmd(c),
		newConfigCmd(),
	)
	return root
}

func (c *cli) load() error {
	cfg := config.Default()
	if c.cfgFile != "" {
		loaded, err := config.Load(c.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.impl != "" {
		cfg.Codec.Implementation = c.impl
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	// --log-level beats BINWIRE_LOG_LEVEL, which beats the config file.
	logCfg := logging.ConfigForProfile(logging.ProfileRuntime)
	switch {
	case c.logLevel != "":
		level, ok := logging.ParseLevel(c.logLevel)
		if !ok {
			return fmt.Errorf("parse log level: %q", c.logLevel)
		}
		logCfg.Level = level
	case os.Getenv(logging.EnvLogLevel) == "":
		logCfg.Level = cfg.Log.Level
	}
	logging.Apply(logCfg)

	c.cfg = cfg
	return nil
}
