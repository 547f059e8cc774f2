// Command reflectworker runs the bridge worker loop over the process's
// standard input and standard output. It is the ambient CLI entry point
// spec.md §1 explicitly treats as external to the protocol; the protocol
// itself does not depend on how this command is invoked.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reflectbridge/internal/worker"
)

// fileConfig mirrors worker.Config for the optional TOML config file;
// spec.md §6 still recognizes exactly one option.
type fileConfig struct {
	Debug bool `toml:"debug"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debugFlag bool
	var configPath string

	cmd := &cobra.Command{
		Use:   "reflectworker",
		Short: "Run the reflective-bridge worker over stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := worker.Config{Debug: debugFlag}

			env := os.Getenv("REFLECTBRIDGE_DEBUG")
			if !cmd.Flags().Changed("debug") && env != "" {
				cfg.Debug = env == "1" || env == "true"
			}

			if configPath != "" {
				var fc fileConfig
				if _, err := toml.DecodeFile(configPath, &fc); err != nil {
					return fmt.Errorf("reflectworker: reading config %s: %w", configPath, err)
				}
				if !cmd.Flags().Changed("debug") && env == "" {
					cfg.Debug = fc.Debug
				}
			}

			var log *zap.Logger
			if cfg.Debug {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				log = l
			} else {
				log = zap.NewNop()
			}
			defer log.Sync()

			return worker.Run(os.Stdin, os.Stdout, cfg, log)
		},
	}

	cmd.Flags().BoolVar(&debugFlag, "debug", false, "echo each incoming command's name to stderr before executing it")
	cmd.Flags().StringVar(&configPath, "config", "", "optional TOML config file providing the debug option")

	return cmd
}
