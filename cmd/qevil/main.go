package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/qevil/internal/app"
	"github.com/kobzarvs/qevil/internal/config"
	"github.com/kobzarvs/qevil/internal/keys"
	"github.com/kobzarvs/qevil/internal/logger"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var (
		debug      bool
		configHome string
	)

	root := &cobra.Command{
		Use:           "qevil [file]",
		Short:         "A modal terminal editor with composable operators",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configHome != "" {
				return os.Setenv("QEVIL_CONFIG_HOME", configHome)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(debug); err != nil {
				return err
			}
			defer logger.Close()

			opts := app.Options{}
			if len(args) > 0 {
				opts.Path = args[0]
			}
			if err := app.New(opts).Run(); err != nil {
				logger.Error("qevil stopped", "error", err)
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configHome, "config-home", "",
		"config directory (default: $XDG_CONFIG_HOME/qevil)")
	root.Flags().BoolVar(&debug, "debug", false, "write debug entries to the log file")

	root.AddCommand(newCheckCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate config.toml and the keymap",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := keys.Validate(cfg.Keymap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config ok: %s\n", path)
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "qevil:", err)
		os.Exit(1)
	}
}
