package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-inject/config"
	"github.com/0xalexb/hjarta-inject/config/fetcher/file"
	"github.com/0xalexb/hjarta-inject/config/fetcher/viper"
	"github.com/0xalexb/hjarta-inject/logging"

	"github.com/spf13/cobra"
)

var errUnknownBackend = errors.New("unknown backend")

// globalFlags are shared by every subcommand.
type globalFlags struct {
	dir       string
	backend   string
	envPrefix string
	logLevel  string
}

func newRootCommand() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "hjarta-config",
		Short: "Inspect configuration documents and resolve typed values",
		Long: `hjarta-config reads configuration documents the way an application using
hjarta-inject does: it flattens them into dot paths and resolves single keys into
typed values, applying defaults.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	persistent := rootCmd.PersistentFlags()
	persistent.StringVarP(&flags.dir, "dir", "d", ".", "directory holding the documents")
	persistent.StringVar(&flags.backend, "backend", "file", "document backend: file or viper")
	persistent.StringVar(&flags.envPrefix, "env-prefix", "", "environment prefix overriding keys (viper backend)")
	persistent.StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(newFlattenCommand(&flags))
	rootCmd.AddCommand(newGetCommand(&flags))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func (f *globalFlags) store(cmd *cobra.Command) (*config.Store, *slog.Logger, error) {
	logger := logging.NewLogger(logging.LoggerConfig{Level: f.logLevel, Format: logging.FormatText}, cmd.ErrOrStderr())

	var backend config.Backend

	switch f.backend {
	case "file":
		backend = file.NewBackend(f.dir)
	case "viper":
		opts := []viper.Option{viper.WithPaths(f.dir)}
		if f.envPrefix != "" {
			opts = append(opts, viper.WithEnvPrefix(f.envPrefix))
		}

		backend = viper.NewBackend(opts...)
	default:
		return nil, nil, fmt.Errorf("%w: %q", errUnknownBackend, f.backend)
	}

	return config.NewStore(backend, config.WithLogger(logger)), logger, nil
}
