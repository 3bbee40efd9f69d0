// Mediafeed - Hybrid Media Recommendation Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mediafeed

// Command feedctl builds feeds and manages the local library from a terminal.
//
//	feedctl migrate
//	feedctl seed library.yaml
//	feedctl rate alice movie-603 movie "The Matrix" 5
//	feedctl like alice book-abc book Dune
//	feedctl feed alice --kind game --ratings L,10
//
// Configuration is read the same way as the server (defaults, config.yaml,
// environment). --config and --dsn override the file and database.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/mediafeed/internal/config"
	"github.com/tomtom215/mediafeed/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the state shared by every subcommand.
type cli struct {
	configPath string
	dsn        string
	verbose    bool

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:          "feedctl",
		Short:        "Hybrid media recommendation feeds",
		Long:         "feedctl builds recommendation feeds and manages the local library and user signals.",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return c.load(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to config file")
	root.PersistentFlags().StringVar(&c.dsn, "dsn", "", "Database DSN (overrides DATABASE_DSN)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newFeedCmd(c),
		newMigrateCmd(c),
		newSeedCmd(c),
		newRateCmd(c),
		newLikeCmd(c),
	)
	return root
}

func (c *cli) load(cmd *cobra.Command) error {
	if c.configPath != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, c.configPath); err != nil {
			return fmt.Errorf("setting config path: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.dsn != "" {
		cfg.Database.DSN = c.dsn
	}
	c.cfg = cfg

	level := zerolog.WarnLevel
	if c.verbose {
		level = zerolog.DebugLevel
	}
	c.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
	logging.SetLogger(c.logger)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "feedctl", version)
		},
	}
}
