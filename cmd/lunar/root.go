// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/holomush/lunar/internal/config"
	"github.com/holomush/lunar/internal/xdg"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the lunar CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lunar",
		Short: "lunar - Lua scripting host for game servers",
		Long: `lunar runs Lua scripts against game server events. Scripts register
handlers for player, creature, map and server events and schedule timed
callbacks; the host dispatches events to them.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/lunar/config.yaml)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// resolveConfigPath returns --config, or the XDG config file when it exists,
// or "" to run on defaults and flags alone.
func resolveConfigPath() string {
	if configFile != "" {
		return configFile
	}
	path, err := xdg.ConfigFile()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// loadConfig merges the config file with the flags of cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(resolveConfigPath(), cmd.Flags())
}
