// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acertaexpress/fleetwatch/cli/api"
	"github.com/acertaexpress/fleetwatch/cli/config"
	"github.com/acertaexpress/fleetwatch/cli/subcommands/commands"
	"github.com/acertaexpress/fleetwatch/cli/subcommands/devices"
	"github.com/acertaexpress/fleetwatch/cli/subcommands/login"
	"github.com/acertaexpress/fleetwatch/cli/subcommands/maintenance"
	"github.com/acertaexpress/fleetwatch/cli/subcommands/scores"
)

var rootCmd = &cobra.Command{
	Use:   "fleetctl",
	Short: "A command line interface to the fleet monitor",
	Long: `fleetctl inspects the reconciled fleet state, safety scores, and
maintenance projections of a running fleet monitor, and dispatches
device commands through it.

Configuration is stored in $HOME/.config/fleetctl.yaml`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config logic for login command
		if cmd.Name() == "login" {
			return nil
		}

		configPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return fmt.Errorf("failed to get config flag: %w", err)
		}
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		contextName, err := cmd.Flags().GetString("context")
		if err != nil {
			return fmt.Errorf("failed to get context flag: %w", err)
		}

		appctx, err := cfg.GetContext(contextName)
		if err != nil {
			return fmt.Errorf("failed to get current context: %w", err)
		}

		client := api.NewClient(*appctx)

		ctx := api.CtxWithApi(cmd.Context(), client)
		cmd.SetContext(ctx)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("context", "c", "", "Specify the context to use from the configuration file")
	rootCmd.PersistentFlags().StringP("config", "f", "", "Specify the configuration file to use")

	rootCmd.AddCommand(login.LoginCmd)
	rootCmd.AddCommand(devices.DevicesCmd)
	rootCmd.AddCommand(scores.ScoresCmd)
	rootCmd.AddCommand(maintenance.MaintenanceCmd)
	rootCmd.AddCommand(commands.CommandsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
