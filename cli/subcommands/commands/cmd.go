// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/acertaexpress/fleetwatch/cli/api"
)

var CommandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Dispatch commands to devices",
}

var sendCmd = &cobra.Command{
	Use:   "send <device-id> <type>",
	Short: "Send a command of any type to a device",
	Long: `Send a command to a device through the monitor. The type string is
passed to the upstream server as-is; engineStop and engineResume have
dedicated shortcuts under 'devices'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceId, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid device id '%s'", args[0])
		}
		client := api.CtxGetApi(cmd.Context())
		if err := client.SendCommand(deviceId, args[1]); err != nil {
			return err
		}
		fmt.Printf("Command '%s' dispatched to device %d\n", args[1], deviceId)
		return nil
	},
}

func init() {
	CommandsCmd.AddCommand(sendCmd)
}
