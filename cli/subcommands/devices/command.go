// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package devices

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/acertaexpress/fleetwatch/cli/api"
	"github.com/acertaexpress/fleetwatch/model"
)

var stopCmd = &cobra.Command{
	Use:   "stop <device-id>",
	Short: "Send an engine stop command to a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand(cmd, args[0], model.CommandEngineStop)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <device-id>",
	Short: "Send an engine resume command to a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendCommand(cmd, args[0], model.CommandEngineResume)
	},
}

func init() {
	DevicesCmd.AddCommand(stopCmd)
	DevicesCmd.AddCommand(resumeCmd)
}

func sendCommand(cmd *cobra.Command, arg, commandType string) error {
	deviceId, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("invalid device id '%s'", arg)
	}
	client := api.CtxGetApi(cmd.Context())
	if err := client.SendCommand(deviceId, commandType); err != nil {
		return err
	}
	fmt.Printf("Command '%s' dispatched to device %d\n", commandType, deviceId)
	return nil
}
