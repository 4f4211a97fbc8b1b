// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package devices

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/acertaexpress/fleetwatch/cli/api"
	"github.com/acertaexpress/fleetwatch/model"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all devices",
	Long:  `List all devices with their current status and position`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api := api.CtxGetApi(cmd.Context())
		return listDevices(api)
	},
}

func init() {
	DevicesCmd.AddCommand(listCmd)
}

func listDevices(client *api.Api) error {
	devices, err := client.Devices()
	if err != nil {
		return err
	}
	positions, err := client.Positions()
	if err != nil {
		return err
	}

	byDevice := make(map[int]model.Position, len(positions))
	for _, p := range positions {
		byDevice[p.DeviceId] = p
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tSPEED KM/H\tLAST UPDATE")
	for _, d := range devices {
		speed := "-"
		if p, ok := byDevice[d.Id]; ok {
			speed = fmt.Sprintf("%.1f", p.SpeedKmh())
		}
		last := "-"
		if !d.LastUpdate.IsZero() {
			last = d.LastUpdate.Local().Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", d.Id, d.Name, d.Status, speed, last)
	}
	return w.Flush()
}
