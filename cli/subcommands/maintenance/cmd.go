// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package maintenance

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/acertaexpress/fleetwatch/cli/api"
	"github.com/acertaexpress/fleetwatch/model"
)

var MaintenanceCmd = &cobra.Command{
	Use:   "maintenance",
	Short: "Show projected maintenance status",
	Long:  `Show per-device maintenance projections based on reported odometers`,
}

func init() {
	MaintenanceCmd.RunE = func(cmd *cobra.Command, args []string) error {
		api := api.CtxGetApi(cmd.Context())
		return showMaintenance(api)
	}
	MaintenanceCmd.Flags().Bool("critical", false, "Only show items in critical state")
}

func showMaintenance(client *api.Api) error {
	statuses, err := client.Maintenance()
	if err != nil {
		return err
	}
	criticalOnly, _ := MaintenanceCmd.Flags().GetBool("critical")

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tRULE\tSTATUS\tODOMETER KM\tNEXT SERVICE KM\tREMAINING KM")
	for _, s := range statuses {
		if criticalOnly && s.Status != model.SeverityCritical {
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\t%.0f\t%.0f\n",
			s.DeviceId, s.Name, s.Status, s.OdometerKm, s.NextService, s.Remaining)
	}
	return w.Flush()
}
