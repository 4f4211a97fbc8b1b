// Copyright (c) Qualcomm Technologies, Inc. and/or its subsidiaries.
// SPDX-License-Identifier: BSD-3-Clause-Clear

package scores

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/acertaexpress/fleetwatch/cli/api"
)

var ScoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the driver safety scorecard",
	Long:  `Show per-driver safety scores, best drivers first, with the fleet average`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api := api.CtxGetApi(cmd.Context())
		return showScores(api)
	},
}

func showScores(client *api.Api) error {
	report, err := client.Scores()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tSCORE\tEVENTS\tOVERSPEED\tBRAKING\tACCELERATION\tCORNERING")
	for _, s := range report.Scores {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			s.DeviceName, s.Score, s.TotalEvents,
			s.Breakdown.Overspeed, s.Breakdown.HardBraking,
			s.Breakdown.HardAcceleration, s.Breakdown.HardCornering)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nFleet average: %.1f\n", report.Average)
	if !report.RefreshedAt.IsZero() {
		fmt.Printf("Refreshed at: %s\n", report.RefreshedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
