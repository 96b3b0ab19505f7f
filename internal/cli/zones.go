package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/okian/courtzones/internal/domain/zone"
)

type zoneRow struct {
	Name    string `json:"name"`
	Display string `json:"display"`
}

func newZonesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "zones [RANGE AREA BASIC]",
		Short: "List zone labels, or classify one set of shot tags",
		Example: `  courtzones zones
  courtzones zones "24+ ft." "Left Side(L)" "Left Corner 3"`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 3 {
				return fmt.Errorf("expected no arguments or RANGE AREA BASIC, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			labels := zone.Labels()
			if len(args) == 3 {
				labels = []zone.Label{zone.Classify(args[0], args[1], args[2])}
			}
			rows := make([]zoneRow, len(labels))
			for i, l := range labels {
				rows[i] = zoneRow{Name: l.String(), Display: l.Display()}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDISPLAY")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Display)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
