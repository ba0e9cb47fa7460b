package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aptpod/tcpinfo-go/probe"
)

func newLayoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the TCP_INFO_v0 field layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FIELD\tOFFSET\tWIDTH")
			for _, f := range probe.Layout() {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", f.Name, f.Offset, f.Width)
			}
			fmt.Fprintf(tw, "(total)\t\t%d\n", probe.SnapshotSize)
			return tw.Flush()
		},
	}
}
