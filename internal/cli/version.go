package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tcpinfo %s", version)
			if commit != "" {
				fmt.Fprintf(cmd.OutOrStdout(), " (commit %s", commit)
				if buildDate != "" {
					fmt.Fprintf(cmd.OutOrStdout(), ", built %s", buildDate)
				}
				fmt.Fprint(cmd.OutOrStdout(), ")")
			}
			fmt.Fprintf(cmd.OutOrStdout(), " %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
