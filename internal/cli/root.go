package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

// SetVersionBuildCommitStringは、ビルド時に埋め込まれたバージョン情報を設定します。
func SetVersionBuildCommitString(v, c, d string) {
	if v != "" {
		version = v
	}
	commit = c
	buildDate = d
}

// NewRootCommandは、tcpinfoコマンドを返却します。
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tcpinfo",
		Short:         "Inspect extended TCP statistics (TCP_INFO_v0) of live connections",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.AddCommand(
		newWatchCommand(),
		newLayoutCommand(),
		newVersionCommand(),
	)
	return cmd
}

// Executeは、コマンドライン引数でtcpinfoコマンドを実行します。
func Execute() {
	if err := NewRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
