package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aptpod/tcpinfo-go/internal/config"
	"github.com/aptpod/tcpinfo-go/internal/watch"
)

// LoadWatchConfigは、watchコマンドとしてargsを解析し、設定を返却します。
func LoadWatchConfig(args ...string) (*config.Config, error) {
	cmd := newWatchCommand()
	if err := cmd.ParseFlags(args); err != nil {
		return nil, err
	}
	var o watchOptions
	fs := cmd.Flags()
	o.configPath, _ = fs.GetString("config")
	o.interval, _ = fs.GetDuration("interval")
	o.count, _ = fs.GetInt("count")
	o.format, _ = fs.GetString("format")
	o.verbose, _ = fs.GetBool("verbose")
	return o.load(cmd, fs.Args())
}

func RunWatch(ctx context.Context, cmd *cobra.Command, c *config.Config, opts ...watch.Option) error {
	return runWatch(ctx, cmd, c, opts...)
}
