package cli

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aptpod/tcpinfo-go/internal/config"
	"github.com/aptpod/tcpinfo-go/internal/watch"
	"github.com/aptpod/tcpinfo-go/log"
	"github.com/aptpod/tcpinfo-go/probe"
)

type watchOptions struct {
	configPath string
	interval   time.Duration
	count      int
	format     string
	verbose    bool
}

func newWatchCommand() *cobra.Command {
	var o watchOptions
	cmd := &cobra.Command{
		Use:   "watch [address...]",
		Short: "Connect to targets and print their TCP statistics periodically",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.load(cmd, args)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, c)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&o.configPath, "config", "c", "", "path to a YAML config file")
	fs.DurationVarP(&o.interval, "interval", "i", 0, "sampling interval (default 1s)")
	fs.IntVarP(&o.count, "count", "n", 0, "records per target, 0 means forever")
	fs.StringVarP(&o.format, "format", "f", "", "output format: text or json (default text)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "print debug logs")
	return cmd
}

// loadは、設定ファイルを読み込み、コマンドラインで指定された値で上書きします。
func (o *watchOptions) load(cmd *cobra.Command, args []string) (*config.Config, error) {
	c := config.Default()
	if o.configPath != "" {
		var err error
		if c, err = config.Load(o.configPath); err != nil {
			return nil, err
		}
	}
	fs := cmd.Flags()
	if fs.Changed("interval") {
		c.Interval = o.interval
	}
	if fs.Changed("count") {
		c.Count = o.count
	}
	if fs.Changed("format") {
		c.Format = o.format
	}
	if fs.Changed("verbose") {
		c.Verbose = o.verbose
	}
	c.AddAddresses(args...)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func runWatch(ctx context.Context, cmd *cobra.Command, c *config.Config, opts ...watch.Option) error {
	var logger log.Logger = log.NewStdWith(stdlog.New(cmd.ErrOrStderr(), "", stdlog.LstdFlags))
	if !c.Verbose {
		logger = log.WithoutDebug(logger)
	}

	var sink watch.Sink
	switch c.Format {
	case config.FormatJSON:
		sink = watch.NewJSONSink(cmd.OutOrStdout())
	default:
		sink = watch.NewTextSink(cmd.OutOrStdout())
	}

	opts = append([]watch.Option{
		watch.WithLogger(logger),
		watch.WithQuerier(probe.New(probe.WithLogger(logger))),
	}, opts...)
	return watch.New(c, sink, opts...).Run(ctx)
}
