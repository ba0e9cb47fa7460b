package watch

import (
	"context"
	"net"
	"time"

	"github.com/aptpod/tcpinfo-go/log"
	"github.com/aptpod/tcpinfo-go/probe"
	"github.com/aptpod/tcpinfo-go/transport/metrics"
)

// Querierは、Watcherが統計の取得に使用するインターフェースです。*probe.Probe が実装します。
type Querier interface {
	metrics.Querier
	Supported() bool
}

var _ Querier = (*probe.Probe)(nil)

// Configは、Watcherの設定です。
type Config struct {
	// ロガー
	Logger log.Logger

	// 統計の取得元
	//
	// nilの場合は probe.New() を使用します。
	Querier Querier

	// TCPの計測対象へ接続する関数
	//
	// nilの場合は net.Dialer を使用します。
	DialContext func(ctx context.Context, network, addr string) (net.Conn, error)

	// 現在時刻を返す関数
	Now func() time.Time
}

// DefaultConfigは、デフォルトの設定を返却します。
func DefaultConfig() *Config {
	return &Config{
		Logger:      log.NewNop(),
		Querier:     nil,
		DialContext: nil,
		Now:         time.Now,
	}
}

// Optionは、Watcherのオプションです。
type Option func(*Config)

// WithLoggerは、ロガーを設定します。
func WithLogger(l log.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithQuerierは、統計の取得元を設定します。
func WithQuerier(q Querier) Option {
	return func(c *Config) {
		c.Querier = q
	}
}

// WithDialContextは、TCPの計測対象へ接続する関数を設定します。
func WithDialContext(f func(ctx context.Context, network, addr string) (net.Conn, error)) Option {
	return func(c *Config) {
		c.DialContext = f
	}
}

// WithNowは、現在時刻を返す関数を設定します。
func WithNow(f func() time.Time) Option {
	return func(c *Config) {
		c.Now = f
	}
}
