package metrics

import (
	"context"

	"github.com/aptpod/tcpinfo-go/log"
	"github.com/aptpod/tcpinfo-go/probe"
)

// Querier は、ソケットハンドルからTCP統計を取得します。*probe.Probe が実装します。
type Querier interface {
	QueryContext(ctx context.Context, h probe.SocketHandle) (probe.Snapshot, bool)
}

// ProviderConfig は、TCPInfoProvider の設定です。
type ProviderConfig struct {
	// ロガー
	Logger log.Logger

	// 統計の取得元
	//
	// nilの場合は probe.New() を使用します。
	Querier Querier

	// 統計を取得できるたびに呼び出されるハンドラー
	//
	// バックグラウンドのゴルーチンから呼び出されます。
	UpdateHandler func(probe.Snapshot)

	// ログ出力に使用するコンテキスト
	BaseContext context.Context
}

// DefaultProviderConfig は、デフォルトの設定を返却します。
func DefaultProviderConfig() *ProviderConfig {
	return &ProviderConfig{
		Logger:        log.NewNop(),
		Querier:       nil,
		UpdateHandler: nil,
		BaseContext:   context.Background(),
	}
}

// ProviderOption は、TCPInfoProvider のオプションです。
type ProviderOption func(*ProviderConfig)

// WithProviderLogger は、ロガーを設定します。
func WithProviderLogger(l log.Logger) ProviderOption {
	return func(c *ProviderConfig) {
		c.Logger = l
	}
}

// WithQuerier は、統計の取得元を設定します。
func WithQuerier(q Querier) ProviderOption {
	return func(c *ProviderConfig) {
		c.Querier = q
	}
}

// WithUpdateHandler は、統計を取得できた時のハンドラーを設定します。
func WithUpdateHandler(f func(probe.Snapshot)) ProviderOption {
	return func(c *ProviderConfig) {
		c.UpdateHandler = f
	}
}

// WithBaseContext は、ログ出力に使用するコンテキストを設定します。
func WithBaseContext(ctx context.Context) ProviderOption {
	return func(c *ProviderConfig) {
		c.BaseContext = ctx
	}
}
