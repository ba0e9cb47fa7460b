package probe

import (
	"github.com/aptpod/tcpinfo-go/log"
)

var defaultConfig = Config{
	Logger:  log.NewNop(),
	Backend: nil,

	platform: nil,
}

// Configは、Probeの設定です。
type Config struct {
	// ロガー
	//
	// 問い合わせに失敗した理由はDebugfでのみ出力します。
	Logger log.Logger

	// ネイティブ呼び出しの実装
	//
	// nilの場合はプラットフォームの実装を使用します。
	Backend Backend

	// nilの場合はCurrentPlatformを使用する。
	platform *Platform
}

// DefaultConfigは、デフォルトの設定を返却します。
func DefaultConfig() *Config {
	res := defaultConfig
	return &res
}

// Optionは、Probeのオプションです。
type Option func(*Config)

// WithLoggerは、ロガーを設定します。
func WithLogger(l log.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithBackendは、ネイティブ呼び出しの実装を設定します。
func WithBackend(b Backend) Option {
	return func(c *Config) {
		c.Backend = b
	}
}
