package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aptpod/tcpinfo-go/errors"
)

const (
	defaultInterval    = time.Second
	defaultFormat      = FormatText
	defaultDialTimeout = 5 * time.Second
	defaultDialRetry   = 3
	defaultWebSocket   = WebSocketGorilla
)

const (
	FormatText = "text"
	FormatJSON = "json"

	WebSocketGorilla = "gorilla"
	WebSocketNhooyr  = "nhooyr"
)

// ErrInvalidConfigは、設定値が不正な場合のエラーです。
var ErrInvalidConfig = errors.New("invalid config")

// Configは、tcpinfoコマンドの設定です。
type Config struct {
	// Intervalは、統計を取得する間隔です。
	Interval time.Duration `yaml:"interval"`
	// Countは、計測対象ごとに出力するレコード数です。0は無制限です。
	Count int `yaml:"count"`
	// Formatは、出力形式（text / json）です。
	Format string `yaml:"format"`
	// DialTimeoutは、計測対象への接続のタイムアウトです。
	DialTimeout time.Duration `yaml:"dial_timeout"`
	// DialRetryは、計測対象への接続の最大試行回数です。
	DialRetry int `yaml:"dial_retry"`
	// Verboseは、デバッグログを出力するかどうかです。
	Verbose bool `yaml:"verbose"`
	// Targetsは、計測対象です。
	Targets []Target `yaml:"targets"`
}

// Targetは、計測対象の接続先です。AddressとURLのどちらか一方を指定します。
type Target struct {
	Name string `yaml:"name"`
	// Addressは、TCPで接続する host:port です。
	Address string `yaml:"address"`
	// URLは、WebSocketで接続する ws:// または wss:// のURLです。
	URL string `yaml:"url"`
	// WebSocketは、WebSocketのダイアラー名（gorilla / nhooyr）です。
	WebSocket string `yaml:"websocket"`
	// NICは、送信元にするネットワークインターフェース名です。空の場合はOSに任せます。
	NIC string `yaml:"nic"`
}

// IsWebSocketは、WebSocketで接続する計測対象かどうかを返します。
func (t Target) IsWebSocket() bool {
	return t.URL != ""
}

// Defaultは、デフォルトの設定を返却します。
func Default() *Config {
	return &Config{
		Interval:    defaultInterval,
		Count:       0,
		Format:      defaultFormat,
		DialTimeout: defaultDialTimeout,
		DialRetry:   defaultDialRetry,
		Verbose:     false,
		Targets:     nil,
	}
}

// Loadは、YAMLファイルから設定を読み込みます。
//
// ファイルに書かれていない項目はデフォルト値になります。
func Load(path string) (*Config, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(bs)
}

// Parseは、YAMLから設定を読み込みます。
func Parse(bs []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(bs))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("decode config: %v: %w", err, ErrInvalidConfig)
	}
	c.ApplyDefaults()
	return c, nil
}

// AddAddressesは、コマンドライン引数で指定されたアドレスを計測対象に追加します。
func (c *Config) AddAddresses(addrs ...string) {
	for _, addr := range addrs {
		c.Targets = append(c.Targets, Target{Address: addr})
	}
	c.ApplyDefaults()
}

// ApplyDefaultsは、計測対象の省略された項目を補完します。
func (c *Config) ApplyDefaults() {
	for i := range c.Targets {
		t := &c.Targets[i]
		if t.Name == "" {
			if t.IsWebSocket() {
				t.Name = t.URL
			} else {
				t.Name = t.Address
			}
		}
		if t.IsWebSocket() && t.WebSocket == "" {
			t.WebSocket = defaultWebSocket
		}
	}
}

// Validateは、設定値を検証します。
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive: %v: %w", c.Interval, ErrInvalidConfig)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must not be negative: %d: %w", c.Count, ErrInvalidConfig)
	}
	if c.DialRetry < 1 {
		return fmt.Errorf("dial_retry must be at least 1: %d: %w", c.DialRetry, ErrInvalidConfig)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q: %w", c.Format, ErrInvalidConfig)
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("no targets: %w", ErrInvalidConfig)
	}
	names := make(map[string]struct{}, len(c.Targets))
	for i, t := range c.Targets {
		if (t.Address == "") == (t.URL == "") {
			return fmt.Errorf("targets[%d]: exactly one of address or url is required: %w", i, ErrInvalidConfig)
		}
		if t.IsWebSocket() {
			switch t.WebSocket {
			case WebSocketGorilla, WebSocketNhooyr:
			default:
				return fmt.Errorf("targets[%d]: unknown websocket dialer %q: %w", i, t.WebSocket, ErrInvalidConfig)
			}
		} else if t.WebSocket != "" {
			return fmt.Errorf("targets[%d]: websocket is only valid with url: %w", i, ErrInvalidConfig)
		}
		if _, ok := names[t.Name]; ok {
			return fmt.Errorf("targets[%d]: duplicated name %q: %w", i, t.Name, ErrInvalidConfig)
		}
		names[t.Name] = struct{}{}
	}
	return nil
}
