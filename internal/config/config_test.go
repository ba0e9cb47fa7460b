package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptpod/tcpinfo-go/errors"
	. "github.com/aptpod/tcpinfo-go/internal/config"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tcpinfo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
interval: 250ms
count: 10
format: json
targets:
  - name: api
    address: 127.0.0.1:8080
    nic: lo
  - url: ws://127.0.0.1:8080/ws
  - name: stream
    url: wss://example.com/ws
    websocket: nhooyr
`), 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, got.Validate())

	assert.Equal(t, &Config{
		Interval:    250 * time.Millisecond,
		Count:       10,
		Format:      FormatJSON,
		DialTimeout: 5 * time.Second,
		DialRetry:   3,
		Targets: []Target{
			{Name: "api", Address: "127.0.0.1:8080", NIC: "lo"},
			{Name: "ws://127.0.0.1:8080/ws", URL: "ws://127.0.0.1:8080/ws", WebSocket: WebSocketGorilla},
			{Name: "stream", URL: "wss://example.com/ws", WebSocket: WebSocketNhooyr},
		},
	}, got)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("error: missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("error: unknown field", func(t *testing.T) {
		_, err := Parse([]byte("intervall: 1s\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("error: malformed duration", func(t *testing.T) {
		_, err := Parse([]byte("interval: soon\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestConfig_AddAddresses(t *testing.T) {
	c := Default()
	c.AddAddresses("127.0.0.1:1", "127.0.0.1:2")
	require.NoError(t, c.Validate())
	assert.Equal(t, []Target{
		{Name: "127.0.0.1:1", Address: "127.0.0.1:1"},
		{Name: "127.0.0.1:2", Address: "127.0.0.1:2"},
	}, c.Targets)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		c := Default()
		c.Targets = []Target{{Name: "api", Address: "127.0.0.1:8080"}}
		return c
	}
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{name: "error: zero interval", modify: func(c *Config) { c.Interval = 0 }},
		{name: "error: negative count", modify: func(c *Config) { c.Count = -1 }},
		{name: "error: zero dial retry", modify: func(c *Config) { c.DialRetry = 0 }},
		{name: "error: unknown format", modify: func(c *Config) { c.Format = "xml" }},
		{name: "error: no targets", modify: func(c *Config) { c.Targets = nil }},
		{name: "error: both address and url", modify: func(c *Config) { c.Targets[0].URL = "ws://127.0.0.1/" }},
		{name: "error: neither address nor url", modify: func(c *Config) { c.Targets[0].Address = "" }},
		{name: "error: websocket dialer without url", modify: func(c *Config) { c.Targets[0].WebSocket = WebSocketGorilla }},
		{name: "error: unknown websocket dialer", modify: func(c *Config) {
			c.Targets[0] = Target{Name: "ws", URL: "ws://127.0.0.1/", WebSocket: "coder"}
		}},
		{name: "error: duplicated name", modify: func(c *Config) {
			c.Targets = append(c.Targets, Target{Name: "api", Address: "127.0.0.1:8081"})
		}},
	}
	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(c)
			assert.True(t, errors.Is(c.Validate(), ErrInvalidConfig))
		})
	}
}
