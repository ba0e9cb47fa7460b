package gorilla

import (
	"context"
	"net"
	"time"

	gwebsocket "github.com/gorilla/websocket"

	"github.com/aptpod/tcpinfo-go/errors"
)

const defaultPingTimeout = time.Second

// Connは、 gorilla/websocketのConnのラッパーです。
type Conn struct {
	wsconn         *gwebsocket.Conn
	underlyingConn net.Conn
}

// Newは、Connを返却します。
//
// underlyingConnがnilの場合はgorilla/websocketが保持するnet.Connを使用します。
func New(wsconn *gwebsocket.Conn, underlyingConn net.Conn) *Conn {
	if underlyingConn == nil {
		underlyingConn = wsconn.UnderlyingConn()
	}
	return &Conn{
		wsconn:         wsconn,
		underlyingConn: underlyingConn,
	}
}

// Pingは、WebSocketのPingを送信します。
func (c *Conn) Ping(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultPingTimeout)
	}
	if err := c.wsconn.WriteControl(gwebsocket.PingMessage, []byte{}, deadline); err != nil {
		return errors.Errorf("failed to write ping: %w", err)
	}
	return nil
}

// Closeは、WebSocketをクローズします。
func (c *Conn) Close() error {
	_ = c.wsconn.WriteControl(gwebsocket.CloseMessage,
		gwebsocket.FormatCloseMessage(gwebsocket.CloseNormalClosure, ""),
		time.Now().Add(defaultPingTimeout))
	return c.wsconn.Close()
}

// UnderlyingConnは、WebSocketの基盤となるTCPのnet.Connを返します。
func (c *Conn) UnderlyingConn() net.Conn {
	return c.underlyingConn
}
