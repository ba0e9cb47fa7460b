package nhooyr

import (
	"context"
	"net"

	nwebsocket "nhooyr.io/websocket"
)

// Connは、 nhooyr.io/websocketのConnのラッパーです。
type Conn struct {
	wsconn         *nwebsocket.Conn
	underlyingConn net.Conn
}

// NewWithUnderlyingConnは、underlying connを指定してConnを返却します。
func NewWithUnderlyingConn(wsconn *nwebsocket.Conn, conn net.Conn) *Conn {
	return &Conn{
		wsconn:         wsconn,
		underlyingConn: conn,
	}
}

// Pingは、WebSocketのPingを送信しPongを待ちます。
func (c *Conn) Ping(ctx context.Context) error {
	return c.wsconn.Ping(ctx)
}

// Closeは、WebSocketをクローズします。
func (c *Conn) Close() error {
	return c.wsconn.Close(nwebsocket.StatusNormalClosure, "")
}

// UnderlyingConnは、WebSocketの基盤となるnet.Connを返します。
func (c *Conn) UnderlyingConn() net.Conn {
	return c.underlyingConn
}
