package websocket

import (
	"context"
	"net"
)

// Connは、WebSocketのコネクションインターフェースです。
type Conn interface {
	// Closeは、コネクションをクローズします。
	Close() error

	// Pingは、Pingを送信します。
	Ping(context.Context) error

	// UnderlyingConnは、WebSocketの基盤となるTCPのnet.Connを返します。
	// TLSの場合もTLSでラップされる前のnet.Connを返します。
	UnderlyingConn() net.Conn
}
