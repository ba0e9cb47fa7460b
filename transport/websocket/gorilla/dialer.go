package gorilla

import (
	"context"
	"net/http/httputil"

	gwebsocket "github.com/gorilla/websocket"

	"github.com/aptpod/tcpinfo-go/errors"
	"github.com/aptpod/tcpinfo-go/transport/websocket"
)

// DialerNameは、このパッケージのDialFuncの登録名です。
const DialerName = "gorilla"

func init() {
	websocket.RegisterDialFunc(DialerName, func(ctx context.Context, c websocket.DialConfig) (websocket.Conn, error) {
		return Dial(ctx, c)
	})
}

// Dialは、WebSocketのコネクションを開きます。
func Dial(ctx context.Context, c websocket.DialConfig) (*Conn, error) {
	dial, captured := websocket.CaptureDialContext(c.DialContext)
	d := gwebsocket.Dialer{
		NetDialContext:   dial,
		Proxy:            gwebsocket.DefaultDialer.Proxy,
		HandshakeTimeout: gwebsocket.DefaultDialer.HandshakeTimeout,
		TLSClientConfig:  c.TLSConfig,
	}
	//nolint
	wsconn, resp, err := d.DialContext(ctx, c.URL, c.Header)
	if err != nil {
		if resp == nil {
			return nil, err
		}

		dump, _ := httputil.DumpResponse(resp, true)
		return nil, errors.Errorf("dial failed with error response[%s]: %w", dump, err)
	}
	// Pongやクローズフレームを処理するために読み捨てる
	go func() {
		for {
			if _, _, err := wsconn.NextReader(); err != nil {
				return
			}
		}
	}()
	return New(wsconn, captured()), nil
}
