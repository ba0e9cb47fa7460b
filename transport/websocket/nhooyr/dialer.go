package nhooyr

import (
	"context"
	"net/http"

	nwebsocket "nhooyr.io/websocket"

	"github.com/aptpod/tcpinfo-go/transport/websocket"
)

// DialerNameは、このパッケージのDialFuncの登録名です。
const DialerName = "nhooyr"

func init() {
	websocket.RegisterDialFunc(DialerName, func(ctx context.Context, c websocket.DialConfig) (websocket.Conn, error) {
		return Dial(ctx, c)
	})
}

// Dialは、WebSocketのコネクションを開きます。
//
// nhooyr.io/websocketはnet.Connを公開しないため、HTTPトランスポートのDialContextをラップして
// TCP接続をキャプチャします。
func Dial(ctx context.Context, c websocket.DialConfig) (*Conn, error) {
	// グローバル状態汚染を避けるため Clone() を使用する
	tr := http.DefaultTransport.(*http.Transport).Clone()
	if c.TLSConfig != nil {
		tr.TLSClientConfig = c.TLSConfig
	}
	dial, captured := websocket.CaptureDialContext(c.DialContext)
	tr.DialContext = dial

	dialOpts := nwebsocket.DialOptions{
		CompressionMode: nwebsocket.CompressionDisabled,
		HTTPHeader:      c.Header,
		HTTPClient:      &http.Client{Transport: tr},
	}

	//nolint
	wsconn, _, err := nwebsocket.Dial(ctx, c.URL, &dialOpts)
	if err != nil {
		return nil, err
	}
	// Pongを受け取るために読み込みを開始する
	wsconn.CloseRead(context.Background())
	return NewWithUnderlyingConn(wsconn, captured()), nil
}
