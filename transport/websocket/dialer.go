package websocket

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/aptpod/tcpinfo-go/errors"
)

// ErrUnknownDialerは、登録されていない名前のDialFuncを指定した場合のエラーです。
var ErrUnknownDialer = errors.New("unknown websocket dialer")

// DialConfigは、Dialerの設定です。
type DialConfig struct {
	// URLは、接続先URLです。
	URL string
	// Headerは、接続時に付与するHTTPヘッダーです。
	Header http.Header
	// TLSConfigは、TLS設定です。
	TLSConfig *tls.Config

	// DialContextはWebSocketの内部で使用するDialContextを設定します。
	// nilの場合は net.Dialer を使用します。
	DialContext func(ctx context.Context, network, addr string) (net.Conn, error)

	// DialTimeoutは、WebSocket接続のタイムアウトです。
	// 0に設定された場合、タイムアウトは設定されません。
	DialTimeout time.Duration
}

// DialFunc はConnを返却する関数です。
//
// 実装したDialFuncは、RegisterDialFuncを使用して登録します。
type DialFunc func(ctx context.Context, c DialConfig) (Conn, error)

var (
	dialFuncsMu sync.RWMutex
	dialFuncs   = map[string]DialFunc{}
)

// RegisterDialFuncは、nameでDialFuncを登録します。
//
// 同じ名前で2回登録するとpanicします。
func RegisterDialFunc(name string, f DialFunc) {
	dialFuncsMu.Lock()
	defer dialFuncsMu.Unlock()
	if _, ok := dialFuncs[name]; ok {
		panic("already registered dialFunc: " + name)
	}
	dialFuncs[name] = f
}

// DialerNamesは、登録されているDialFuncの名前を返却します。
func DialerNames() []string {
	dialFuncsMu.RLock()
	defer dialFuncsMu.RUnlock()
	res := make([]string, 0, len(dialFuncs))
	for name := range dialFuncs {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Dialは、nameで登録されたDialFuncでWebSocketのコネクションを開きます。
func Dial(ctx context.Context, name string, c DialConfig) (Conn, error) {
	dialFuncsMu.RLock()
	f, ok := dialFuncs[name]
	dialFuncsMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("%q: %w", name, ErrUnknownDialer)
	}
	if c.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.DialTimeout)
		defer cancel()
	}
	return f(ctx, c)
}

// CaptureDialContextは、base で開いたTCP接続を記録するDialContextを返却します。
//
// 返却される関数で最後に開かれたnet.Connを captured で取得できます。
func CaptureDialContext(base func(ctx context.Context, network, addr string) (net.Conn, error)) (
	dial func(ctx context.Context, network, addr string) (net.Conn, error),
	captured func() net.Conn,
) {
	if base == nil {
		base = (&net.Dialer{}).DialContext
	}
	var (
		mu   sync.Mutex
		last net.Conn
	)
	dial = func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := base(ctx, network, addr)
		if err == nil {
			mu.Lock()
			last = conn
			mu.Unlock()
		}
		return conn, err
	}
	captured = func() net.Conn {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
	return dial, captured
}
