package watch

import (
	"context"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/aptpod/tcpinfo-go/errors"
	"github.com/aptpod/tcpinfo-go/internal/ch"
	"github.com/aptpod/tcpinfo-go/internal/config"
	"github.com/aptpod/tcpinfo-go/internal/retry"
	"github.com/aptpod/tcpinfo-go/log"
	"github.com/aptpod/tcpinfo-go/probe"
	"github.com/aptpod/tcpinfo-go/transport/metrics"
	"github.com/aptpod/tcpinfo-go/transport/nic"
	"github.com/aptpod/tcpinfo-go/transport/websocket"
	_ "github.com/aptpod/tcpinfo-go/transport/websocket/gorilla"
	_ "github.com/aptpod/tcpinfo-go/transport/websocket/nhooyr"
)

// Watcherは、計測対象へ接続し、一定間隔でTCP統計を取得してSinkへ出力します。
type Watcher struct {
	config      *config.Config
	sink        Sink
	logger      log.Logger
	querier     Querier
	dialContext func(ctx context.Context, network, addr string) (net.Conn, error)
	now         func() time.Time

	warnOnce sync.Once
}

// Newは、Watcherを返却します。
func New(c *config.Config, sink Sink, opts ...Option) *Watcher {
	wc := DefaultConfig()
	for _, opt := range opts {
		opt(wc)
	}
	q := wc.Querier
	if q == nil {
		q = probe.New(probe.WithLogger(wc.Logger))
	}
	dialContext := wc.DialContext
	if dialContext == nil {
		dialContext = (&net.Dialer{}).DialContext
	}
	return &Watcher{
		config:      c,
		sink:        sink,
		logger:      wc.Logger,
		querier:     q,
		dialContext: dialContext,
		now:         wc.Now,
	}
}

// Runは、すべての計測対象を並行して監視します。
//
// 計測対象ごとにcount件のRecordを出力するか、ctxが終了すると戻ります。
// 統計を取得できないプラットフォームでは警告を1度だけ出力し、接続せずに戻ります。
func (w *Watcher) Run(ctx context.Context) error {
	if !w.querier.Supported() {
		w.warnOnce.Do(func() {
			p := probe.CurrentPlatform()
			w.logger.Warnf(ctx, "tcp info is not available on %s: %s", p.OS, p.Reason())
		})
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	for _, t := range w.config.Targets {
		eg.Go(func() error {
			return w.watch(log.WithTrackTarget(ctx, t.Name), t)
		})
	}
	return eg.Wait()
}

func (w *Watcher) watch(ctx context.Context, t config.Target) error {
	conn, closeConn, err := w.dialWithRetry(ctx, t)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Errorf("dial %s: %w", t.Name, err)
	}
	defer closeConn()

	sc, ok := conn.(syscall.Conn)
	if !ok {
		return errors.Errorf("%s: %T: %w", t.Name, conn, errors.ErrInvalidHandle)
	}
	h, err := probe.HandleFromConn(sc)
	if err != nil {
		return errors.Errorf("%s: %w", t.Name, err)
	}

	sessionID := uuid.New()
	w.logger.Infof(ctx, "connected: session[%s] local[%s] remote[%s] handle[%v]", sessionID, conn.LocalAddr(), conn.RemoteAddr(), h)

	ctx, cancel := context.WithCancel(ctx)
	snapshots := make(chan probe.Snapshot)
	p := metrics.NewTCPInfoProvider(h, w.config.Interval,
		metrics.WithQuerier(w.querier),
		metrics.WithProviderLogger(w.logger),
		metrics.WithBaseContext(ctx),
		metrics.WithUpdateHandler(func(s probe.Snapshot) {
			ch.WriteOrDone(ctx, s, snapshots)
		}),
	)
	if err := p.Start(); err != nil {
		cancel()
		return err
	}
	// Stopの前にcancelし、UpdateHandlerの書き込み待ちを解除する
	defer p.Stop()
	defer cancel()

	for n := 0; w.config.Count == 0 || n < w.config.Count; n++ {
		s, ok := ch.ReadOrDoneOne(ctx, snapshots)
		if !ok {
			return nil
		}
		r := Record{
			SessionID: sessionID,
			Target:    t.Name,
			Time:      w.now(),
			Snapshot:  s,
		}
		if err := w.sink.Write(r); err != nil {
			return errors.Errorf("write record: %w", err)
		}
	}
	w.logger.Infof(ctx, "finished: session[%s] failures[%d]", sessionID, p.Failures())
	return nil
}

// dialWithRetryは、計測対象へ接続し、統計を取得するTCPのnet.Connを返却します。
func (w *Watcher) dialWithRetry(ctx context.Context, t config.Target) (net.Conn, func(), error) {
	var (
		conn      net.Conn
		closeConn func()
	)
	r := retry.Retry{MaxAttempt: w.config.DialRetry}
	err := r.Do(ctx, func() (bool, error) {
		var err error
		conn, closeConn, err = w.dial(ctx, t)
		if err != nil {
			w.logger.Warnf(ctx, "failed to dial: %v", err)
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return conn, closeConn, nil
}

func (w *Watcher) dial(ctx context.Context, t config.Target) (net.Conn, func(), error) {
	dialContext := w.dialContext
	if t.NIC != "" {
		d, err := nic.NewDialContext(nic.DialContextConfig{NIC: t.NIC})
		if err != nil {
			return nil, nil, err
		}
		dialContext = d.DialContext
	}
	if !t.IsWebSocket() {
		dialCtx := ctx
		if w.config.DialTimeout > 0 {
			var cancel context.CancelFunc
			dialCtx, cancel = context.WithTimeout(ctx, w.config.DialTimeout)
			defer cancel()
		}
		conn, err := dialContext(dialCtx, "tcp", t.Address)
		if err != nil {
			return nil, nil, err
		}
		return conn, func() { conn.Close() }, nil
	}

	wsconn, err := websocket.Dial(ctx, t.WebSocket, websocket.DialConfig{
		URL:         t.URL,
		DialContext: dialContext,
		DialTimeout: w.config.DialTimeout,
	})
	if err != nil {
		return nil, nil, err
	}
	return wsconn.UnderlyingConn(), func() { wsconn.Close() }, nil
}
