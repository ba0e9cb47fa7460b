package metrics

import (
	"fmt"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/aptpod/tcpinfo-go/log"
	"github.com/aptpod/tcpinfo-go/probe"
)

const (
	// Default values when metrics are not yet available
	defaultRTT    = 100 * time.Millisecond
	defaultRTTVar = 50 * time.Millisecond
	defaultCWND   = 14600 // 10 * MSS (1460 bytes)
)

var _ ManagedMetricsProvider = (*TCPInfoProvider)(nil)

// TCPInfoProvider retrieves connection metrics by querying probe periodically.
// It keeps the last good snapshot and provides thread-safe access.
//
// A failed query leaves the previous values untouched; the provider never retries
// within a tick and simply tries again on the next one.
type TCPInfoProvider struct {
	handle   probe.SocketHandle
	querier  Querier
	logger   log.Logger
	onUpdate func(probe.Snapshot)
	config   *ProviderConfig

	// Background update control
	stateMu  sync.Mutex
	started  bool
	stopped  bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
	interval time.Duration

	// Metrics from the last snapshot (protected by metricsMu)
	metricsMu     sync.RWMutex
	last          probe.Snapshot
	hasSample     bool
	smoothedRTT   time.Duration
	rttvar        time.Duration
	minRTT        time.Duration
	cwnd          uint64
	bytesInFlight uint64
	failures      uint64
}

// NewTCPInfoProvider creates a new TCPInfoProvider for h.
//
// interval: Update interval for background metrics collection (e.g., 100ms)
//
// The provider must be started with Start() to begin collecting metrics.
func NewTCPInfoProvider(h probe.SocketHandle, interval time.Duration, opts ...ProviderOption) *TCPInfoProvider {
	c := DefaultProviderConfig()
	for _, opt := range opts {
		opt(c)
	}
	if c.Querier == nil {
		c.Querier = probe.New(probe.WithLogger(c.Logger))
	}
	return &TCPInfoProvider{
		handle:   h,
		querier:  c.Querier,
		logger:   c.Logger,
		onUpdate: c.UpdateHandler,
		config:   c,
		stopCh:   make(chan struct{}),
		interval: interval,
	}
}

// NewMetricsProvider は、conn を監視する ManagedMetricsProvider を返却します。
//
// conn からソケットハンドルを取り出せない場合や、統計を取得できないプラットフォームの場合は
// NewNopMetricsProvider() を返却します。
func NewMetricsProvider(conn net.Conn, interval time.Duration, opts ...ProviderOption) ManagedMetricsProvider {
	c := DefaultProviderConfig()
	for _, opt := range opts {
		opt(c)
	}
	sc, ok := conn.(syscall.Conn)
	if !ok {
		c.Logger.Debugf(c.BaseContext, "metrics unavailable: %T has no raw connection", conn)
		return NewNopMetricsProvider()
	}
	h, err := probe.HandleFromConn(sc)
	if err != nil {
		c.Logger.Debugf(c.BaseContext, "metrics unavailable: %v", err)
		return NewNopMetricsProvider()
	}
	p := NewTCPInfoProvider(h, interval, opts...)
	if s, ok := p.querier.(interface{ Supported() bool }); ok && !s.Supported() {
		c.Logger.Debugf(c.BaseContext, "metrics unavailable: tcp info is not supported on this platform")
		return NewNopMetricsProvider()
	}
	return p
}

// Start begins the background metrics collection loop.
// This should be called once after creating the provider.
// Returns an error if already started or already stopped.
func (p *TCPInfoProvider) Start() error {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()

	if p.stopped {
		return fmt.Errorf("TCPInfoProvider already stopped, cannot restart")
	}
	if p.started {
		return fmt.Errorf("TCPInfoProvider already started")
	}

	p.started = true
	p.wg.Add(1)
	go p.updateLoop()
	return nil
}

// updateLoop queries once immediately and then on every tick.
func (p *TCPInfoProvider) updateLoop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.update()
	for {
		select {
		case <-ticker.C:
			p.update()
		case <-p.stopCh:
			return
		}
	}
}

// update queries the socket once and folds the snapshot into the metrics.
func (p *TCPInfoProvider) update() bool {
	s, ok := p.querier.QueryContext(p.config.BaseContext, p.handle)
	if !ok {
		p.metricsMu.Lock()
		p.failures++
		p.metricsMu.Unlock()
		return false
	}

	p.metricsMu.Lock()
	sample := s.RTT()
	if !p.hasSample {
		p.rttvar = sample / 2
	} else {
		// RFC 6298: RTTVAR = (1 - beta) * RTTVAR + beta * |SRTT - R'|, beta = 1/4
		p.rttvar = (3*p.rttvar + abs(p.smoothedRTT-sample)) / 4
	}
	p.smoothedRTT = sample
	p.minRTT = s.MinRTT()
	p.cwnd = uint64(s.Cwnd)
	p.bytesInFlight = uint64(s.BytesInFlight)
	p.last = s
	p.hasSample = true
	p.metricsMu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(s)
	}
	return true
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Snapshot returns the last snapshot and whether one has been taken yet.
func (p *TCPInfoProvider) Snapshot() (probe.Snapshot, bool) {
	p.metricsMu.RLock()
	defer p.metricsMu.RUnlock()
	return p.last, p.hasSample
}

// Failures returns how many queries returned no data.
func (p *TCPInfoProvider) Failures() uint64 {
	p.metricsMu.RLock()
	defer p.metricsMu.RUnlock()
	return p.failures
}

// RTT returns the Smoothed RTT (SRTT) reported by the kernel.
// Returns defaultRTT (100ms) if not yet measured.
func (p *TCPInfoProvider) RTT() time.Duration {
	p.metricsMu.RLock()
	defer p.metricsMu.RUnlock()
	if p.smoothedRTT == 0 {
		return defaultRTT
	}
	return p.smoothedRTT
}

// RTTVar returns the RTT Variation derived from successive RTT samples.
// Returns defaultRTTVar (50ms) if not yet measured.
func (p *TCPInfoProvider) RTTVar() time.Duration {
	p.metricsMu.RLock()
	defer p.metricsMu.RUnlock()
	if p.rttvar == 0 {
		return defaultRTTVar
	}
	return p.rttvar
}

// MinRTT returns the minimum RTT reported by the kernel.
// Falls back to RTT() if not yet measured.
func (p *TCPInfoProvider) MinRTT() time.Duration {
	p.metricsMu.RLock()
	minRTT := p.minRTT
	p.metricsMu.RUnlock()
	if minRTT == 0 {
		return p.RTT()
	}
	return minRTT
}

// CongestionWindow returns the congestion window size in bytes.
// Returns defaultCWND (14600 bytes) if not yet measured.
func (p *TCPInfoProvider) CongestionWindow() uint64 {
	p.metricsMu.RLock()
	defer p.metricsMu.RUnlock()
	if p.cwnd == 0 {
		return defaultCWND
	}
	return p.cwnd
}

// BytesInFlight returns the number of unacknowledged bytes reported by the kernel.
func (p *TCPInfoProvider) BytesInFlight() uint64 {
	p.metricsMu.RLock()
	defer p.metricsMu.RUnlock()
	return p.bytesInFlight
}

// Stop terminates the background update loop and waits for it to finish.
// Multiple calls to Stop are safe (idempotent).
func (p *TCPInfoProvider) Stop() {
	p.stateMu.Lock()
	if p.stopped {
		p.stateMu.Unlock()
		return
	}
	p.stopped = true
	p.stateMu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
}
