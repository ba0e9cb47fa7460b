package metrics_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aptpod/tcpinfo-go/probe"
	"github.com/aptpod/tcpinfo-go/transport/metrics"
)

type queryResult struct {
	snapshot probe.Snapshot
	ok       bool
}

// fakeQuerierは、用意した結果を順に返します。使い切った後は常に失敗を返します。
type fakeQuerier struct {
	mu      sync.Mutex
	results []queryResult
	handles []probe.SocketHandle
}

func (q *fakeQuerier) QueryContext(_ context.Context, h probe.SocketHandle) (probe.Snapshot, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handles = append(q.handles, h)
	if len(q.results) == 0 {
		return probe.Snapshot{}, false
	}
	res := q.results[0]
	q.results = q.results[1:]
	return res.snapshot, res.ok
}

func (q *fakeQuerier) Handles() []probe.SocketHandle {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]probe.SocketHandle(nil), q.handles...)
}

func sample(rttUs, minRTTUs, cwnd, inFlight uint32) queryResult {
	return queryResult{
		snapshot: probe.Snapshot{
			State:         probe.TCPStateEstablished,
			MSS:           1460,
			RTTUs:         rttUs,
			MinRTTUs:      minRTTUs,
			Cwnd:          cwnd,
			BytesInFlight: inFlight,
		},
		ok: true,
	}
}

func TestTCPInfoProvider_DefaultValues(t *testing.T) {
	provider := metrics.NewTCPInfoProvider(probe.NativeHandle(500), 100*time.Millisecond, metrics.WithQuerier(&fakeQuerier{}))

	tests := []struct {
		name   string
		getter func() any
		want   any
	}{
		{
			name:   "success: default RTT is 100ms",
			getter: func() any { return provider.RTT() },
			want:   100 * time.Millisecond,
		},
		{
			name:   "success: default RTTVar is 50ms",
			getter: func() any { return provider.RTTVar() },
			want:   50 * time.Millisecond,
		},
		{
			name:   "success: default MinRTT follows RTT",
			getter: func() any { return provider.MinRTT() },
			want:   100 * time.Millisecond,
		},
		{
			name:   "success: default CongestionWindow is 14600 bytes",
			getter: func() any { return provider.CongestionWindow() },
			want:   uint64(14600),
		},
		{
			name:   "success: default BytesInFlight is 0",
			getter: func() any { return provider.BytesInFlight() },
			want:   uint64(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.getter()
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := provider.Snapshot()
	assert.False(t, ok)
}

func TestTCPInfoProvider_Update(t *testing.T) {
	q := &fakeQuerier{results: []queryResult{
		sample(20000, 15000, 29200, 1460),
		sample(40000, 15000, 14600, 2920),
		{ok: false},
	}}
	var updates []probe.Snapshot
	provider := metrics.NewTCPInfoProvider(probe.NativeHandle(500), time.Second,
		metrics.WithQuerier(q),
		metrics.WithUpdateHandler(func(s probe.Snapshot) { updates = append(updates, s) }),
	)

	t.Run("success: first sample", func(t *testing.T) {
		require.True(t, provider.Update())
		assert.Equal(t, 20*time.Millisecond, provider.RTT())
		assert.Equal(t, 10*time.Millisecond, provider.RTTVar())
		assert.Equal(t, 15*time.Millisecond, provider.MinRTT())
		assert.Equal(t, uint64(29200), provider.CongestionWindow())
		assert.Equal(t, uint64(1460), provider.BytesInFlight())

		got, ok := provider.Snapshot()
		require.True(t, ok)
		assert.Equal(t, uint32(20000), got.RTTUs)
	})

	t.Run("success: rttvar is smoothed", func(t *testing.T) {
		require.True(t, provider.Update())
		assert.Equal(t, 40*time.Millisecond, provider.RTT())
		// (3 * 10ms + |20ms - 40ms|) / 4
		assert.Equal(t, 12500*time.Microsecond, provider.RTTVar())
		assert.Equal(t, uint64(14600), provider.CongestionWindow())
		assert.Equal(t, uint64(2920), provider.BytesInFlight())
	})

	t.Run("success: absence keeps previous values", func(t *testing.T) {
		require.False(t, provider.Update())
		assert.Equal(t, 40*time.Millisecond, provider.RTT())
		assert.Equal(t, 12500*time.Microsecond, provider.RTTVar())
		assert.Equal(t, uint64(1), provider.Failures())

		got, ok := provider.Snapshot()
		require.True(t, ok)
		assert.Equal(t, uint32(40000), got.RTTUs)
	})

	require.Len(t, updates, 2)
	assert.Equal(t, uint32(20000), updates[0].RTTUs)
	assert.Equal(t, uint32(40000), updates[1].RTTUs)
	for _, h := range q.Handles() {
		assert.Equal(t, int64(500), *h.Native)
	}
}

func TestTCPInfoProvider_StartQueriesImmediately(t *testing.T) {
	defer goleak.VerifyNone(t)

	updated := make(chan probe.Snapshot, 1)
	q := &fakeQuerier{results: []queryResult{sample(25000, 20000, 14600, 0)}}
	provider := metrics.NewTCPInfoProvider(probe.NativeHandle(500), time.Hour,
		metrics.WithQuerier(q),
		metrics.WithUpdateHandler(func(s probe.Snapshot) { updated <- s }),
	)
	require.NoError(t, provider.Start())
	defer provider.Stop()

	select {
	case s := <-updated:
		assert.Equal(t, 25, s.RTTMillis())
	case <-time.After(2 * time.Second):
		t.Fatal("first update did not happen")
	}
	assert.Equal(t, 25*time.Millisecond, provider.RTT())
}

func TestTCPInfoProvider_ConcurrentAccess(t *testing.T) {
	defer goleak.VerifyNone(t)

	results := make([]queryResult, 0, 100)
	for i := 0; i < 100; i++ {
		results = append(results, sample(uint32(10000+i), 10000, 14600, uint32(i)))
	}
	provider := metrics.NewTCPInfoProvider(probe.NativeHandle(500), time.Millisecond, metrics.WithQuerier(&fakeQuerier{results: results}))
	err := provider.Start()
	assert.NoError(t, err)
	defer provider.Stop()

	var wg sync.WaitGroup
	numGoroutines := 10
	iterations := 100

	t.Run("success: concurrent reads while updating without race conditions", func(t *testing.T) {
		for range numGoroutines {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range iterations {
					_ = provider.RTT()
					_ = provider.RTTVar()
					_ = provider.MinRTT()
					_ = provider.CongestionWindow()
					_ = provider.BytesInFlight()
					_, _ = provider.Snapshot()
				}
			}()
		}
		wg.Wait()
	})
}

func TestTCPInfoProvider_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := metrics.NewTCPInfoProvider(probe.NativeHandle(500), 50*time.Millisecond, metrics.WithQuerier(&fakeQuerier{}))

	t.Run("success: start and stop completes without hanging", func(t *testing.T) {
		err := provider.Start()
		assert.NoError(t, err)

		time.Sleep(150 * time.Millisecond)

		done := make(chan struct{})
		go func() {
			provider.Stop()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Stop() did not complete within timeout")
		}
	})

	t.Run("success: values remain accessible after stop", func(t *testing.T) {
		assert.Equal(t, 100*time.Millisecond, provider.RTT(), "RTT should be default value after stop")
		assert.Equal(t, 50*time.Millisecond, provider.RTTVar(), "RTTVar should be default value after stop")
		assert.Equal(t, uint64(14600), provider.CongestionWindow(), "CWND should be default value after stop")
		assert.NotZero(t, provider.Failures())
	})
}

func TestTCPInfoProvider_StartErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := metrics.NewTCPInfoProvider(probe.NativeHandle(500), 50*time.Millisecond, metrics.WithQuerier(&fakeQuerier{}))

	t.Run("error: start called twice", func(t *testing.T) {
		err := provider.Start()
		assert.NoError(t, err)

		err = provider.Start()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already started")
	})

	t.Run("error: start after stop", func(t *testing.T) {
		provider.Stop()

		err := provider.Start()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already stopped")
	})
}

func TestTCPInfoProvider_StopIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := metrics.NewTCPInfoProvider(probe.NativeHandle(500), 50*time.Millisecond, metrics.WithQuerier(&fakeQuerier{}))
	err := provider.Start()
	assert.NoError(t, err)

	t.Run("success: multiple stop calls are safe", func(t *testing.T) {
		provider.Stop()
		provider.Stop()
	})

	t.Run("success: stop without start", func(t *testing.T) {
		p := metrics.NewTCPInfoProvider(probe.NativeHandle(500), 50*time.Millisecond, metrics.WithQuerier(&fakeQuerier{}))
		p.Stop()
	})
}

func TestNewMetricsProvider(t *testing.T) {
	t.Run("success: nop for a connection without raw socket", func(t *testing.T) {
		server, client := net.Pipe()
		defer server.Close()
		defer client.Close()

		provider := metrics.NewMetricsProvider(client, 100*time.Millisecond)
		assert.True(t, metrics.IsNop(provider))
		assert.Equal(t, metrics.DefaultRTT, provider.RTT())
		assert.Equal(t, metrics.DefaultRTTVar, provider.RTTVar())
		assert.Equal(t, uint64(metrics.DefaultCWND), provider.CongestionWindow())
		assert.NoError(t, provider.Start())
		provider.Stop()
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_, _ = conn.Read(make([]byte, 1))
	}()
	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	t.Run("success: follows platform support with the default querier", func(t *testing.T) {
		provider := metrics.NewMetricsProvider(conn, 100*time.Millisecond)
		assert.Equal(t, !probe.Supported(), metrics.IsNop(provider))
	})

	t.Run("success: tcp connection is probed through the querier", func(t *testing.T) {
		q := &fakeQuerier{results: []queryResult{sample(30000, 30000, 14600, 0)}}
		provider := metrics.NewMetricsProvider(conn, 100*time.Millisecond, metrics.WithQuerier(q))
		require.False(t, metrics.IsNop(provider))

		tp := provider.(*metrics.TCPInfoProvider)
		require.True(t, tp.Update())
		assert.Equal(t, 30*time.Millisecond, tp.RTT())

		handles := q.Handles()
		require.Len(t, handles, 1)
		assert.True(t, handles[0].Native != nil || handles[0].Descriptor != nil)
	})
}
