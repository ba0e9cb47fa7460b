package metrics

import "time"

var _ ManagedMetricsProvider = (*noopMetricsProvider)(nil)

// noopMetricsProvider は ManagedMetricsProvider の何もしない実装です。
// メトリクスが利用できない環境（Windows以外、ソケットを取り出せない接続等）で使用されます。
//
// この実装は Null Object Pattern に従い、すべてのメソッドがデフォルト値を返すか
// 何もしない動作をします。これにより、呼び出し側で nil チェックが不要になります。
type noopMetricsProvider struct{}

// NewNopMetricsProvider は新しい noopMetricsProvider を作成します。
func NewNopMetricsProvider() ManagedMetricsProvider {
	return &noopMetricsProvider{}
}

// RTT returns the default RTT value.
func (n *noopMetricsProvider) RTT() time.Duration {
	return defaultRTT
}

// RTTVar returns the default RTT variation value.
func (n *noopMetricsProvider) RTTVar() time.Duration {
	return defaultRTTVar
}

// MinRTT returns the default RTT value.
func (n *noopMetricsProvider) MinRTT() time.Duration {
	return defaultRTT
}

// CongestionWindow returns the default congestion window size.
func (n *noopMetricsProvider) CongestionWindow() uint64 {
	return defaultCWND
}

// BytesInFlight always returns 0 since no actual tracking is performed.
func (n *noopMetricsProvider) BytesInFlight() uint64 {
	return 0
}

// Start is a no-op and always succeeds.
func (n *noopMetricsProvider) Start() error {
	return nil
}

// Stop is a no-op.
func (n *noopMetricsProvider) Stop() {
}
