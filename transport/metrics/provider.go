package metrics

import "time"

// MetricsProvider は、TCP接続のメトリクスを取得するためのインターフェースです。
// 読み取り専用で、ライフサイクル管理メソッドは含まれません。
//
// 実装は並行アクセスに対して安全である必要があります。
type MetricsProvider interface {
	// RTT は、平滑化ラウンドトリップタイム (SRTT) を返します。
	// まだ測定されていない場合は、デフォルト値（例: 100ms）を返します。
	RTT() time.Duration

	// RTTVar は、RTT変動 (RTTVAR、平均偏差とも呼ばれる) を返します。
	// まだ測定されていない場合は、デフォルト値（例: 50ms）を返します。
	RTTVar() time.Duration

	// MinRTT は、接続で観測された最小RTTを返します。
	// まだ測定されていない場合は、RTT() と同じ値を返します。
	MinRTT() time.Duration

	// CongestionWindow は、輻輳ウィンドウサイズをバイト単位で返します。
	// まだ測定されていない場合は、デフォルト値（例: 14600 バイト = 10 * MSS）を返します。
	CongestionWindow() uint64

	// BytesInFlight は、送信済みだがまだ確認応答されていないバイト数を返します。
	BytesInFlight() uint64
}

// LifeCycler は、バックグラウンド処理のライフサイクルを管理するインターフェースです。
type LifeCycler interface {
	// Start は、バックグラウンドでのメトリクス収集を開始します。
	// Start() の複数回呼び出しはエラーを返す必要があります（冪等ではありません）。
	Start() error

	// Stop は、バックグラウンド処理を終了します。
	// Stop() を呼び出した後も、プロバイダーへの問い合わせは安全ですが、
	// 最後に取得した値またはデフォルト値を返します。
	// Stop() の複数回呼び出しは安全である必要があります（冪等です）。
	Stop()
}

// ManagedMetricsProvider は、ライフサイクル管理を含むMetricsProviderです。
type ManagedMetricsProvider interface {
	MetricsProvider
	LifeCycler
}
