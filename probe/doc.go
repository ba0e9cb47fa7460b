// Package probe は、確立済みTCP接続の拡張統計（Windowsの TCP_INFO_v0）を取得します。
//
// # Query
//
// Query はベストエフォートの診断用APIです。
// 以下のいずれかに該当すると統計は得られず、false を返します。
//   - 拡張統計を取得する仕組みが無いプラットフォーム（Windows以外）
//   - ハンドルからソケットの候補値を導出できない
//   - 候補値が SO_TYPE の確認でストリームソケットと判定されない
//   - WSAIoctl(SIO_TCP_INFO) が失敗を返した
//   - その他の想定外の失敗
//
// 失敗理由は呼び出し側に区別して返さず、WithLogger で設定したロガーの Debugf にのみ出力します。
// Query はリトライを行いません。定期的に取得したい場合は transport/metrics を利用してください。
//
//	conn, err := net.Dial("tcp", "127.0.0.1:8080")
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	h, err := probe.HandleFromConn(conn.(*net.TCPConn))
//	if err != nil {
//		return err
//	}
//	if s, ok := probe.Query(h); ok {
//		fmt.Printf("rtt: %dms cwnd: %d\n", s.RTTMillis(), s.Cwnd)
//	}
//
// # Layout
//
// Snapshot のバイナリ表現はネイティブの構造体と1バイト単位で一致します。
// BOOLEAN の TimestampsEnabled の直後に3バイトの詰め物があり、
// 構造体の末尾は8バイト境界まで詰められます（合計 SnapshotSize バイト）。
// 配置は Layout で参照できます。
package probe
