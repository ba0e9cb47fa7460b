/*
Package tcpinfoは、確立済みTCP接続の拡張統計（TCP_INFO_v0）を取得するためのモジュールです。

パッケージの構成は以下のとおりです。

  - probe: ソケットハンドルから1回だけ統計を取得します。取得できない場合は false を返します。
  - transport/metrics: probe を一定間隔で呼び出し、RTTや輻輳ウィンドウを提供します。
  - transport/websocket: WebSocket接続の下にあるTCP接続を取り出すダイアラーです。
  - cmd/tcpinfo: 計測対象へ接続し、統計を出力するコマンドです。

# Query

	package main

	import (
		"log"
		"net"

		"github.com/aptpod/tcpinfo-go/probe"
	)

	func main() {
		conn, err := net.Dial("tcp", "127.0.0.1:8080")
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		h, err := probe.HandleFromConn(conn.(*net.TCPConn))
		if err != nil {
			log.Fatal(err)
		}
		s, ok := probe.Query(h)
		if !ok {
			// Windows以外のプラットフォームでは常に false です。
			log.Fatal("tcp info unavailable")
		}
		log.Printf("rtt: %dms cwnd: %d bytes_retrans: %d", s.RTTMillis(), s.Cwnd, s.BytesRetrans)
	}

# Command

	tcpinfo watch --interval 500ms --count 10 127.0.0.1:8080
	tcpinfo watch --config tcpinfo.yaml --format json
	tcpinfo layout

設定ファイルの例です。

	interval: 1s
	count: 0
	format: text
	dial_timeout: 5s
	dial_retry: 3
	targets:
	  - name: api
	    address: 127.0.0.1:8080
	  - name: stream
	    url: ws://127.0.0.1:8080/ws
	    websocket: nhooyr
*/
package tcpinfo
