// Package websocket は、確立したWebSocketの基盤となるTCP接続を取り出すためのダイアラーを提供します。
//
// 実装は gorilla / nhooyr サブパッケージにあり、インポートすると名前で登録されます。
//
//	import _ "github.com/aptpod/tcpinfo-go/transport/websocket/gorilla"
//
//	conn, err := websocket.Dial(ctx, "gorilla", websocket.DialConfig{URL: "ws://127.0.0.1:8080/ws"})
package websocket
