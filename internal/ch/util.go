package ch

import "context"

// WriteOrDoneは、vをcへ書き込みます。ctxが終了した場合は書き込まずに戻ります。
func WriteOrDone[T any](ctx context.Context, v T, c chan<- T) bool {
	select {
	case c <- v:
		return true
	case <-ctx.Done():
		return false
	}
}

// ReadOrDoneOneは、cから1つ読み込みます。ctxが終了したかcが閉じられた場合は false を返します。
func ReadOrDoneOne[T any](ctx context.Context, c <-chan T) (T, bool) {
	var t T
	select {
	case <-ctx.Done():
		return t, false
	case v, ok := <-c:
		if !ok {
			return t, false
		}
		return v, true
	}
}
