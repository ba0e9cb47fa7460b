package probe

import (
	"runtime"
	"sync"
)

// Platformは、プロセス内で一度だけ解決される拡張TCP統計の利用可否です。
// 解決後に変更されることはありません。
type Platform struct {
	OS        string
	Supported bool

	backend Backend
	reason  error
}

var currentPlatform = sync.OnceValue(func() Platform {
	b, err := nativeBackend()
	return Platform{
		OS:        runtime.GOOS,
		Supported: err == nil,
		backend:   b,
		reason:    err,
	}
})

// CurrentPlatformは、実行中のプラットフォームの解決結果を返却します。
func CurrentPlatform() Platform {
	return currentPlatform()
}

// Reasonは、利用できない場合にその理由を返します。
func (p Platform) Reason() error {
	return p.reason
}
