package log

import (
	"context"
	"fmt"
	"math/rand"
)

// Loggerは、tcpinfo-go内で使用するロガーインターフェースです。
type Logger interface {
	Infof(context.Context, string, ...interface{})
	Warnf(context.Context, string, ...interface{})
	Errorf(context.Context, string, ...interface{})
	Debugf(context.Context, string, ...interface{})
}

var (
	trackProbeIDKey = "trackProbeIDKey"
	trackTargetKey  = "trackTargetKey"
)

// WithTrackProbeIDは、新たにプローブIDを採番しコンテキストにセットします。
//
// プローブIDは1回の問い合わせごとにセットします。
// ここで設定されたプローブIDは常にログ出力します。
func WithTrackProbeID(ctx context.Context) context.Context {
	return context.WithValue(ctx, &trackProbeIDKey, genTrackID())
}

// TrackProbeIDは、コンテキストにセットされたプローブIDを取得します。
func TrackProbeID(ctx context.Context) string {
	v, ok := ctx.Value(&trackProbeIDKey).(string)
	if !ok {
		return ""
	}
	return v
}

// WithTrackTargetは、計測対象の名前をコンテキストにセットします。
func WithTrackTarget(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, &trackTargetKey, name)
}

// TrackTargetは、コンテキストにセットされた計測対象の名前を取得します。
func TrackTarget(ctx context.Context) string {
	v, ok := ctx.Value(&trackTargetKey).(string)
	if !ok {
		return ""
	}
	return v
}

func genTrackID() string {
	return fmt.Sprintf("%04d-%04d-%04d", rand.Int31n(10000), rand.Int31n(10000), rand.Int31n(10000))
}
