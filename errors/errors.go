package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrTCPInfoは、tcpinfoライブラリで定義されている基底エラーです。
	ErrTCPInfo = errors.New("tcpinfo")
	// ErrUnsupportedPlatformは、拡張TCP統計を取得する仕組みが無いプラットフォームで問い合わせた場合のエラーです。
	ErrUnsupportedPlatform = fmt.Errorf("unsupported platform: %w", ErrTCPInfo)
	// ErrInvalidHandleは、ハンドルからソケットの候補値を導出できなかった場合のエラーです。
	ErrInvalidHandle = fmt.Errorf("invalid socket handle: %w", ErrTCPInfo)
	// ErrNotStreamSocketは、候補値がストリームソケットとして検証できなかった場合のエラーです。
	ErrNotStreamSocket = fmt.Errorf("not a stream socket: %w", ErrTCPInfo)
	// ErrQueryFailedは、統計情報の問い合わせが失敗を返した場合のエラーです。
	ErrQueryFailed = fmt.Errorf("tcp info query failed: %w", ErrTCPInfo)
	// ErrUnexpectedは、上記以外の想定外の失敗です。
	ErrUnexpected = fmt.Errorf("unexpected failure: %w", ErrTCPInfo)
)

// QueryFailedErrorは、SIO_TCP_INFO の問い合わせが非ゼロのステータスを返した場合に送出されるエラーです。
type QueryFailedError struct {
	Candidate     uintptr // 問い合わせたソケットの候補値
	Code          int     // Winsockのエラーコード（WSAGetLastError）
	BytesReturned uint32  // 書き込まれたバイト数
	Err           error   // 元のエラー
}

func (e QueryFailedError) Error() string {
	return fmt.Sprintf("tcp info query failed: candidate: %d code: %d bytes_returned: %d: %v", e.Candidate, e.Code, e.BytesReturned, e.Err)
}

func (e QueryFailedError) Is(err error) bool {
	return err == ErrQueryFailed || err == ErrTCPInfo
}

func (e QueryFailedError) Unwrap() error {
	return e.Err
}

func AsQueryFailedError(err error) (*QueryFailedError, bool) {
	var res QueryFailedError
	ok := As(err, &res)
	return &res, ok
}

func New(text string) error {
	return errors.New(text)
}

func Errorf(format string, a ...any) error {
	return fmt.Errorf(format, a...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
