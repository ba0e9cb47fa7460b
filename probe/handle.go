package probe

import (
	"fmt"
	"strconv"
	"syscall"

	"github.com/aptpod/tcpinfo-go/errors"
)

// SocketHandleは、確立済みのストリーム接続を指す借用ハンドルです。
//
// プラットフォーム統合層がハンドル生成時に2つの候補値を埋めます。
// どちらも任意で、プローブはソケットを作成・複製・クローズしません。
type SocketHandle struct {
	// Nativeは、ネイティブのソケットハンドル（Windowsの SOCKET）です。
	// 0より大きい場合のみ有効です。
	Native *int64

	// Descriptorは、下位のディスクリプタ値です。
	// 0以上の場合のみ有効で、符号なしのソケット識別子として解釈します。
	Descriptor *int32
}

// NativeHandleは、ネイティブハンドル値だけを持つSocketHandleを返却します。
func NativeHandle(h uintptr) SocketHandle {
	v := int64(h)
	return SocketHandle{Native: &v}
}

// DescriptorHandleは、ディスクリプタ値だけを持つSocketHandleを返却します。
func DescriptorHandle(fd int) SocketHandle {
	v := int32(fd)
	return SocketHandle{Descriptor: &v}
}

// HandleFromConnは、接続の生のディスクリプタからSocketHandleを生成します。
//
// ディスクリプタは SyscallConn().Control で読み取るだけで、接続の寿命には影響しません。
// 返却したハンドルは接続が閉じられると無効になります。
func HandleFromConn(conn syscall.Conn) (SocketHandle, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return SocketHandle{}, errors.Errorf("syscall conn: %v: %w", err, errors.ErrInvalidHandle)
	}
	var h SocketHandle
	if err := raw.Control(func(fd uintptr) {
		h = handleFromFD(fd)
	}); err != nil {
		return SocketHandle{}, errors.Errorf("control: %v: %w", err, errors.ErrInvalidHandle)
	}
	return h, nil
}

// candidateは、問い合わせに使うソケットの候補値を返します。
//
// 有効なNativeを優先し、無い場合はDescriptorを符号なしとして使います。
func (h SocketHandle) candidate() (uintptr, bool) {
	if h.Native != nil && *h.Native > 0 {
		return uintptr(*h.Native), true
	}
	if h.Descriptor != nil && *h.Descriptor >= 0 {
		return uintptr(uint32(*h.Descriptor)), true
	}
	return 0, false
}

func (h SocketHandle) String() string {
	native, descriptor := "<nil>", "<nil>"
	if h.Native != nil {
		native = strconv.FormatInt(*h.Native, 10)
	}
	if h.Descriptor != nil {
		descriptor = strconv.FormatInt(int64(*h.Descriptor), 10)
	}
	return fmt.Sprintf("native=%s descriptor=%s", native, descriptor)
}
