package probe

//go:generate mockgen -destination ./${GOPACKAGE}mock/${GOFILE} -package ${GOPACKAGE}mock -source ./${GOFILE}

// Backendは、Winsockへのネイティブ呼び出し境界です。
//
// 実装は渡されたソケットの寿命に影響を与えてはいけません。
type Backend interface {
	// GetSockOptは、getsockopt を呼び出し optval に書き込まれたバイト数を返します。
	GetSockOpt(s uintptr, level, name int32, optval []byte) (int32, error)

	// Ioctlは、WSAIoctl を同期的に呼び出し out に書き込まれたバイト数を返します。
	Ioctl(s uintptr, code uint32, in, out []byte) (uint32, error)
}
