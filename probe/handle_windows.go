//go:build windows

package probe

// Windowsでは net.Conn の fd は SOCKET そのものです。
func handleFromFD(fd uintptr) SocketHandle {
	return NativeHandle(fd)
}
