//go:build !windows

package probe

func handleFromFD(fd uintptr) SocketHandle {
	return DescriptorHandle(int(fd))
}
