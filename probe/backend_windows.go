//go:build windows

package probe

import (
	"golang.org/x/sys/windows"

	"github.com/aptpod/tcpinfo-go/errors"
)

var (
	modWs2_32      = windows.NewLazySystemDLL("ws2_32.dll")
	procWSAIoctl   = modWs2_32.NewProc("WSAIoctl")
	procGetsockopt = modWs2_32.NewProc("getsockopt")
)

type winsockBackend struct{}

func nativeBackend() (Backend, error) {
	for _, proc := range []*windows.LazyProc{procWSAIoctl, procGetsockopt} {
		if err := proc.Find(); err != nil {
			return nil, errors.Errorf("ws2_32.dll: %v: %w", err, errors.ErrUnsupportedPlatform)
		}
	}
	return winsockBackend{}, nil
}

func (winsockBackend) GetSockOpt(s uintptr, level, name int32, optval []byte) (int32, error) {
	if len(optval) == 0 {
		return 0, errors.New("empty option buffer")
	}
	optlen := int32(len(optval))
	if err := windows.Getsockopt(windows.Handle(s), level, name, &optval[0], &optlen); err != nil {
		return 0, err
	}
	return optlen, nil
}

func (winsockBackend) Ioctl(s uintptr, code uint32, in, out []byte) (uint32, error) {
	if len(in) == 0 || len(out) == 0 {
		return 0, errors.New("empty ioctl buffer")
	}
	var bytesReturned uint32
	err := windows.WSAIoctl(windows.Handle(s), code,
		&in[0], uint32(len(in)),
		&out[0], uint32(len(out)),
		&bytesReturned, nil, 0)
	return bytesReturned, err
}
