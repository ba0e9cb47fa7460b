//go:build !windows

package probe

import (
	"runtime"

	"github.com/aptpod/tcpinfo-go/errors"
)

func nativeBackend() (Backend, error) {
	return nil, errors.Errorf("%s: %w", runtime.GOOS, errors.ErrUnsupportedPlatform)
}
