package probe

import (
	"context"
	"encoding/binary"
	"sync"
	"syscall"

	"github.com/aptpod/tcpinfo-go/errors"
	"github.com/aptpod/tcpinfo-go/log"
)

// Probeは、ソケットの拡張TCP統計（TCP_INFO_v0）をベストエフォートで取得します。
//
// Probeは可変な状態を持たないため、異なるハンドルに対して複数のゴルーチンから同時に呼び出せます。
type Probe struct {
	platform Platform
	backend  Backend
	logger   log.Logger
}

// Newは、Probeを返却します。
func New(opts ...Option) *Probe {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	platform := CurrentPlatform()
	if c.platform != nil {
		platform = *c.platform
	}
	backend := c.Backend
	if backend == nil {
		backend = platform.backend
	}
	logger := c.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &Probe{
		platform: platform,
		backend:  backend,
		logger:   logger,
	}
}

var defaultProbe = sync.OnceValue(func() *Probe {
	return New()
})

// Queryは、デフォルトのProbeでhの統計を取得します。
func Query(h SocketHandle) (Snapshot, bool) {
	return defaultProbe().Query(h)
}

// Supportedは、このプラットフォームで統計を取得できるかどうかを返します。
func Supported() bool {
	return CurrentPlatform().Supported
}

// Supportedは、このProbeで統計を取得できるかどうかを返します。
func (p *Probe) Supported() bool {
	return p.platform.Supported
}

// Queryは、hの統計を取得します。
//
// 取得できなかった場合は false を返します。失敗の理由は区別せず、エラーも返しません。
func (p *Probe) Query(h SocketHandle) (Snapshot, bool) {
	return p.QueryContext(context.Background(), h)
}

// QueryContextは、Queryと同じですが、ctxをログ出力に使用します。
//
// 問い合わせは同期的で短時間に終わるため、ctxのキャンセルは参照しません。
func (p *Probe) QueryContext(ctx context.Context, h SocketHandle) (Snapshot, bool) {
	res, err := p.query(h)
	if err != nil {
		ctx = log.WithTrackProbeID(ctx)
		p.logger.Debugf(ctx, "tcp info unavailable: handle[%v]: %v", h, err)
		return Snapshot{}, false
	}
	return res, true
}

func (p *Probe) query(h SocketHandle) (res Snapshot, err error) {
	if !p.platform.Supported {
		return Snapshot{}, errors.Errorf("os[%s]: %w", p.platform.OS, errors.ErrUnsupportedPlatform)
	}
	defer func() {
		if r := recover(); r != nil {
			res, err = Snapshot{}, errors.Errorf("%v: %w", r, errors.ErrUnexpected)
		}
	}()
	if p.backend == nil {
		return Snapshot{}, errors.Errorf("no backend: %w", errors.ErrUnexpected)
	}

	s, ok := h.candidate()
	if !ok {
		return Snapshot{}, errors.Errorf("no socket candidate in %v: %w", h, errors.ErrInvalidHandle)
	}
	if err := p.validateStreamSocket(s); err != nil {
		return Snapshot{}, err
	}
	return p.queryTCPInfo(s)
}

// validateStreamSocketは、sがストリームソケットであることをSO_TYPEで確認します。
//
// 無関係なハンドルや再利用されたハンドルに SIO_TCP_INFO を発行しないためのものです。
func (p *Probe) validateStreamSocket(s uintptr) error {
	opt := make([]byte, 4)
	n, err := p.backend.GetSockOpt(s, solSocket, soType, opt)
	if err != nil {
		return errors.Errorf("getsockopt SO_TYPE: candidate[%d]: %v: %w", s, err, errors.ErrNotStreamSocket)
	}
	if n != int32(len(opt)) {
		return errors.Errorf("getsockopt SO_TYPE: candidate[%d]: optlen[%d]: %w", s, n, errors.ErrNotStreamSocket)
	}
	if typ := int32(binary.LittleEndian.Uint32(opt)); typ != sockStream {
		return errors.Errorf("getsockopt SO_TYPE: candidate[%d]: type[%d]: %w", s, typ, errors.ErrNotStreamSocket)
	}
	return nil
}

func (p *Probe) queryTCPInfo(s uintptr) (Snapshot, error) {
	in := make([]byte, 4)
	binary.LittleEndian.PutUint32(in, tcpInfoVersion0)
	out := make([]byte, SnapshotSize)

	n, err := p.backend.Ioctl(s, sioTCPInfo, in, out)
	if err != nil {
		code := -1
		var errno syscall.Errno
		if errors.As(err, &errno) {
			code = int(errno)
		}
		return Snapshot{}, errors.QueryFailedError{
			Candidate:     s,
			Code:          code,
			BytesReturned: n,
			Err:           err,
		}
	}
	if n != 0 && n < SnapshotSize {
		return Snapshot{}, errors.Errorf("candidate[%d]: bytes_returned[%d]: %w", s, n, errors.ErrQueryFailed)
	}

	res, err := decodeSnapshot(out)
	if err != nil {
		return Snapshot{}, errors.Errorf("%v: %w", err, errors.ErrUnexpected)
	}
	return res, nil
}
