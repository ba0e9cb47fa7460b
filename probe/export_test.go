package probe

const (
	SolSocket  = solSocket
	SoType     = soType
	SockStream = sockStream
	SioTCPInfo = sioTCPInfo
)

var DecodeSnapshot = decodeSnapshot

// WithPlatformは、プラットフォームの解決結果を差し替えます。
func WithPlatform(os string, supported bool) Option {
	return func(c *Config) {
		c.platform = &Platform{OS: os, Supported: supported}
	}
}

func (p *Probe) QueryError(h SocketHandle) (Snapshot, error) {
	return p.query(h)
}

func (h SocketHandle) Candidate() (uintptr, bool) {
	return h.candidate()
}
