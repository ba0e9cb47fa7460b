package metrics

const (
	DefaultRTT    = defaultRTT
	DefaultRTTVar = defaultRTTVar
	DefaultCWND   = defaultCWND
)

func (p *TCPInfoProvider) Update() bool {
	return p.update()
}

func IsNop(p ManagedMetricsProvider) bool {
	_, ok := p.(*noopMetricsProvider)
	return ok
}
