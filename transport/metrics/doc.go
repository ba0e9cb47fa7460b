// Package metrics provides connection metrics collection interfaces and implementations.
//
// # MetricsProvider
//
// MetricsProvider is an interface for retrieving connection metrics such as RTT, RTTVAR,
// minimum RTT, congestion window, and bytes in flight.
//
// # Implementations
//
// TCPInfoProvider:
//   - Retrieves metrics from the kernel via probe (SIO_TCP_INFO on Windows)
//   - Periodically updates metrics in the background (e.g. every 100ms)
//   - Derives RTTVAR from successive RTT samples since TCP_INFO_v0 does not report it
//   - Keeps the last good values when a query returns no data
//
// noopMetricsProvider (NewNopMetricsProvider):
//   - Returned by NewMetricsProvider when the platform or connection cannot be probed
//   - Always reports default values
package metrics
