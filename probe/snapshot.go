package probe

import (
	"time"
)

// TCPStateは、Windowsの TCPSTATE 列挙値です。
type TCPState uint32

const (
	TCPStateClosed TCPState = iota
	TCPStateListen
	TCPStateSynSent
	TCPStateSynRcvd
	TCPStateEstablished
	TCPStateFinWait1
	TCPStateFinWait2
	TCPStateCloseWait
	TCPStateClosing
	TCPStateLastAck
	TCPStateTimeWait
)

var tcpStateNames = [...]string{
	TCPStateClosed:      "CLOSED",
	TCPStateListen:      "LISTEN",
	TCPStateSynSent:     "SYN_SENT",
	TCPStateSynRcvd:     "SYN_RCVD",
	TCPStateEstablished: "ESTABLISHED",
	TCPStateFinWait1:    "FIN_WAIT_1",
	TCPStateFinWait2:    "FIN_WAIT_2",
	TCPStateCloseWait:   "CLOSE_WAIT",
	TCPStateClosing:     "CLOSING",
	TCPStateLastAck:     "LAST_ACK",
	TCPStateTimeWait:    "TIME_WAIT",
}

func (s TCPState) String() string {
	if int(s) < len(tcpStateNames) {
		return tcpStateNames[s]
	}
	return "UNKNOWN"
}

// Snapshotは、ある時点の接続のテレメトリです（TCP_INFO_v0）。
//
// 問い合わせが成功するたびに新しく生成され、生成後に変更されることはありません。
// フィールドの並びはネイティブ構造体と同じです。
type Snapshot struct {
	State             TCPState `json:"state"`
	MSS               uint32   `json:"mss"`
	ConnectionTimeMs  uint64   `json:"connection_time_ms"`
	TimestampsEnabled bool     `json:"timestamps_enabled"`
	RTTUs             uint32   `json:"rtt_us"`
	MinRTTUs          uint32   `json:"min_rtt_us"`
	BytesInFlight     uint32   `json:"bytes_in_flight"`
	Cwnd              uint32   `json:"cwnd"`
	SndWnd            uint32   `json:"snd_wnd"`
	RcvWnd            uint32   `json:"rcv_wnd"`
	RcvBuf            uint32   `json:"rcv_buf"`
	BytesOut          uint64   `json:"bytes_out"`
	BytesIn           uint64   `json:"bytes_in"`
	BytesReordered    uint32   `json:"bytes_reordered"`
	BytesRetrans      uint32   `json:"bytes_retrans"`
	FastRetrans       uint32   `json:"fast_retrans"`
	DupAcksIn         uint32   `json:"dup_acks_in"`
	TimeoutEpisodes   uint32   `json:"timeout_episodes"`
	SynRetrans        uint8    `json:"syn_retrans"`
}

// RTTは、平滑化RTTを返します。
func (s Snapshot) RTT() time.Duration {
	return time.Duration(s.RTTUs) * time.Microsecond
}

// MinRTTは、観測された最小RTTを返します。
func (s Snapshot) MinRTT() time.Duration {
	return time.Duration(s.MinRTTUs) * time.Microsecond
}

// ConnectionTimeは、接続が確立してからの経過時間を返します。
func (s Snapshot) ConnectionTime() time.Duration {
	return time.Duration(s.ConnectionTimeMs) * time.Millisecond
}

// RTTMillisは、表示用にミリ秒へ丸めたRTTを返します。最小値は1です。
func (s Snapshot) RTTMillis() int {
	ms := int(s.RTTUs / 1000)
	if ms < 1 {
		return 1
	}
	return ms
}

// SynRetransmittedは、最初のSYNが再送されたかどうかを返します。
func (s Snapshot) SynRetransmitted() bool {
	return s.SynRetrans != 0
}
