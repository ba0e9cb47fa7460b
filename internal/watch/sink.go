package watch

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aptpod/tcpinfo-go/probe"
)

// Recordは、計測対象から1回取得した統計です。
type Record struct {
	// SessionIDは、計測対象への1回の接続を識別するIDです。
	SessionID uuid.UUID `json:"session_id"`
	// Targetは、計測対象の名前です。
	Target string `json:"target"`
	// Timeは、統計を取得した時刻です。
	Time time.Time `json:"time"`
	// Snapshotは、取得した統計です。
	Snapshot probe.Snapshot `json:"snapshot"`
}

// Sinkは、Recordの出力先です。
//
// 複数の計測対象のゴルーチンから同時に呼び出されます。
type Sink interface {
	Write(Record) error
}

// TextSinkは、Recordを1行のテキストで出力するSinkです。
type TextSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextSinkは、TextSinkを返却します。
func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{w: w}
}

func (s *TextSink) Write(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := r.Snapshot
	_, err := fmt.Fprintf(s.w,
		"%s\t%s\t%s\tstate=%v rtt=%v min_rtt=%v cwnd=%d in_flight=%d bytes_out=%d bytes_in=%d retrans=%d syn_retrans=%d\n",
		r.Time.Format(time.RFC3339Nano), r.Target, r.SessionID,
		snap.State, snap.RTT(), snap.MinRTT(), snap.Cwnd, snap.BytesInFlight,
		snap.BytesOut, snap.BytesIn, snap.BytesRetrans, snap.SynRetrans,
	)
	return err
}

// JSONSinkは、RecordをJSON Linesで出力するSinkです。
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONSinkは、JSONSinkを返却します。
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

func (s *JSONSink) Write(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(r)
}
