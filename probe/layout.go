package probe

import (
	"encoding/binary"

	"github.com/aptpod/tcpinfo-go/errors"
)

// SnapshotSizeは、ネイティブの TCP_INFO_v0 構造体のバイト数です。
//
// ULONG64 を含むため構造体全体は8バイト境界に揃えられ、末尾に3バイトの詰め物が入ります。
const SnapshotSize = 88

// Fieldは、TCP_INFO_v0 の1フィールドの配置です。
//
// 値を持たない詰め物の領域もFieldとして並べ、オフセットの連続性を検証できるようにしています。
type Field struct {
	Name   string
	Offset int
	Width  int

	get func(*Snapshot) uint64
	set func(*Snapshot, uint64)
}

// Paddingは、このフィールドが整列のための詰め物かどうかを返します。
func (f Field) Padding() bool {
	return f.set == nil
}

func boolToUint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

var snapshotLayout = []Field{
	{Name: "State", Offset: 0, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.State) },
		set: func(s *Snapshot, v uint64) { s.State = TCPState(v) }},
	{Name: "Mss", Offset: 4, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.MSS) },
		set: func(s *Snapshot, v uint64) { s.MSS = uint32(v) }},
	{Name: "ConnectionTimeMs", Offset: 8, Width: 8,
		get: func(s *Snapshot) uint64 { return s.ConnectionTimeMs },
		set: func(s *Snapshot, v uint64) { s.ConnectionTimeMs = v }},
	{Name: "TimestampsEnabled", Offset: 16, Width: 1,
		get: func(s *Snapshot) uint64 { return boolToUint(s.TimestampsEnabled) },
		set: func(s *Snapshot, v uint64) { s.TimestampsEnabled = v != 0 }},
	{Name: "_pad1", Offset: 17, Width: 3},
	{Name: "RttUs", Offset: 20, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.RTTUs) },
		set: func(s *Snapshot, v uint64) { s.RTTUs = uint32(v) }},
	{Name: "MinRttUs", Offset: 24, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.MinRTTUs) },
		set: func(s *Snapshot, v uint64) { s.MinRTTUs = uint32(v) }},
	{Name: "BytesInFlight", Offset: 28, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.BytesInFlight) },
		set: func(s *Snapshot, v uint64) { s.BytesInFlight = uint32(v) }},
	{Name: "Cwnd", Offset: 32, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.Cwnd) },
		set: func(s *Snapshot, v uint64) { s.Cwnd = uint32(v) }},
	{Name: "SndWnd", Offset: 36, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.SndWnd) },
		set: func(s *Snapshot, v uint64) { s.SndWnd = uint32(v) }},
	{Name: "RcvWnd", Offset: 40, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.RcvWnd) },
		set: func(s *Snapshot, v uint64) { s.RcvWnd = uint32(v) }},
	{Name: "RcvBuf", Offset: 44, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.RcvBuf) },
		set: func(s *Snapshot, v uint64) { s.RcvBuf = uint32(v) }},
	{Name: "BytesOut", Offset: 48, Width: 8,
		get: func(s *Snapshot) uint64 { return s.BytesOut },
		set: func(s *Snapshot, v uint64) { s.BytesOut = v }},
	{Name: "BytesIn", Offset: 56, Width: 8,
		get: func(s *Snapshot) uint64 { return s.BytesIn },
		set: func(s *Snapshot, v uint64) { s.BytesIn = v }},
	{Name: "BytesReordered", Offset: 64, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.BytesReordered) },
		set: func(s *Snapshot, v uint64) { s.BytesReordered = uint32(v) }},
	{Name: "BytesRetrans", Offset: 68, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.BytesRetrans) },
		set: func(s *Snapshot, v uint64) { s.BytesRetrans = uint32(v) }},
	{Name: "FastRetrans", Offset: 72, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.FastRetrans) },
		set: func(s *Snapshot, v uint64) { s.FastRetrans = uint32(v) }},
	{Name: "DupAcksIn", Offset: 76, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.DupAcksIn) },
		set: func(s *Snapshot, v uint64) { s.DupAcksIn = uint32(v) }},
	{Name: "TimeoutEpisodes", Offset: 80, Width: 4,
		get: func(s *Snapshot) uint64 { return uint64(s.TimeoutEpisodes) },
		set: func(s *Snapshot, v uint64) { s.TimeoutEpisodes = uint32(v) }},
	{Name: "SynRetrans", Offset: 84, Width: 1,
		get: func(s *Snapshot) uint64 { return uint64(s.SynRetrans) },
		set: func(s *Snapshot, v uint64) { s.SynRetrans = uint8(v) }},
	{Name: "_pad2", Offset: 85, Width: 3},
}

// Layoutは、TCP_INFO_v0 のフィールド配置を先頭から順に返却します。
func Layout() []Field {
	res := make([]Field, len(snapshotLayout))
	copy(res, snapshotLayout)
	return res
}

func readUint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	}
	panic("unsupported field width")
}

func putUint(b []byte, v uint64) {
	switch len(b) {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(b, v)
	default:
		panic("unsupported field width")
	}
}

func decodeSnapshot(b []byte) (Snapshot, error) {
	if len(b) < SnapshotSize {
		return Snapshot{}, errors.Errorf("tcp info buffer too short: %d < %d", len(b), SnapshotSize)
	}
	var s Snapshot
	for _, f := range snapshotLayout {
		if f.Padding() {
			continue
		}
		f.set(&s, readUint(b[f.Offset:f.Offset+f.Width]))
	}
	return s, nil
}

func encodeSnapshot(s Snapshot) []byte {
	b := make([]byte, SnapshotSize)
	for _, f := range snapshotLayout {
		if f.Padding() {
			continue
		}
		putUint(b[f.Offset:f.Offset+f.Width], f.get(&s))
	}
	return b
}

// MarshalBinaryは、ネイティブの TCP_INFO_v0 と同じバイト列へエンコードします。
// 詰め物の領域はゼロです。
func (s Snapshot) MarshalBinary() ([]byte, error) {
	return encodeSnapshot(s), nil
}

// UnmarshalBinaryは、TCP_INFO_v0 のバイト列をデコードします。
// 失敗した場合、sは変更されません。
func (s *Snapshot) UnmarshalBinary(b []byte) error {
	res, err := decodeSnapshot(b)
	if err != nil {
		return err
	}
	*s = res
	return nil
}
