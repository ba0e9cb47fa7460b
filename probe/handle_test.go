package probe_test

import (
	"testing"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"

	. "github.com/aptpod/tcpinfo-go/probe"
)

func TestSocketHandle_Candidate(t *testing.T) {
	tests := []struct {
		name   string
		handle SocketHandle
		want   uintptr
		wantOK bool
	}{
		{
			name:   "success: native handle is preferred",
			handle: SocketHandle{Native: pointer.ToInt64(0x1F4), Descriptor: pointer.ToInt32(3)},
			want:   0x1F4,
			wantOK: true,
		},
		{
			name:   "success: sentinel native falls back to descriptor",
			handle: SocketHandle{Native: pointer.ToInt64(-1), Descriptor: pointer.ToInt32(3)},
			want:   3,
			wantOK: true,
		},
		{
			name:   "success: zero native falls back to descriptor",
			handle: SocketHandle{Native: pointer.ToInt64(0), Descriptor: pointer.ToInt32(0)},
			want:   0,
			wantOK: true,
		},
		{
			name:   "success: absent native falls back to descriptor",
			handle: SocketHandle{Descriptor: pointer.ToInt32(2147483647)},
			want:   2147483647,
			wantOK: true,
		},
		{
			name:   "error: negative descriptor and no native",
			handle: SocketHandle{Descriptor: pointer.ToInt32(-1)},
			wantOK: false,
		},
		{
			name:   "error: sentinel native and negative descriptor",
			handle: SocketHandle{Native: pointer.ToInt64(-1), Descriptor: pointer.ToInt32(-1)},
			wantOK: false,
		},
		{
			name:   "error: empty handle",
			handle: SocketHandle{},
			wantOK: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.handle.Candidate()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSocketHandle_String(t *testing.T) {
	assert.Equal(t, "native=<nil> descriptor=<nil>", SocketHandle{}.String())
	assert.Equal(t, "native=500 descriptor=<nil>", NativeHandle(500).String())
	assert.Equal(t, "native=<nil> descriptor=7", DescriptorHandle(7).String())
	assert.Equal(t, "native=-1 descriptor=-1", SocketHandle{Native: pointer.ToInt64(-1), Descriptor: pointer.ToInt32(-1)}.String())
}
