package spectate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRelay_PushFrameWithoutViewerIsNoop(t *testing.T) {
	r := NewRelay()
	r.PushFrame([]byte{1, 2, 3})
	require.Zero(t, len(r.send))
}

func TestRelay_DedupsIdenticalHashAfterManualHash(t *testing.T) {
	r := NewRelay()
	r.mu.Lock()
	r.conn = nil // no real connection in a unit test; exercise the hash path only
	r.mu.Unlock()

	frame := []byte{1, 2, 3, 4}
	r.PushFrame(frame)
	r.mu.Lock()
	first := r.lastHash
	r.mu.Unlock()
	require.NotZero(t, first)

	r.PushFrame(frame)
	r.mu.Lock()
	second := r.lastHash
	r.mu.Unlock()
	require.Equal(t, first, second)
}
