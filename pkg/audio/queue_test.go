package audio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQueue_PushAndDrain(t *testing.T) {
	q := NewQueue(4)
	q.PushSample(1, -1)
	q.PushSample(2, -2)

	require.Equal(t, 2, q.Len())
	samples := q.Drain()
	require.Equal(t, []int16{1, -1, 2, -2}, samples)
	require.Equal(t, 0, q.Len())
}

func TestQueue_DropsOldestWhenFull(t *testing.T) {
	q := NewQueue(2)
	q.PushSample(1, 1)
	q.PushSample(2, 2)
	q.PushSample(3, 3) // evicts (1, 1)

	samples := q.Drain()
	require.Equal(t, []int16{2, 2, 3, 3}, samples)
}

func TestQueue_DrainEmpty(t *testing.T) {
	q := NewQueue(4)
	require.Empty(t, q.Drain())
}
