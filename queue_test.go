package localsurface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuffers(n int) []*Buffer {
	bufs := make([]*Buffer, n)
	for i := range bufs {
		bufs[i] = NewBuffer([]byte{byte(i)}, nil)
	}
	return bufs
}

func TestQueueFIFOUnbounded(t *testing.T) {
	q := NewQueue(0)
	bufs := newTestBuffers(100)

	for _, b := range bufs {
		require.NoError(t, q.Push(b))
	}
	assert.EqualValues(t, 100, q.Level())

	for i := range bufs {
		b, ok := q.Pop()
		require.True(t, ok)
		assert.Same(t, bufs[i], b)
	}
	assert.Zero(t, q.Level())

	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestQueueOverflow(t *testing.T) {
	const k = 3
	q := NewQueue(k)
	bufs := newTestBuffers(k + 1)

	for _, b := range bufs[:k] {
		require.NoError(t, q.Push(b))
	}
	assert.Equal(t, ErrOverflow, q.Push(bufs[k]))
	assert.EqualValues(t, k, q.Level())

	b, ok := q.Pop()
	require.True(t, ok)
	assert.Same(t, bufs[0], b)
	require.NoError(t, q.Push(bufs[k]))
	assert.EqualValues(t, k, q.Level())
}

func TestQueueInterleavedWraps(t *testing.T) {
	q := NewQueue(0)
	next, want := 0, 0
	for round := 0; round < 50; round++ {
		for i := 0; i < 5; i++ {
			require.NoError(t, q.Push(NewBuffer([]byte{byte(next)}, nil)))
			next++
		}
		for i := 0; i < 3; i++ {
			b, ok := q.Pop()
			require.True(t, ok)
			assert.Equal(t, byte(want), b.Bytes()[0])
			want++
		}
	}
	assert.EqualValues(t, next-want, q.Level())
}

func TestQueueSetLimit(t *testing.T) {
	q := NewQueue(0)
	for _, b := range newTestBuffers(4) {
		require.NoError(t, q.Push(b))
	}

	q.SetLimit(2)
	assert.EqualValues(t, 2, q.Limit())
	assert.Equal(t, ErrOverflow, q.Push(NewBuffer(nil, nil)))
	assert.EqualValues(t, 4, q.Level())
}

func TestQueueClearReleases(t *testing.T) {
	released := 0
	q := NewQueue(0)
	for i := 0; i < 10; i++ {
		require.NoError(t, q.Push(NewBuffer(nil, func() { released++ })))
	}
	q.Pop()

	q.Clear()
	assert.Equal(t, 9, released)
	assert.Zero(t, q.Level())

	require.NoError(t, q.Push(NewBuffer(nil, nil)))
	assert.EqualValues(t, 1, q.Level())
}
