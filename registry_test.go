package localsurface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

func TestAcquireSameName(t *testing.T) {
	r := NewRegistry()

	a := r.Acquire("x")
	b := r.Acquire("x")
	assert.Same(t, a, b)
	assert.NotSame(t, a, r.Acquire("y"))

	r.Release(a)
	_, found := r.Lookup("x")
	assert.True(t, found, "one reference left")

	r.Release(b)
	_, found = r.Lookup("x")
	assert.False(t, found)

	assert.Panics(t, func() { r.Release(a) })
	assert.Equal(t, []string{"y"}, r.Names())
}

func TestAcquireAfterReleaseIsFresh(t *testing.T) {
	r := NewRegistry()

	a := r.Acquire("x")
	require.NoError(t, a.Attach(Producer))
	a.SetQueueLimit(7)
	r.Release(a)

	b := r.Acquire("x")
	assert.NotSame(t, a, b)
	assert.Equal(t, Undefined, b.State())
	assert.Zero(t, b.QueueLimit())
	r.Release(b)
}

func TestReleaseDrainsQueue(t *testing.T) {
	r := NewRegistry()
	s := r.Acquire("x")
	require.NoError(t, s.Attach(Producer))
	require.NoError(t, s.Attach(Consumer))

	released := 0
	for i := 0; i < 4; i++ {
		require.NoError(t, s.Push(NewBuffer(nil, func() { released++ })))
	}
	r.Release(s)
	assert.Equal(t, 4, released)
}

func TestConcurrentAcquireRelease(t *testing.T) {
	r := NewRegistry()

	var g errgroup.Group
	for i := 0; i < 64; i++ {
		g.Go(func() error {
			for j := 0; j < 200; j++ {
				s := r.Acquire("x")

				s.mutex.Lock()
				dead := s.released
				s.mutex.Unlock()
				if dead {
					return ErrReleased
				}

				s.Push(NewBuffer(nil, nil))
				s.Pop()
				r.Release(s)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Empty(t, r.Names())
}

func TestConcurrentEndpointsManyChannels(t *testing.T) {
	r := NewRegistry()
	channels := []string{"a", "b", "c", "d"}

	var g errgroup.Group
	for _, ch := range channels {
		config := Config{Channel: ch, JitterBuffer: 4, Registry: r}
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				sink := NewSink(config)
				if err := sink.Start(); err != nil {
					return err
				}
				sink.Render(NewBuffer(nil, nil))
				if err := sink.Stop(); err != nil {
					return err
				}
			}
			return nil
		})
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				src := NewSource(config)
				if err := src.Start(); err != nil {
					return err
				}
				if b, ok := src.Create(); ok {
					b.Release()
				}
				if err := src.Stop(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Empty(t, r.Names())
}

func TestRegistryStats(t *testing.T) {
	r := NewRegistry()
	b := r.Acquire("b")
	a := r.Acquire("a")
	r.Acquire("a")
	require.NoError(t, a.Attach(Producer))

	stats := r.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, "a", stats[0].Name)
	assert.Equal(t, 2, stats[0].Refs)
	assert.Equal(t, WaitForSink, stats[0].State)
	assert.Equal(t, "b", stats[1].Name)
	assert.Equal(t, 1, stats[1].Refs)

	r.Release(b)
	assert.Equal(t, []string{"a"}, r.Names())
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry()
	a := r.Acquire("a")
	b := r.Acquire("b")
	r.Release(b)
	r.Acquire("c")

	err := r.Close()
	assert.Len(t, multierr.Errors(err), 2)
	assert.Empty(t, r.Names())
	assert.Equal(t, ErrReleased, a.Attach(Producer))

	// Holders may still give back their reference.
	assert.NotPanics(t, func() { r.Release(a) })
	assert.NoError(t, NewRegistry().Close())
}
