//////////////////////////////////////////////////////////////////////////////
//
// Surface: per-channel rendezvous between one producer and one consumer
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"sync"
	"sync/atomic"
)

// A Surface connects one producer and one consumer on a named channel. It is
// obtained from Registry.Acquire and must be handed back with
// Registry.Release. All methods are safe for concurrent use.
type Surface struct {
	name string

	// Guarded by the owning registry's mutex.
	refs int

	mutex    sync.Mutex
	state    State
	format   Format
	flowing  bool // producer buffers have been queued since it attached
	released bool
	queue    *Queue

	pushed    uint64
	popped    uint64
	overflows uint64
	discarded uint64
}

func newSurface(name string) *Surface {
	return &Surface{
		name:  name,
		queue: NewQueue(0),
	}
}

// Name returns the channel name this surface was acquired with.
func (s *Surface) Name() string {
	return s.name
}

func (s *Surface) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// SetQueueLimit sets the jitter buffer capacity. Zero means unbounded. The
// last caller wins.
func (s *Surface) SetQueueLimit(n uint) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.queue.SetLimit(n)
}

func (s *Surface) QueueLimit() uint {
	return s.queue.Limit()
}

// Attach connects an endpoint in the given role. If that role is already
// taken ErrAlreadyConnected is returned and nothing changes.
func (s *Surface) Attach(role Role) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.attach(role)
}

// AttachWithLimit is Attach followed by SetQueueLimit, in one critical
// section. A rejected attach leaves the limit untouched.
func (s *Surface) AttachWithLimit(role Role, n uint) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.attach(role); err != nil {
		return err
	}
	s.queue.SetLimit(n)
	return nil
}

func (s *Surface) attach(role Role) error {
	if s.released {
		return ErrReleased
	}

	next, err := s.state.attach(role)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Detach disconnects the endpoint in the given role. Buffers already queued
// stay queued for the next consumer.
func (s *Surface) Detach(role Role) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.state = s.state.detach(role)
	if role == Producer {
		s.flowing = false
	}
}

// Push queues b for the consumer. It returns ErrOverflow if the jitter
// buffer is full, in which case the caller still owns b. If no consumer is
// attached, b is released and dropped without error.
func (s *Surface) Push(b *Buffer) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.released || !s.state.Accepting() {
		atomic.AddUint64(&s.discarded, 1)
		b.Release()
		return nil
	}

	if err := s.queue.Push(b); err != nil {
		atomic.AddUint64(&s.overflows, 1)
		return err
	}
	s.flowing = true
	atomic.AddUint64(&s.pushed, 1)
	return nil
}

// Pop returns the oldest queued buffer, transferring ownership to the
// caller. The second result is false if nothing is queued.
func (s *Surface) Pop() (*Buffer, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	b, ok := s.queue.Pop()
	if ok {
		atomic.AddUint64(&s.popped, 1)
	}
	return b, ok
}

// Level returns the number of queued buffers.
func (s *Surface) Level() uint {
	return s.queue.Level()
}

// SetFormat records the producer's media format. Once the producer's
// buffers are flowing, a different format is rejected with ErrFormatLocked.
func (s *Surface) SetFormat(f Format) error {
	if err := f.Validate(); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.flowing && s.format != f {
		return ErrFormatLocked
	}
	s.format = f
	return nil
}

func (s *Surface) Format() Format {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.format
}

// Stats is a snapshot of a surface's counters.
type Stats struct {
	Name  string
	State State
	Refs  int
	Level uint
	Limit uint

	Pushed    uint64 // buffers queued
	Popped    uint64 // buffers handed to the consumer
	Overflows uint64 // pushes rejected because the queue was full
	Discarded uint64 // pushes dropped because no consumer was attached
}

func (s *Surface) stats() Stats {
	s.mutex.Lock()
	state := s.state
	s.mutex.Unlock()

	return Stats{
		Name:      s.name,
		State:     state,
		Level:     s.queue.Level(),
		Limit:     s.queue.Limit(),
		Pushed:    atomic.LoadUint64(&s.pushed),
		Popped:    atomic.LoadUint64(&s.popped),
		Overflows: atomic.LoadUint64(&s.overflows),
		Discarded: atomic.LoadUint64(&s.discarded),
	}
}

// Called by the registry, with its mutex held, once the last reference is
// gone.
func (s *Surface) teardown() {
	s.mutex.Lock()
	s.released = true
	s.state = Undefined
	s.flowing = false
	s.mutex.Unlock()

	s.queue.Clear()
}
