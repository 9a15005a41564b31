//////////////////////////////////////////////////////////////////////////////
//
// Source: consumer endpoint. Pulls the buffers rendered into the Sink
// attached to the same channel.
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Source is the consumer end of a channel. It never blocks waiting for data;
// whoever drives it decides when to call Create (see Pump).
type Source struct {
	config Config
	id     uuid.UUID

	mutex   sync.Mutex
	surface *Surface
}

func NewSource(config Config) *Source {
	return &Source{
		config: config,
		id:     uuid.New(),
	}
}

// ID identifies this source in log messages.
func (src *Source) ID() uuid.UUID {
	return src.id
}

func (src *Source) Channel() string {
	return src.config.Channel
}

// Start connects the source to its channel. It fails with
// ErrAlreadyConnected if another source is already consuming the channel.
func (src *Source) Start() error {
	src.mutex.Lock()
	defer src.mutex.Unlock()

	if src.surface != nil {
		return ErrStarted
	}

	registry := src.config.registry()
	s := registry.Acquire(src.config.Channel)
	sourceLog.Debug("%s: selected surface %p for channel %q", src.id, s, s.Name())

	if err := s.AttachWithLimit(Consumer, src.config.JitterBuffer); err != nil {
		sourceLog.Error("%s: failed to connect to channel %q: %v", src.id, s.Name(), err)
		registry.Release(s)
		return errors.Wrapf(err, "source on channel %q", src.config.Channel)
	}

	sourceLog.Debug("%s: connected to channel %q, state %v", src.id, s.Name(), s.State())
	src.surface = s
	return nil
}

// Create pops the next buffer. The caller owns the returned buffer and must
// Release it. The second result is false if no buffer is ready.
func (src *Source) Create() (*Buffer, bool) {
	src.mutex.Lock()
	defer src.mutex.Unlock()

	if src.surface == nil {
		return nil, false
	}
	return src.surface.Pop()
}

// Format returns the format published by the sink, if any.
func (src *Source) Format() Format {
	src.mutex.Lock()
	defer src.mutex.Unlock()

	if src.surface == nil {
		return Format{}
	}
	return src.surface.Format()
}

// Level returns the number of buffers waiting in the jitter buffer.
func (src *Source) Level() uint {
	src.mutex.Lock()
	defer src.mutex.Unlock()

	if src.surface == nil {
		return 0
	}
	return src.surface.Level()
}

// State returns the state of the channel, or Undefined if not started.
func (src *Source) State() State {
	src.mutex.Lock()
	defer src.mutex.Unlock()

	if src.surface == nil {
		return Undefined
	}
	return src.surface.State()
}

func (src *Source) Stop() error {
	src.mutex.Lock()
	defer src.mutex.Unlock()

	if src.surface == nil {
		return ErrNotStarted
	}

	s := src.surface
	s.Detach(Consumer)
	sourceLog.Debug("%s: disconnected from channel %q, state now %v", src.id, s.Name(), s.State())

	src.config.registry().Release(s)
	src.surface = nil
	return nil
}
