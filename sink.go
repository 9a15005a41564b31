//////////////////////////////////////////////////////////////////////////////
//
// Sink: producer endpoint. Buffers rendered into a Sink come out of the
// Source attached to the same channel.
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/lanikai/localsurface/internal/logging"
)

// Sink is the producer end of a channel.
//
//	sink := NewSink(DefaultConfig())
//	if err := sink.Start(); err != nil { ... }
//	defer sink.Stop()
//	sink.SetCaps("video/x-raw,width=640,height=480,framerate=30/1")
//	for buf := range frames {
//		sink.Render(buf)
//	}
type Sink struct {
	config Config
	id     uuid.UUID

	mutex   sync.Mutex
	surface *Surface
	format  Format
}

func NewSink(config Config) *Sink {
	return &Sink{
		config: config,
		id:     uuid.New(),
	}
}

// ID identifies this sink in log messages.
func (sink *Sink) ID() uuid.UUID {
	return sink.id
}

func (sink *Sink) Channel() string {
	return sink.config.Channel
}

// Start connects the sink to its channel. It fails with ErrAlreadyConnected
// if another sink is already producing on the channel.
func (sink *Sink) Start() error {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()

	if sink.surface != nil {
		return ErrStarted
	}

	registry := sink.config.registry()
	s := registry.Acquire(sink.config.Channel)
	sinkLog.Debug("%s: selected surface %p for channel %q", sink.id, s, s.Name())

	if err := s.AttachWithLimit(Producer, sink.config.JitterBuffer); err != nil {
		sinkLog.Error("%s: failed to connect to channel %q: %v", sink.id, s.Name(), err)
		registry.Release(s)
		return errors.Wrapf(err, "sink on channel %q", sink.config.Channel)
	}

	sinkLog.Debug("%s: connected to channel %q, state %v, jitter buffer %d",
		sink.id, s.Name(), s.State(), sink.config.JitterBuffer)
	sink.surface = s
	return nil
}

// SetCaps parses a caps string and publishes the resulting format.
func (sink *Sink) SetCaps(caps string) error {
	f, err := ParseCaps(caps)
	if err != nil {
		sinkLog.Error("%s: %v", sink.id, err)
		return err
	}
	sinkLog.Debug("%s: detected incoming caps as %v", sink.id, f.Type)
	return sink.SetFormat(f)
}

// SetFormat publishes the media format to the consumer.
func (sink *Sink) SetFormat(f Format) error {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()

	if sink.surface == nil {
		return ErrNotStarted
	}
	if err := sink.surface.SetFormat(f); err != nil {
		return errors.Wrapf(err, "set format %v on channel %q", f, sink.config.Channel)
	}
	sink.format = f
	return nil
}

// Render hands b to the consumer. The sink takes ownership of b. Buffers are
// dropped, not reported, when no consumer is attached or the jitter buffer is
// full.
func (sink *Sink) Render(b *Buffer) error {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()

	s := sink.surface
	if s == nil {
		b.Release()
		return ErrNotStarted
	}

	if !s.State().Accepting() {
		sinkLog.Info("%s: channel %q has no source, throwing away buffer", sink.id, s.Name())
	} else if sinkLog.Enabled(logging.Debug) {
		sinkLog.Debug("%s: pushing buffer, jitter buffer at %d of %d",
			sink.id, s.Level(), s.QueueLimit())
	}

	if err := s.Push(b); err != nil {
		sinkLog.Debug("%s: %v, dropping buffer", sink.id, err)
		b.Release()
	}
	return nil
}

// Times returns the start and end time of b, estimating the end from the
// negotiated format when b carries no duration.
func (sink *Sink) Times(b *Buffer) (start, end time.Duration) {
	sink.mutex.Lock()
	f := sink.format
	sink.mutex.Unlock()

	if !b.HasTimestamp() {
		return TimeNone, TimeNone
	}
	if !b.HasDuration() {
		sinkLog.Warn("%s: estimating buffer duration from %v format", sink.id, f.Type)
	}
	return b.Timestamp, f.EstimateEnd(b)
}

// Stop disconnects the sink. Buffers already queued remain available to the
// source until it, too, disconnects.
func (sink *Sink) Stop() error {
	sink.mutex.Lock()
	defer sink.mutex.Unlock()

	if sink.surface == nil {
		return ErrNotStarted
	}

	s := sink.surface
	s.Detach(Producer)
	sinkLog.Debug("%s: disconnected from channel %q, state now %v", sink.id, s.Name(), s.State())

	sink.config.registry().Release(s)
	sink.surface = nil
	sink.format = Format{}
	return nil
}
