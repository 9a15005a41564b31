//////////////////////////////////////////////////////////////////////////////
//
// Pump: ticker-driven polling of a Source
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// A Pump drives a Source from a ticker, popping at most one buffer per tick
// and passing it to a handler. The handler owns the buffer it is given.
//
// Each call to Start() counts as a vote in favor of running, and Stop()
// removes a vote. The polling goroutine runs while the vote count is
// positive. Callers must match every Start() with a Stop().
type Pump struct {
	source   *Source
	interval time.Duration
	handle   func(*Buffer)
	clock    clock.Clock

	votes int

	// Closed when Stop() is requested, to trigger loop exit.
	quit chan struct{}

	// Closed when the loop actually terminates.
	terminated chan struct{}

	sync.Mutex
}

func NewPump(source *Source, interval time.Duration, handle func(*Buffer)) *Pump {
	if interval <= 0 {
		panic("localsurface.Pump: interval must be positive")
	}
	return &Pump{
		source:   source,
		interval: interval,
		handle:   handle,
		clock:    clock.New(),
	}
}

// SetClock replaces the wall clock. Must be called before Start.
func (p *Pump) SetClock(c clock.Clock) {
	p.Lock()
	p.clock = c
	p.Unlock()
}

func (p *Pump) Start() {
	p.Lock()
	defer p.Unlock()

	p.votes++
	if p.votes > 1 {
		return
	}

	p.quit = make(chan struct{})
	p.terminated = make(chan struct{})
	ticker := p.clock.Ticker(p.interval)

	go func(quit <-chan struct{}, terminated chan<- struct{}) {
		defer close(terminated)
		defer ticker.Stop()
		sourceLog.Debug("%s: pump started, interval %v", p.source.ID(), p.interval)
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				if buf, ok := p.source.Create(); ok {
					p.handle(buf)
				}
			}
		}
	}(p.quit, p.terminated)
}

// Stop removes a vote. When the last vote is removed, Stop waits for the
// polling goroutine to exit.
func (p *Pump) Stop() {
	p.Lock()
	defer p.Unlock()

	if p.votes <= 0 {
		panic("localsurface.Pump: stop without start")
	}

	p.votes--
	if p.votes == 0 {
		close(p.quit)
		<-p.terminated
		sourceLog.Debug("%s: pump stopped", p.source.ID())
		p.quit = nil
		p.terminated = nil
	}
}
