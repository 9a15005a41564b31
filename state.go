//////////////////////////////////////////////////////////////////////////////
//
// Surface connection states and endpoint roles
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import "strconv"

// State is the connection state of a Surface.
//
//	Undefined -> WaitForSink/WaitForSource -> Buffering -> Running
type State int

const (
	Undefined State = iota

	// A consumer is attached, waiting for a producer.
	WaitForSource

	// A producer is attached, waiting for a consumer.
	WaitForSink

	// Both ends are attached.
	Buffering

	// Reserved. Nothing transitions into Running or Underflow yet, but a
	// surface in either state behaves like Buffering.
	Running
	Underflow
)

func (s State) String() string {
	switch s {
	case Undefined:
		return "Undefined"
	case WaitForSource:
		return "WaitForSource"
	case WaitForSink:
		return "WaitForSink"
	case Buffering:
		return "Buffering"
	case Running:
		return "Running"
	case Underflow:
		return "Underflow"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// Connected reports whether both a producer and a consumer are attached.
func (s State) Connected() bool {
	return s == Buffering || s == Running || s == Underflow
}

// Accepting reports whether pushed buffers are queued in this state.
func (s State) Accepting() bool {
	return s == Buffering || s == Running
}

// Role identifies which end of a surface an endpoint attaches to.
type Role int

const (
	Producer Role = iota
	Consumer
)

func (r Role) String() string {
	switch r {
	case Producer:
		return "producer"
	case Consumer:
		return "consumer"
	default:
		return "Role(" + strconv.Itoa(int(r)) + ")"
	}
}

// attach returns the state after an endpoint with the given role connects.
func (s State) attach(role Role) (State, error) {
	switch s {
	case Undefined:
		if role == Producer {
			return WaitForSink, nil
		}
		return WaitForSource, nil
	case WaitForSink:
		if role == Consumer {
			return Buffering, nil
		}
	case WaitForSource:
		if role == Producer {
			return Buffering, nil
		}
	}
	return s, ErrAlreadyConnected
}

// detach returns the state after an endpoint with the given role disconnects.
// Detaching a role that is not attached leaves the state unchanged.
func (s State) detach(role Role) State {
	switch s {
	case WaitForSink:
		if role == Producer {
			return Undefined
		}
	case WaitForSource:
		if role == Consumer {
			return Undefined
		}
	case Buffering, Running, Underflow:
		if role == Producer {
			return WaitForSource
		}
		return WaitForSink
	}
	return s
}
