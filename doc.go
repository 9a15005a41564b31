//////////////////////////////////////////////////////////////////////////////
//
// Package documentation
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

/*
Package localsurface lets two independently running media pipelines in the
same process exchange timestamped buffers over a named channel.

A producer renders buffers into a Sink, a consumer pulls them out of a Source
configured with the same channel name. Either side may start first, stop, or
restart. Between them sits a Surface: a bounded jitter buffer plus a small
connection state machine, shared through a Registry.

	registry := localsurface.NewRegistry()
	config := localsurface.Config{Channel: "video1", JitterBuffer: 50, Registry: registry}

	sink := localsurface.NewSink(config)
	src := localsurface.NewSource(config)

Nothing blocks: Render drops a buffer when the jitter buffer is full or no
Source is attached, and Create reports when nothing is ready. The caller (or a
Pump) decides when to pull.
*/
package localsurface
