//////////////////////////////////////////////////////////////////////////////
//
// Surface errors
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import "errors"

var (
	// ErrAlreadyConnected is returned by Attach when the requested role is
	// already occupied on the surface.
	ErrAlreadyConnected = errors.New("Surface already connected")

	// ErrOverflow is returned by Push when the jitter buffer is full. The
	// caller keeps ownership of the buffer and should discard it.
	ErrOverflow = errors.New("Jitter buffer overflow")

	// ErrFormatInvalid is returned when a declared format cannot be used.
	ErrFormatInvalid = errors.New("Invalid format")

	// ErrFormatLocked is returned when the producer tries to change the
	// format after its buffers started flowing.
	ErrFormatLocked = errors.New("Format cannot change mid-stream")

	// ErrReleased is returned when operating on a surface that has already
	// been torn down by its registry.
	ErrReleased = errors.New("Surface released")

	ErrStarted    = errors.New("Endpoint already started")
	ErrNotStarted = errors.New("Endpoint not started")
)
