//////////////////////////////////////////////////////////////////////////////
//
// Reference counted media buffer
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"sync/atomic"
	"time"
)

// TimeNone marks an unknown timestamp or duration.
const TimeNone time.Duration = -1

/*
A Buffer is a chunk of media data (one video frame, or a span of audio
frames) together with its presentation timestamp and duration.

Buffers are reference counted. Whoever holds a Buffer must Release() it when
done. Handing a Buffer to Surface.Push transfers the caller's hold to the
jitter buffer; Surface.Pop transfers it back out to the consumer:

	buf, ok := surface.Pop()
	if ok {
		defer buf.Release()
		process(buf.Bytes())
	}

Hold() is only needed when the same Buffer must stay alive in more than one
place at a time.
*/
type Buffer struct {
	data []byte

	// Presentation timestamp, or TimeNone.
	Timestamp time.Duration

	// Duration, or TimeNone.
	Duration time.Duration

	count   int32
	release func()
}

// NewBuffer wraps data in a Buffer with one hold and unknown timing. The
// release callback (may be nil) runs once the last hold is dropped.
func NewBuffer(data []byte, release func()) *Buffer {
	return &Buffer{
		data:      data,
		Timestamp: TimeNone,
		Duration:  TimeNone,
		count:     1,
		release:   release,
	}
}

// NewTimedBuffer is NewBuffer with a timestamp and duration.
func NewTimedBuffer(data []byte, pts, duration time.Duration) *Buffer {
	b := NewBuffer(data, nil)
	b.Timestamp = pts
	b.Duration = duration
	return b
}

// Bytes returns the underlying byte buffer.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Size returns the number of payload bytes.
func (b *Buffer) Size() int {
	return len(b.data)
}

func (b *Buffer) HasTimestamp() bool {
	return b.Timestamp != TimeNone
}

func (b *Buffer) HasDuration() bool {
	return b.Duration != TimeNone
}

// Increments the hold count.
func (b *Buffer) Hold() {
	atomic.AddInt32(&b.count, 1)
}

// Decrements the hold count. When the hold count reaches zero the release
// callback is invoked.
func (b *Buffer) Release() {
	if b == nil {
		return
	}
	n := atomic.AddInt32(&b.count, -1)
	if n < 0 {
		panic("localsurface: buffer released more times than held")
	}
	if n == 0 && b.release != nil {
		b.release()
	}
}
