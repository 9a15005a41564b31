//////////////////////////////////////////////////////////////////////////////
//
// Bounded FIFO of media buffers (the jitter buffer)
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package localsurface

import (
	"sync"
)

// Queue is a thread-safe FIFO of buffers with an optional limit on the number
// of queued items. A limit of zero means unbounded. Queue never blocks: Push
// either succeeds or reports ErrOverflow, Pop either returns a buffer or
// reports that the queue is empty.
type Queue struct {
	// Ring storage. Items live in items[head : head+count] modulo len(items).
	items []*Buffer
	head  int
	count int

	limit uint

	mutex sync.Mutex
}

// NewQueue returns an empty queue holding at most limit buffers.
func NewQueue(limit uint) *Queue {
	return &Queue{limit: limit}
}

// Push appends b to the tail of the queue. On success the queue takes over
// the caller's hold on b. If the queue is full, ErrOverflow is returned and
// the caller remains responsible for releasing b.
func (q *Queue) Push(b *Buffer) error {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.limit != 0 && uint(q.count) >= q.limit {
		return ErrOverflow
	}

	if q.count == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.count)%len(q.items)] = b
	q.count++
	return nil
}

// Pop removes and returns the buffer at the head of the queue. The second
// return value is false if the queue is empty.
func (q *Queue) Pop() (*Buffer, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.count == 0 {
		return nil, false
	}

	b := q.items[q.head]
	q.items[q.head] = nil
	q.head = (q.head + 1) % len(q.items)
	q.count--
	if q.count == 0 {
		q.head = 0
	}
	return b, true
}

// Level returns the number of queued buffers. The value is a snapshot and may
// be stale as soon as it is returned.
func (q *Queue) Level() uint {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return uint(q.count)
}

func (q *Queue) Limit() uint {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.limit
}

// SetLimit changes the maximum number of queued buffers. Buffers already
// queued above a lowered limit are kept; only new pushes are rejected.
func (q *Queue) SetLimit(limit uint) {
	q.mutex.Lock()
	q.limit = limit
	q.mutex.Unlock()
}

// Clear releases and drops every queued buffer.
func (q *Queue) Clear() {
	q.mutex.Lock()
	items, head, count := q.items, q.head, q.count
	q.items, q.head, q.count = nil, 0, 0
	q.mutex.Unlock()

	for i := 0; i < count; i++ {
		items[(head+i)%len(items)].Release()
	}
}

// Double the ring, unwrapping it so the head lands at index zero.
func (q *Queue) grow() {
	n := 2 * len(q.items)
	if n == 0 {
		n = 8
	}
	items := make([]*Buffer, n)
	for i := 0; i < q.count; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items = items
	q.head = 0
}
