package buffered

import (
	"sync"
	"time"
)

// queue is the unbounded multi-producer ingestion queue feeding the
// collector. It is the only shared mutable state between callers and the
// background goroutine.
type queue struct {
	mu     sync.Mutex
	items  []*pendingCall
	closed bool
	// notify wakes the collector; capacity 1 is enough because the
	// collector always re-checks items after waking.
	notify chan struct{}
}

func newQueue() *queue {
	return &queue{notify: make(chan struct{}, 1)}
}

// push enqueues a call. Returns false if the queue has been closed.
func (q *queue) push(call *pendingCall) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, call)
	q.mu.Unlock()

	q.wake()
	return true
}

// poll returns the next call if one is immediately available.
func (q *queue) poll() (*pendingCall, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return nil, false
	}
	call := q.items[0]
	q.items = q.items[1:]
	return call, true
}

// next blocks until a call is available. Returns false once the queue is
// closed and fully drained.
func (q *queue) next() (*pendingCall, bool) {
	for {
		if call, ok := q.poll(); ok {
			return call, true
		}
		if q.isClosed() {
			return nil, false
		}
		<-q.notify
	}
}

// nextBefore behaves like next but additionally gives up when the timeout
// channel fires. The third return value reports the timeout case.
func (q *queue) nextBefore(timeout <-chan time.Time) (*pendingCall, bool, bool) {
	for {
		if call, ok := q.poll(); ok {
			return call, true, false
		}
		if q.isClosed() {
			return nil, false, false
		}
		select {
		case <-q.notify:
		case <-timeout:
			return nil, true, true
		}
	}
}

// close marks the queue closed and wakes the collector so it can drain the
// remainder and stop.
func (q *queue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.wake()
}

func (q *queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
