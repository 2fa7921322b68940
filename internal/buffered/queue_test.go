package buffered

import (
	"testing"
	"time"
)

func TestQueue_FIFO(t *testing.T) {
	q := newQueue()
	a := &pendingCall{id: 1}
	b := &pendingCall{id: 2}

	if !q.push(a) || !q.push(b) {
		t.Fatal("push rejected on an open queue")
	}

	got, ok := q.poll()
	if !ok || got != a {
		t.Fatalf("first poll = %v, want a", got)
	}
	got, ok = q.poll()
	if !ok || got != b {
		t.Fatalf("second poll = %v, want b", got)
	}
	if _, ok := q.poll(); ok {
		t.Fatal("poll on an empty queue returned an item")
	}
}

func TestQueue_PushAfterCloseRejected(t *testing.T) {
	q := newQueue()
	q.close()
	if q.push(&pendingCall{id: 1}) {
		t.Fatal("push accepted after close")
	}
}

func TestQueue_NextBlocksUntilPush(t *testing.T) {
	q := newQueue()
	call := &pendingCall{id: 7}

	go func() {
		time.Sleep(10 * time.Millisecond)
		q.push(call)
	}()

	got, ok := q.next()
	if !ok || got != call {
		t.Fatalf("next = %v, %v", got, ok)
	}
}

func TestQueue_NextDrainsAfterClose(t *testing.T) {
	q := newQueue()
	q.push(&pendingCall{id: 1})
	q.close()

	if _, ok := q.next(); !ok {
		t.Fatal("next dropped a queued item on close")
	}
	if _, ok := q.next(); ok {
		t.Fatal("next returned an item from a drained closed queue")
	}
}

func TestQueue_NextBeforeTimesOut(t *testing.T) {
	q := newQueue()
	timer := time.NewTimer(10 * time.Millisecond)
	defer timer.Stop()

	_, ok, timedOut := q.nextBefore(timer.C)
	if ok || !timedOut {
		t.Fatalf("nextBefore = ok=%v timedOut=%v, want timeout", ok, timedOut)
	}
}
