// Package notify is a managed notice queue with explicit expiry on a logical
// clock, instead of wall-clock timers that delete toasts behind the UI's
// back. Tests drive the ticks directly.
package notify

import "sync"

// Tick is a point on the caller's logical clock.
type Tick int64

type Notice struct {
	ID        int64
	Text      string
	ExpiresAt Tick
}

type Queue struct {
	mu     sync.Mutex
	nextID int64
	items  []Notice
}

// Push enqueues a notice that stays active for ttl ticks from now.
// ttl <= 0 makes it a one-shot: active at `now` only.
func (q *Queue) Push(text string, now, ttl Tick) Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	n := Notice{ID: q.nextID, Text: text, ExpiresAt: now + ttl}
	q.items = append(q.items, n)
	return n
}

// Active returns notices not yet expired at `now`, in insertion order.
func (q *Queue) Active(now Tick) []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notice, 0, len(q.items))
	for _, n := range q.items {
		if n.ExpiresAt >= now {
			out = append(out, n)
		}
	}
	return out
}

// Expire drops everything that is no longer active at `now`.
func (q *Queue) Expire(now Tick) {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, n := range q.items {
		if n.ExpiresAt >= now {
			kept = append(kept, n)
		}
	}
	q.items = kept
}

// Drain returns the active notices and removes everything, active or not.
func (q *Queue) Drain(now Tick) []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Notice, 0, len(q.items))
	for _, n := range q.items {
		if n.ExpiresAt >= now {
			out = append(out, n)
		}
	}
	q.items = nil
	return out
}
