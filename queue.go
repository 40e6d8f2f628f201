package compositor

import "sync"

// Queue is the ordered hand-off of commands from the content side to the
// compositing side. Producers enqueue from any goroutine; the compositor
// drains one command at a time at paint time, so commands enqueued while a
// drain is in progress are still applied within the same drain.
//
// The queue never coalesces or reorders: commands are applied exactly in
// enqueue order.
type Queue struct {
	mu    sync.Mutex
	items []Command
}

// NewQueue creates an empty command queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a command to the queue.
func (q *Queue) Enqueue(cmd Command) {
	if cmd == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()
}

// TryNext pops the oldest command, or returns false when the queue is
// empty. Draining pops one command at a time rather than snapshotting the
// whole queue, so a command enqueued mid-drain is picked up by the same
// drain loop.
func (q *Queue) TryNext() (Command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil, false
	}
	cmd := q.items[0]
	q.items[0] = nil // release the payload reference right away
	q.items = q.items[1:]
	if len(q.items) == 0 {
		q.items = nil
	}
	return cmd, true
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear drops all queued commands and returns how many were dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	q.items = nil
	return n
}
