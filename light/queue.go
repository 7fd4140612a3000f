package light

import "github.com/Workiva/go-datastructures/queue"

// requestQueue is the Supervisor's inbound channel: multi-producer,
// unbounded, FIFO. Handles never block on Push, matching the "back
// pressure is intentionally absent" guarantee from the concurrency model
// — a native Go channel would need a fixed capacity to offer the same
// blocking-send-never-happens property, so this wraps an unbounded
// backing queue instead.
type requestQueue struct {
	q *queue.Queue
}

func newRequestQueue() *requestQueue {
	return &requestQueue{q: queue.New(16)}
}

// push enqueues req. It never blocks. It returns errChannelClosed if the
// queue has been disposed (the Supervisor has exited).
func (rq *requestQueue) push(req request) error {
	if err := rq.q.Put(req); err != nil {
		return errChannelClosed()
	}
	return nil
}

// pop blocks until a request is available and returns it in FIFO order.
// It returns errChannelClosed once the queue has been disposed.
func (rq *requestQueue) pop() (request, error) {
	items, err := rq.q.Get(1)
	if err != nil {
		return nil, errChannelClosed()
	}
	return items[0].(request), nil
}

// dispose closes the queue; subsequent push/pop calls fail.
func (rq *requestQueue) dispose() {
	rq.q.Dispose()
}
