package event

// Queue is a simple FIFO of typed events. Producers Push during a tick and
// the owner of the tick drains the queue in a fixed order.
type Queue[T any] struct {
	items []T
}

// Push adds an event.
func (q *Queue[T]) Push(evt T) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *Queue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len reports the number of pending events.
func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Flush drops all pending events.
func (q *Queue[T]) Flush() {
	if q == nil {
		return
	}
	q.items = nil
}
