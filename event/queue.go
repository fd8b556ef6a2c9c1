package event

// Queue is a simple FIFO queue for consumers that poll once per frame.
type Queue struct {
	items []Event
}

// Push adds an event.
func (q *Queue) Push(evt Event) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len reports the number of pending events.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *Queue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Record attaches a queue to every event published on b.
func Record(b *Bus) *Queue {
	q := &Queue{}
	b.OnAny(q.Push)
	return q
}
