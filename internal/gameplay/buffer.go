package gameplay

import "sync"

// Events is the result of handling one packet: none, exactly one, or many
// events. The single-event case does not allocate a slice.
type Events struct {
	one  Event
	many []Event
}

func NoEvents() Events { return Events{} }

func OneEvent(e Event) Events { return Events{one: e} }

func ManyEvents(es ...Event) Events {
	switch len(es) {
	case 0:
		return Events{}
	case 1:
		return Events{one: es[0]}
	}
	return Events{many: es}
}

// Len returns how many events are held.
func (e Events) Len() int {
	if e.one != nil {
		return 1
	}
	return len(e.many)
}

// AppendTo appends the held events to dst in order.
func (e Events) AppendTo(dst []Event) []Event {
	if e.one != nil {
		return append(dst, e.one)
	}
	return append(dst, e.many...)
}

// EventQueue is the producer side of a phase: I/O goroutines push, the game
// loop drains wholesale once per tick. Pushes never block on the consumer.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
}

func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]Event, 0, 32)}
}

func (q *EventQueue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

func (q *EventQueue) PushEvents(es Events) {
	if es.Len() == 0 {
		return
	}
	q.mu.Lock()
	q.events = es.AppendTo(q.events)
	q.mu.Unlock()
}

// DrainInto moves every queued event into buf and leaves the queue empty.
func (q *EventQueue) DrainInto(buf *EventBuffer) {
	q.mu.Lock()
	buf.events = append(buf.events, q.events...)
	clear(q.events)
	q.events = q.events[:0]
	q.mu.Unlock()
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// EventBuffer is the caller-owned drain target handed to Provider.Events.
// Reusing one buffer across ticks only saves allocations.
type EventBuffer struct {
	events []Event
}

func NewEventBuffer() *EventBuffer {
	return &EventBuffer{events: make([]Event, 0, 64)}
}

func (b *EventBuffer) Push(e Event) {
	b.events = append(b.events, e)
}

func (b *EventBuffer) Len() int {
	return len(b.events)
}

// Drain returns the buffered events and empties the buffer. The returned
// slice shares storage with the buffer and is only valid until the next Push
// or Events call.
func (b *EventBuffer) Drain() []Event {
	out := b.events
	b.events = b.events[:0]
	return out
}
