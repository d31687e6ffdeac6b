package componentry

import "sync"

// Mailbox is an unbounded FIFO queue with a single consumer.
//
// Post never blocks, so two actors posting to each other cannot deadlock.
// The consumer waits on Ready and then takes everything queued with Drain.
type Mailbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	ready  chan struct{}
	closed bool
}

// NewMailbox returns an empty mailbox with room for capacity messages before it grows.
func NewMailbox[T any](capacity int) *Mailbox[T] {
	return &Mailbox[T]{
		queue: make([]T, 0, capacity),
		ready: make(chan struct{}, 1),
	}
}

// Post enqueues msg. It returns false once the mailbox is closed.
func (m *Mailbox[T]) Post(msg T) bool {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}
	m.queue = append(m.queue, msg)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
	return true
}

// Ready is signalled after a Post. A single signal may cover several messages.
func (m *Mailbox[T]) Ready() <-chan struct{} {
	return m.ready
}

// Drain removes and returns every queued message in arrival order.
func (m *Mailbox[T]) Drain() []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	msgs := m.queue
	m.queue = make([]T, 0, cap(msgs))
	return msgs
}

// Len returns the number of queued messages.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queue)
}

// Close rejects further posts. Messages already queued can still be drained.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}
