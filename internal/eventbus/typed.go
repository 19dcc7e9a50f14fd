package eventbus

import "sync"

// TypedBus is a type-safe publish/subscribe bus for events of type T.
//
// The bus retains the most recently published event. A new subscriber
// receives it first, so late readers observe the current value without
// polling.
type TypedBus[T any] struct {
	mu      sync.RWMutex
	subs    []chan T
	last    T
	hasLast bool
	closed  bool
	buffer  int
}

// NewTyped creates a new TypedBus whose subscriber channels hold up to 8
// pending events.
func NewTyped[T any]() *TypedBus[T] { return &TypedBus[T]{buffer: 8} }

// Publish retains e and sends it to all subscribers. Delivery is
// non-blocking: when a subscriber's buffer is full its oldest pending event
// is dropped, so the last value it reads is always the latest one.
func (b *TypedBus[T]) Publish(e T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.last = e
	b.hasLast = true
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
			// Only Publish sends, under the lock, so one receive frees a slot.
			select {
			case <-ch:
			default:
			}
			ch <- e
		}
	}
}

// Latest returns the last published event and whether one exists.
func (b *TypedBus[T]) Latest() (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last, b.hasLast
}

// Subscribe registers a subscriber and returns its channel. The retained
// event, if any, is queued on the channel before it is returned.
func (b *TypedBus[T]) Subscribe() <-chan T {
	ch := make(chan T, b.buffer)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		if b.hasLast {
			ch <- b.last
		}
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *TypedBus[T]) Unsubscribe(sub <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes the bus and all subscriber channels.
func (b *TypedBus[T]) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.mu.Unlock()
}
