package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultBufferSize = 64

// Broker fans events out to every subscriber. Publish never blocks: an event
// is dropped for any subscriber whose buffer is full.
type Broker[T any] struct {
	mu         sync.RWMutex
	subs       map[chan Event[T]]struct{}
	done       chan struct{}
	bufferSize int
	dropped    atomic.Int64
}

var (
	_ Publisher[int]  = (*Broker[int])(nil)
	_ Subscriber[int] = (*Broker[int])(nil)
)

// NewBroker creates a new broker with the default buffer size (64).
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a new broker with a custom buffer size.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	if size < 1 {
		size = 1
	}
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: size,
	}
}

// Subscribe creates a subscription channel that is closed when ctx is
// cancelled or the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := make(chan Event[T], b.bufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[sub]; ok {
			delete(b.subs, sub)
			close(sub)
		}
	}()

	return sub
}

// Publish sends payload to all subscribers and returns how many received it.
func (b *Broker[T]) Publish(eventType EventType, payload T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed() {
		return 0
	}

	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	delivered := 0
	for sub := range b.subs {
		select {
		case sub <- event:
			delivered++
		default:
			b.dropped.Add(1)
		}
	}
	return delivered
}

// Close shuts down the broker and all subscriber channels. Safe to call twice.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		return
	}
	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (b *Broker[T]) Dropped() int64 {
	return b.dropped.Load()
}

func (b *Broker[T]) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
