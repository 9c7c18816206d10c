package pubsub

import "context"

// Listener keeps one broker subscription open for a consumer loop.
type Listener[T any] struct {
	ch <-chan Event[T]
}

// NewListener subscribes to broker for the lifetime of ctx.
func NewListener[T any](ctx context.Context, broker *Broker[T]) *Listener[T] {
	return &Listener[T]{ch: broker.Subscribe(ctx)}
}

// Next blocks for the next event. It returns false when ctx is done or the
// subscription has been closed.
func (l *Listener[T]) Next(ctx context.Context) (Event[T], bool) {
	select {
	case <-ctx.Done():
		return Event[T]{}, false
	case ev, ok := <-l.ch:
		return ev, ok
	}
}

// C exposes the underlying channel for select loops.
func (l *Listener[T]) C() <-chan Event[T] {
	return l.ch
}
