// Package reactive provides change notification primitives for the sidebar:
// signals with explicit disconnect tokens and computed expressions that
// re-evaluate when any of their tracked inputs notifies.
package reactive

// Notifier is anything that can announce "something changed" without a payload.
type Notifier interface {
	Notify(fn func()) Subscription
}

type handler[T any] struct {
	id uint64
	fn func(T)
}

// Signal delivers values to connected handlers in connection order.
// It is not safe for concurrent use; signals are emitted on the event loop.
type Signal[T any] struct {
	handlers []handler[T]
	nextID   uint64
}

// Connect registers fn and returns the token that disconnects it.
func (s *Signal[T]) Connect(fn func(T)) Subscription {
	s.nextID++
	id := s.nextID
	s.handlers = append(s.handlers, handler[T]{id: id, fn: fn})
	return Subscription{disconnect: func() { s.remove(id) }}
}

// Notify registers a payload-free handler so signals can be tracked as inputs.
func (s *Signal[T]) Notify(fn func()) Subscription {
	return s.Connect(func(T) { fn() })
}

// Emit calls every handler connected at the time of the call.
// Handlers disconnected during the emission are skipped.
func (s *Signal[T]) Emit(value T) {
	snapshot := make([]handler[T], len(s.handlers))
	copy(snapshot, s.handlers)
	for _, h := range snapshot {
		if !s.connected(h.id) {
			continue
		}
		h.fn(value)
	}
}

// Len returns the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.handlers)
}

func (s *Signal[T]) connected(id uint64) bool {
	for _, h := range s.handlers {
		if h.id == id {
			return true
		}
	}
	return false
}

func (s *Signal[T]) remove(id uint64) {
	for i, h := range s.handlers {
		if h.id == id {
			s.handlers = append(s.handlers[:i], s.handlers[i+1:]...)
			return
		}
	}
}

// Subscription is the disconnect token returned by Connect.
// The zero value is valid and disconnects nothing.
type Subscription struct {
	disconnect func()
}

// Disconnect detaches the handler. Calling it more than once is harmless.
func (s *Subscription) Disconnect() {
	if s == nil || s.disconnect == nil {
		return
	}
	s.disconnect()
	s.disconnect = nil
}

// Active reports whether the subscription is still connected.
func (s *Subscription) Active() bool {
	return s != nil && s.disconnect != nil
}
