package dropdown

import "sync"

// PointerEvent is a press anywhere in the host surface. A nil Target means
// the press hit nothing the host knows about.
type PointerEvent struct {
	Target *Element
}

// InteractionObserver is the host's global press feed. OnPointerDown returns
// a function that detaches the listener; calling it more than once is safe.
type InteractionObserver interface {
	OnPointerDown(fn func(PointerEvent)) (remove func())
}

// Bus is an in-process InteractionObserver. Front ends call Press for every
// pointer press they detect. The zero value is ready to use.
type Bus struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func(PointerEvent)
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]func(PointerEvent))}
}

// OnPointerDown registers fn until the returned function is called.
func (b *Bus) OnPointerDown(fn func(PointerEvent)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.listeners == nil {
		b.listeners = make(map[int]func(PointerEvent))
	}
	id := b.next
	b.next++
	b.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.listeners, id)
			b.mu.Unlock()
		})
	}
}

// Press delivers a pointer-down on target to every listener. Listeners run
// outside the bus lock and may detach themselves.
func (b *Bus) Press(target *Element) {
	b.mu.Lock()
	fns := make([]func(PointerEvent), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	ev := PointerEvent{Target: target}
	for _, fn := range fns {
		fn(ev)
	}
}

// Listeners returns the number of attached listeners.
func (b *Bus) Listeners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
