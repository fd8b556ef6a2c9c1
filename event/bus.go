package event

// Bus is a synchronous, single-threaded publish/subscribe dispatcher.
// Handlers run in registration order, type-specific handlers before
// catch-all handlers.
type Bus struct {
	handlers map[Type][]Handler
	any      []Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Type][]Handler)}
}

// On registers fn for events of type t.
func (b *Bus) On(t Type, fn Handler) {
	if b == nil || fn == nil {
		return
	}
	if b.handlers == nil {
		b.handlers = make(map[Type][]Handler)
	}
	b.handlers[t] = append(b.handlers[t], fn)
}

// OnAny registers fn for every event.
func (b *Bus) OnAny(fn Handler) {
	if b == nil || fn == nil {
		return
	}
	b.any = append(b.any, fn)
}

// Publish delivers evt to its handlers before returning.
func (b *Bus) Publish(evt Event) {
	if b == nil || evt == nil {
		return
	}
	for _, fn := range b.handlers[evt.Type()] {
		fn(evt)
	}
	for _, fn := range b.any {
		fn(evt)
	}
}

// HandlerCount returns the number of handlers registered for t.
func (b *Bus) HandlerCount(t Type) int {
	if b == nil {
		return 0
	}
	return len(b.handlers[t])
}

// Subscribe registers a handler for the concrete event type T. T must
// report its Type from its zero value.
func Subscribe[T Event](b *Bus, fn func(T)) {
	if b == nil || fn == nil {
		return
	}
	var zero T
	b.On(zero.Type(), func(evt Event) {
		if v, ok := evt.(T); ok {
			fn(v)
		}
	})
}
