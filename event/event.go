// Package event carries the outbound gameplay signals produced by the
// progression engines. Engines publish after their state is updated, so a
// handler always observes state that already reflects the event.
package event

// Type identifies an event kind on the bus.
type Type string

// Event is a typed payload published on a Bus.
type Event interface {
	Type() Type
}

// Handler receives events published on a Bus.
type Handler func(Event)
