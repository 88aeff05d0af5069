package model

// EventKind is a lifecycle event emitted after an order mutation.
type EventKind string

const (
	EventCreated   EventKind = "Created"
	EventUpdated   EventKind = "Updated"
	EventCancelled EventKind = "Cancelled"
)

// EventName returns the live-channel event name, e.g. orderCreated.
func (k EventKind) EventName() string {
	return "order" + string(k)
}
