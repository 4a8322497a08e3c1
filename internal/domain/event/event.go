package event

import "time"

// Event is an immutable record of something that happened to an
// aggregate. Events are buffered on the aggregate that produced them and
// published by the unit of work after a successful commit.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// Base carries the fields shared by every event. Concrete events embed
// it and add their own payload.
type Base struct {
	At time.Time
}

func NewBase() Base {
	return Base{At: time.Now().UTC()}
}

func (b Base) OccurredAt() time.Time { return b.At }

// Recorder buffers uncommitted events for one aggregate instance.
// Aggregates hold a Recorder as a private field and expose
// UncommittedEvents/ClearEvents, so buffering is reused via composition
// rather than a shared base type.
type Recorder struct {
	events []Event
}

func (r *Recorder) Record(e Event) {
	r.events = append(r.events, e)
}

// Uncommitted returns a copy of the buffered events in the order they
// were recorded.
func (r *Recorder) Uncommitted() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *Recorder) Clear() {
	r.events = nil
}

func (r *Recorder) HasEvents() bool {
	return len(r.events) > 0
}

// Source is anything that buffers domain events. Both aggregates
// implement it; the unit of work drains Sources after commit.
type Source interface {
	UncommittedEvents() []Event
	ClearEvents()
}
