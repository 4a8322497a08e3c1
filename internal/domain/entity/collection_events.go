package entity

import "github.com/reciclaqui/backend/internal/domain/event"

// CollectionCreatedEvent is emitted when an operator declares a
// collection for a recycler.
type CollectionCreatedEvent struct {
	event.Base
	CollectionID string
	OperatorID   string
	UserID       string
	Material     string
	Quantity     int
	Points       int
}

func (e CollectionCreatedEvent) EventName() string { return "CollectionCreated" }

// CollectionAcceptedEvent is emitted when the owning recycler accepts a
// pending collection.
type CollectionAcceptedEvent struct {
	event.Base
	CollectionID string
	UserID       string
	Points       int
}

func (e CollectionAcceptedEvent) EventName() string { return "CollectionAccepted" }

// CollectionRejectedEvent is emitted when the owning recycler rejects a
// pending collection.
type CollectionRejectedEvent struct {
	event.Base
	CollectionID string
	UserID       string
	Reason       string
}

func (e CollectionRejectedEvent) EventName() string { return "CollectionRejected" }
