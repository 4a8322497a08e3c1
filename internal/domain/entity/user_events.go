package entity

import "github.com/reciclaqui/backend/internal/domain/event"

// UserRegisteredEvent is emitted once when an account is created.
type UserRegisteredEvent struct {
	event.Base
	UserID string
	Email  string
	Role   string
}

func (e UserRegisteredEvent) EventName() string { return "UserRegistered" }

// PointsAddedEvent is emitted when a user is credited points from an
// accepted collection.
type PointsAddedEvent struct {
	event.Base
	UserID       string
	CollectionID string
	Points       int
	TotalBalance int
}

func (e PointsAddedEvent) EventName() string { return "PointsAdded" }

// PointsRedeemedEvent is emitted when a user spends points.
type PointsRedeemedEvent struct {
	event.Base
	UserID           string
	Points           int
	Description      string
	RemainingBalance int
}

func (e PointsRedeemedEvent) EventName() string { return "PointsRedeemed" }
