package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/internal/domain/valueobject"
)

var (
	ErrNotOwner         = errors.New("only the collection owner can respond to it")
	ErrAlreadyResponded = errors.New("collection has already been responded to")
)

type CollectionStatus string

const (
	CollectionPending  CollectionStatus = "PENDING"
	CollectionAccepted CollectionStatus = "ACCEPTED"
	CollectionRejected CollectionStatus = "REJECTED"
)

// Collection is the aggregate root for one recycling declaration. An
// eco-operator declares it on behalf of a recycler; the recycler then
// accepts or rejects it exactly once. Points are computed when the
// collection is declared and never change afterwards.
type Collection struct {
	ID          string
	OperatorID  string
	UserID      string
	Material    valueobject.MaterialType
	Quantity    int
	Points      int
	Description string
	Status      CollectionStatus
	CreatedAt   time.Time
	RespondedAt *time.Time

	events event.Recorder
}

// NewCollection declares a new PENDING collection and buffers a
// CollectionCreatedEvent. Material and quantity are validated through
// their value objects.
func NewCollection(operatorID, userID, material string, quantity int, description string) (*Collection, error) {
	mt, err := valueobject.ParseMaterialType(material)
	if err != nil {
		return nil, err
	}
	qty, err := valueobject.NewQuantity(quantity)
	if err != nil {
		return nil, err
	}

	c := &Collection{
		ID:          uuid.NewString(),
		OperatorID:  operatorID,
		UserID:      userID,
		Material:    mt,
		Quantity:    qty.Value(),
		Points:      qty.Multiply(mt.PointsPerUnit()),
		Description: description,
		Status:      CollectionPending,
		CreatedAt:   time.Now().UTC(),
	}
	c.events.Record(CollectionCreatedEvent{
		Base:         event.NewBase(),
		CollectionID: c.ID,
		OperatorID:   c.OperatorID,
		UserID:       c.UserID,
		Material:     c.Material.String(),
		Quantity:     c.Quantity,
		Points:       c.Points,
	})
	return c, nil
}

// ReconstituteCollection rebuilds a collection from persisted state
// without emitting events.
func ReconstituteCollection(id, operatorID, userID string, material valueobject.MaterialType, quantity, points int, description string, status CollectionStatus, createdAt time.Time, respondedAt *time.Time) *Collection {
	return &Collection{
		ID:          id,
		OperatorID:  operatorID,
		UserID:      userID,
		Material:    material,
		Quantity:    quantity,
		Points:      points,
		Description: description,
		Status:      status,
		CreatedAt:   createdAt,
		RespondedAt: respondedAt,
	}
}

// AcceptBy transitions the collection PENDING→ACCEPTED. Only the owning
// recycler may respond, and only once.
func (c *Collection) AcceptBy(userID string) error {
	if c.UserID != userID {
		return ErrNotOwner
	}
	if c.Status != CollectionPending {
		return ErrAlreadyResponded
	}
	now := time.Now().UTC()
	c.Status = CollectionAccepted
	c.RespondedAt = &now
	c.events.Record(CollectionAcceptedEvent{
		Base:         event.NewBase(),
		CollectionID: c.ID,
		UserID:       c.UserID,
		Points:       c.Points,
	})
	return nil
}

// RejectBy transitions the collection PENDING→REJECTED with an optional
// reason. Same guards as AcceptBy.
func (c *Collection) RejectBy(userID, reason string) error {
	if c.UserID != userID {
		return ErrNotOwner
	}
	if c.Status != CollectionPending {
		return ErrAlreadyResponded
	}
	now := time.Now().UTC()
	c.Status = CollectionRejected
	c.RespondedAt = &now
	c.events.Record(CollectionRejectedEvent{
		Base:         event.NewBase(),
		CollectionID: c.ID,
		UserID:       c.UserID,
		Reason:       reason,
	})
	return nil
}

func (c *Collection) IsPending() bool { return c.Status == CollectionPending }

func (c *Collection) UncommittedEvents() []event.Event { return c.events.Uncommitted() }

func (c *Collection) ClearEvents() { c.events.Clear() }
