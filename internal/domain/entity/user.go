package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/internal/domain/valueobject"
)

var (
	ErrInvalidAmount = errors.New("points amount must be greater than zero")
	ErrRoleMismatch  = errors.New("operation not allowed for this role")
)

type Role string

const (
	RoleRecycler    Role = "RECYCLER"
	RoleEcoOperator Role = "ECOOPERATOR"
)

func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleRecycler, RoleEcoOperator:
		return Role(value), nil
	}
	return "", ErrRoleMismatch
}

// User is the aggregate root for one account. The role is fixed at
// registration; the points balance only moves through
// AddPointsFromCollection and RedeemPoints, each of which buffers a
// domain event.
type User struct {
	ID         string
	Name       string
	Email      valueobject.Email
	Password   valueobject.Password
	Role       Role
	EcopointID string
	Balance    valueobject.Points
	CreatedAt  time.Time
	UpdatedAt  time.Time

	events event.Recorder
}

// NewUser registers a new account with a zero balance and buffers a
// UserRegisteredEvent. The ecopoint is only kept for eco-operators.
func NewUser(name, email, plainPassword string, role Role, ecopointID string) (*User, error) {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	pwd, err := valueobject.NewPassword(plainPassword)
	if err != nil {
		return nil, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	if role != RoleEcoOperator {
		ecopointID = ""
	}

	now := time.Now().UTC()
	u := &User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      addr,
		Password:   pwd,
		Role:       role,
		EcopointID: ecopointID,
		Balance:    valueobject.ZeroPoints(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	u.events.Record(UserRegisteredEvent{
		Base:   event.NewBase(),
		UserID: u.ID,
		Email:  addr.Value(),
		Role:   string(role),
	})
	return u, nil
}

// ReconstituteUser rebuilds a user from persisted state without
// emitting events.
func ReconstituteUser(id, name string, email valueobject.Email, password valueobject.Password, role Role, ecopointID string, balance valueobject.Points, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:         id,
		Name:       name,
		Email:      email,
		Password:   password,
		Role:       role,
		EcopointID: ecopointID,
		Balance:    balance,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// AddPointsFromCollection credits points earned from an accepted
// collection and buffers a PointsAddedEvent.
func (u *User) AddPointsFromCollection(collectionID string, points int) error {
	if points <= 0 {
		return ErrInvalidAmount
	}
	credit, err := valueobject.NewPoints(points)
	if err != nil {
		return err
	}
	u.Balance = u.Balance.Add(credit)
	u.events.Record(PointsAddedEvent{
		Base:         event.NewBase(),
		UserID:       u.ID,
		CollectionID: collectionID,
		Points:       points,
		TotalBalance: u.Balance.Value(),
	})
	return nil
}

// RedeemPoints debits points from the balance and buffers a
// PointsRedeemedEvent. Fails with ErrInsufficientPoints when the balance
// does not cover the debit; the balance is left untouched on any error.
func (u *User) RedeemPoints(points int, description string) error {
	if points <= 0 {
		return ErrInvalidAmount
	}
	debit, err := valueobject.NewPoints(points)
	if err != nil {
		return err
	}
	remaining, err := u.Balance.Subtract(debit)
	if err != nil {
		return err
	}
	u.Balance = remaining
	u.events.Record(PointsRedeemedEvent{
		Base:             event.NewBase(),
		UserID:           u.ID,
		Points:           points,
		Description:      description,
		RemainingBalance: u.Balance.Value(),
	})
	return nil
}

// AssignToEcopoint links an eco-operator to an ecopoint. Recyclers
// cannot be assigned.
func (u *User) AssignToEcopoint(ecopointID string) error {
	if u.Role != RoleEcoOperator {
		return ErrRoleMismatch
	}
	u.EcopointID = ecopointID
	return nil
}

func (u *User) VerifyPassword(plain string) bool { return u.Password.Compare(plain) }

func (u *User) IsRecycler() bool { return u.Role == RoleRecycler }

func (u *User) IsEcoOperator() bool { return u.Role == RoleEcoOperator }

func (u *User) UncommittedEvents() []event.Event { return u.events.Uncommitted() }

func (u *User) ClearEvents() { u.events.Clear() }
