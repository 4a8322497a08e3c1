package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reciclaqui/backend/internal/domain/valueobject"
)

func newRecycler(t *testing.T) *User {
	t.Helper()
	u, err := NewUser("Joana", "joana@reciclaqui.dev", "password123", RoleRecycler, "")
	require.NoError(t, err)
	return u
}

func TestNewUser(t *testing.T) {
	u := newRecycler(t)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, RoleRecycler, u.Role)
	assert.Equal(t, 0, u.Balance.Value())
	assert.True(t, u.IsRecycler())
	assert.False(t, u.IsEcoOperator())
	assert.True(t, u.VerifyPassword("password123"))
	assert.False(t, u.VerifyPassword("nope"))

	events := u.UncommittedEvents()
	require.Len(t, events, 1)
	registered, ok := events[0].(UserRegisteredEvent)
	require.True(t, ok)
	assert.Equal(t, u.ID, registered.UserID)
	assert.Equal(t, "RECYCLER", registered.Role)
}

func TestNewUser_EcopointOnlyForOperators(t *testing.T) {
	op, err := NewUser("Coop", "coop@reciclaqui.dev", "password123", RoleEcoOperator, "ecoponto-1")
	require.NoError(t, err)
	assert.Equal(t, "ecoponto-1", op.EcopointID)

	rec, err := NewUser("Joana", "joana@reciclaqui.dev", "password123", RoleRecycler, "ecoponto-1")
	require.NoError(t, err)
	assert.Empty(t, rec.EcopointID)
}

func TestNewUser_Invalid(t *testing.T) {
	_, err := NewUser("X", "not-an-email", "password123", RoleRecycler, "")
	assert.ErrorIs(t, err, valueobject.ErrInvalidEmail)

	_, err = NewUser("X", "x@y.dev", "short", RoleRecycler, "")
	assert.ErrorIs(t, err, valueobject.ErrPasswordTooShort)

	_, err = NewUser("X", "x@y.dev", "password123", Role("ADMIN"), "")
	assert.ErrorIs(t, err, ErrRoleMismatch)
}

func TestUser_AddPointsFromCollection(t *testing.T) {
	u := newRecycler(t)
	u.ClearEvents()

	require.NoError(t, u.AddPointsFromCollection("col-1", 50))
	assert.Equal(t, 50, u.Balance.Value())

	events := u.UncommittedEvents()
	require.Len(t, events, 1)
	added, ok := events[0].(PointsAddedEvent)
	require.True(t, ok)
	assert.Equal(t, "col-1", added.CollectionID)
	assert.Equal(t, 50, added.Points)
	assert.Equal(t, 50, added.TotalBalance)

	assert.ErrorIs(t, u.AddPointsFromCollection("col-2", 0), ErrInvalidAmount)
	assert.ErrorIs(t, u.AddPointsFromCollection("col-2", -10), ErrInvalidAmount)
	assert.Equal(t, 50, u.Balance.Value())
}

func TestUser_RedeemPoints(t *testing.T) {
	u := newRecycler(t)
	require.NoError(t, u.AddPointsFromCollection("col-1", 50))
	u.ClearEvents()

	require.NoError(t, u.RedeemPoints(30, "bus ticket"))
	assert.Equal(t, 20, u.Balance.Value())

	events := u.UncommittedEvents()
	require.Len(t, events, 1)
	redeemed, ok := events[0].(PointsRedeemedEvent)
	require.True(t, ok)
	assert.Equal(t, 30, redeemed.Points)
	assert.Equal(t, "bus ticket", redeemed.Description)
	assert.Equal(t, 20, redeemed.RemainingBalance)
}

func TestUser_RedeemPoints_Insufficient(t *testing.T) {
	u := newRecycler(t)
	require.NoError(t, u.AddPointsFromCollection("col-1", 20))
	u.ClearEvents()

	err := u.RedeemPoints(30, "too much")
	assert.ErrorIs(t, err, valueobject.ErrInsufficientPoints)
	assert.Equal(t, 20, u.Balance.Value())
	assert.Empty(t, u.UncommittedEvents())

	assert.ErrorIs(t, u.RedeemPoints(0, ""), ErrInvalidAmount)
}

func TestUser_AssignToEcopoint(t *testing.T) {
	op, err := NewUser("Coop", "coop@reciclaqui.dev", "password123", RoleEcoOperator, "")
	require.NoError(t, err)
	require.NoError(t, op.AssignToEcopoint("ecoponto-2"))
	assert.Equal(t, "ecoponto-2", op.EcopointID)

	rec := newRecycler(t)
	assert.ErrorIs(t, rec.AssignToEcopoint("ecoponto-2"), ErrRoleMismatch)
}

func TestReconstituteUser(t *testing.T) {
	email, _ := valueobject.NewEmail("joana@reciclaqui.dev")
	balance, _ := valueobject.NewPoints(70)
	now := time.Now().UTC()

	u := ReconstituteUser("u-1", "Joana", email, valueobject.PasswordFromHash("hash"), RoleRecycler, "", balance, now, now)

	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, 70, u.Balance.Value())
	assert.Empty(t, u.UncommittedEvents())
}
