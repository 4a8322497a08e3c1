package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reciclaqui/backend/internal/domain/valueobject"
)

func newPendingCollection(t *testing.T) *Collection {
	t.Helper()
	c, err := NewCollection("op-1", "rec-1", "METAL", 3, "scrap run")
	require.NoError(t, err)
	return c
}

func TestNewCollection(t *testing.T) {
	c := newPendingCollection(t)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "op-1", c.OperatorID)
	assert.Equal(t, "rec-1", c.UserID)
	assert.Equal(t, valueobject.MaterialMetal, c.Material)
	assert.Equal(t, 3, c.Quantity)
	assert.Equal(t, 36, c.Points) // 3 * 12
	assert.Equal(t, CollectionPending, c.Status)
	assert.Nil(t, c.RespondedAt)

	events := c.UncommittedEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(CollectionCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, c.ID, created.CollectionID)
	assert.Equal(t, 36, created.Points)
	assert.Equal(t, "CollectionCreated", created.EventName())
}

func TestNewCollection_Invalid(t *testing.T) {
	_, err := NewCollection("op-1", "rec-1", "WOOD", 3, "")
	assert.ErrorIs(t, err, valueobject.ErrInvalidMaterialType)

	_, err = NewCollection("op-1", "rec-1", "VIDRO", 0, "")
	assert.ErrorIs(t, err, valueobject.ErrInvalidQuantity)
}

func TestCollection_AcceptBy(t *testing.T) {
	c := newPendingCollection(t)
	c.ClearEvents()

	require.NoError(t, c.AcceptBy("rec-1"))
	assert.Equal(t, CollectionAccepted, c.Status)
	require.NotNil(t, c.RespondedAt)

	events := c.UncommittedEvents()
	require.Len(t, events, 1)
	accepted, ok := events[0].(CollectionAcceptedEvent)
	require.True(t, ok)
	assert.Equal(t, 36, accepted.Points)
	assert.Equal(t, "rec-1", accepted.UserID)
}

func TestCollection_RejectBy(t *testing.T) {
	c := newPendingCollection(t)
	c.ClearEvents()

	require.NoError(t, c.RejectBy("rec-1", "wrong weight"))
	assert.Equal(t, CollectionRejected, c.Status)

	events := c.UncommittedEvents()
	require.Len(t, events, 1)
	rejected, ok := events[0].(CollectionRejectedEvent)
	require.True(t, ok)
	assert.Equal(t, "wrong weight", rejected.Reason)
}

func TestCollection_RespondGuards(t *testing.T) {
	c := newPendingCollection(t)

	assert.ErrorIs(t, c.AcceptBy("someone-else"), ErrNotOwner)
	assert.ErrorIs(t, c.RejectBy("someone-else", ""), ErrNotOwner)
	assert.Equal(t, CollectionPending, c.Status)

	require.NoError(t, c.AcceptBy("rec-1"))
	assert.ErrorIs(t, c.AcceptBy("rec-1"), ErrAlreadyResponded)
	assert.ErrorIs(t, c.RejectBy("rec-1", ""), ErrAlreadyResponded)
	assert.Equal(t, CollectionAccepted, c.Status)
}

func TestCollection_EventBuffer(t *testing.T) {
	c := newPendingCollection(t)
	require.Len(t, c.UncommittedEvents(), 1)

	require.NoError(t, c.AcceptBy("rec-1"))
	assert.Len(t, c.UncommittedEvents(), 2)

	c.ClearEvents()
	assert.Empty(t, c.UncommittedEvents())
}

func TestReconstituteCollection(t *testing.T) {
	now := time.Now().UTC()
	c := ReconstituteCollection("col-1", "op-1", "rec-1", valueobject.MaterialPapel, 4, 20, "", CollectionAccepted, now, &now)

	assert.Equal(t, "col-1", c.ID)
	assert.Equal(t, 20, c.Points)
	assert.False(t, c.IsPending())
	assert.Empty(t, c.UncommittedEvents())
}
