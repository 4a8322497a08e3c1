package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/internal/domain/repository"
)

// fakeTx records commit/rollback; unused pgx.Tx methods panic via the
// embedded nil interface.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	beginErr error
}

func (b *fakeBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	if b.beginErr != nil {
		return nil, b.beginErr
	}
	return b.tx, nil
}

type recordingHandler struct {
	events []event.Event
}

func (h *recordingHandler) Handle(ctx context.Context, e event.Event) error {
	h.events = append(h.events, e)
	return nil
}

func newTestUoW(tx *fakeTx) (*UnitOfWork, *recordingHandler) {
	publisher := event.NewPublisher(logrus.New())
	handler := &recordingHandler{}
	publisher.Register("CollectionCreated", handler)
	publisher.Register("CollectionAccepted", handler)
	publisher.Register("PointsAdded", handler)
	return NewUnitOfWork(&fakeBeginner{tx: tx}, publisher, logrus.New()), handler
}

func TestUnitOfWork_PublishesAfterCommit(t *testing.T) {
	tx := &fakeTx{}
	uow, handler := newTestUoW(tx)

	collection, err := entity.NewCollection("op-1", "rec-1", "PLASTICO", 5, "")
	require.NoError(t, err)

	result, err := uow.Execute(context.Background(), func(ctx context.Context) (repository.WorkResult, error) {
		// events stay buffered while the transaction is open
		assert.Empty(t, handler.events)
		_, inTx := txFrom(ctx)
		assert.True(t, inTx)
		return repository.WorkResult{
			Result:     "done",
			Aggregates: []event.Source{collection},
		}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, "done", result)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)

	require.Len(t, handler.events, 1)
	assert.Equal(t, "CollectionCreated", handler.events[0].EventName())
	// buffers are drained once published
	assert.Empty(t, collection.UncommittedEvents())
}

func TestUnitOfWork_RollbackDiscardsEvents(t *testing.T) {
	tx := &fakeTx{}
	uow, handler := newTestUoW(tx)

	collection, err := entity.NewCollection("op-1", "rec-1", "PLASTICO", 5, "")
	require.NoError(t, err)

	errWork := errors.New("work failed")
	_, err = uow.Execute(context.Background(), func(ctx context.Context) (repository.WorkResult, error) {
		return repository.WorkResult{Aggregates: []event.Source{collection}}, errWork
	})
	assert.ErrorIs(t, err, errWork)

	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
	assert.Empty(t, handler.events)
	// the aggregate keeps its buffer; nothing was published or cleared
	assert.Len(t, collection.UncommittedEvents(), 1)
}

func TestUnitOfWork_CommitFailure(t *testing.T) {
	tx := &fakeTx{commitErr: errors.New("commit failed")}
	uow, handler := newTestUoW(tx)

	collection, err := entity.NewCollection("op-1", "rec-1", "VIDRO", 2, "")
	require.NoError(t, err)

	_, err = uow.Execute(context.Background(), func(ctx context.Context) (repository.WorkResult, error) {
		return repository.WorkResult{Aggregates: []event.Source{collection}}, nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commit transaction")
	assert.Empty(t, handler.events)
}

func TestUnitOfWork_BeginFailure(t *testing.T) {
	publisher := event.NewPublisher(logrus.New())
	uow := NewUnitOfWork(&fakeBeginner{beginErr: errors.New("pool exhausted")}, publisher, logrus.New())

	called := false
	_, err := uow.Execute(context.Background(), func(ctx context.Context) (repository.WorkResult, error) {
		called = true
		return repository.WorkResult{}, nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

func TestUnitOfWork_MultipleAggregates(t *testing.T) {
	tx := &fakeTx{}
	uow, handler := newTestUoW(tx)

	collection, err := entity.NewCollection("op-1", "rec-1", "PLASTICO", 5, "")
	require.NoError(t, err)
	user, err := entity.NewUser("Joana", "joana@reciclaqui.dev", "password123", entity.RoleRecycler, "")
	require.NoError(t, err)
	collection.ClearEvents()
	user.ClearEvents()

	_, err = uow.Execute(context.Background(), func(ctx context.Context) (repository.WorkResult, error) {
		require.NoError(t, collection.AcceptBy("rec-1"))
		require.NoError(t, user.AddPointsFromCollection(collection.ID, collection.Points))
		return repository.WorkResult{
			Aggregates: []event.Source{collection, user},
		}, nil
	})
	require.NoError(t, err)

	// aggregate order is preserved: collection events before user events
	require.Len(t, handler.events, 2)
	assert.Equal(t, "CollectionAccepted", handler.events[0].EventName())
	assert.Equal(t, "PointsAdded", handler.events[1].EventName())
	assert.Empty(t, collection.UncommittedEvents())
	assert.Empty(t, user.UncommittedEvents())
}
