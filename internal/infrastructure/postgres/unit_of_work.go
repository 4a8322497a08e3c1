package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/reciclaqui/backend/internal/domain/event"
	"github.com/reciclaqui/backend/internal/domain/repository"
)

// TxBeginner opens transactions. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UnitOfWork couples persistence of one or more aggregates with
// commit-gated event publication. The sequence per invocation is fixed:
// mutate, persist, commit, publish; a rollback discards the buffered
// events without publishing any of them.
type UnitOfWork struct {
	db        TxBeginner
	publisher *event.Publisher
	logger    *logrus.Logger
}

func NewUnitOfWork(db TxBeginner, publisher *event.Publisher, logger *logrus.Logger) *UnitOfWork {
	return &UnitOfWork{db: db, publisher: publisher, logger: logger}
}

// Execute runs work inside a transaction. The transaction handle is
// placed in the context given to work so repositories join it. Events
// are published only after a successful commit, against the original
// (non-transactional) context, since the transaction is already closed
// by then.
func (u *UnitOfWork) Execute(ctx context.Context, work func(ctx context.Context) (repository.WorkResult, error)) (any, error) {
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	done := false
	defer func() {
		if !done {
			// Covers panics inside work; rollback after commit is a no-op error.
			_ = tx.Rollback(ctx)
		}
	}()

	res, err := work(withTx(ctx, tx))
	if err != nil {
		done = true
		if rbErr := tx.Rollback(ctx); rbErr != nil && u.logger != nil {
			u.logger.WithError(rbErr).Warn("transaction rollback failed")
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		done = true
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	done = true

	var events []event.Event
	for _, agg := range res.Aggregates {
		events = append(events, agg.UncommittedEvents()...)
	}
	if len(events) > 0 {
		u.publisher.Publish(ctx, events)
		for _, agg := range res.Aggregates {
			agg.ClearEvents()
		}
	}

	return res.Result, nil
}

var _ repository.UnitOfWork = (*UnitOfWork)(nil)
