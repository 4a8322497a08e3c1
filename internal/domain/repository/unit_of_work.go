package repository

import (
	"context"

	"github.com/reciclaqui/backend/internal/domain/event"
)

// WorkResult is what a unit-of-work body hands back: the value for the
// caller plus the aggregates it touched, whose buffered events are
// published after commit.
type WorkResult struct {
	Result     any
	Aggregates []event.Source
}

// UnitOfWork runs work inside one transaction. The transaction handle
// travels in the context passed to work; repositories resolve it from
// there. On success the transaction commits and only then are the
// buffered events of the returned aggregates published and cleared. On
// any error the transaction rolls back, the events are discarded, and
// the original error is returned.
type UnitOfWork interface {
	Execute(ctx context.Context, work func(ctx context.Context) (WorkResult, error)) (any, error)
}
