package repository

import (
	"context"

	"github.com/reciclaqui/backend/internal/domain/entity"
)

// PointsRepository stores the append-only points history written by the
// CollectionAccepted event handler.
type PointsRepository interface {
	Create(ctx context.Context, e *entity.PointsEntry) error
	FindByUserID(ctx context.Context, userID string) ([]*entity.PointsEntry, error)
}
