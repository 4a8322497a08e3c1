package repository

import (
	"context"

	"github.com/reciclaqui/backend/internal/domain/entity"
)

// CollectionRepository defines the persistence operations for the
// Collection aggregate. FindByID returns (nil, nil) when the collection
// does not exist.
type CollectionRepository interface {
	Create(ctx context.Context, c *entity.Collection) error
	Save(ctx context.Context, c *entity.Collection) error
	FindByID(ctx context.Context, id string) (*entity.Collection, error)
	FindByUserID(ctx context.Context, userID string) ([]*entity.Collection, error)
	FindPendingByUserID(ctx context.Context, userID string) ([]*entity.Collection, error)
	FindAll(ctx context.Context) ([]*entity.Collection, error)
	SummaryByMaterial(ctx context.Context) ([]MaterialSummary, error)
}

// MaterialSummary is one row of the per-material report: accepted
// collections grouped by material type.
type MaterialSummary struct {
	Material    string
	Collections int
	TotalUnits  int
	TotalPoints int
}
