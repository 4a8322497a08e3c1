package repository

import (
	"context"

	"github.com/reciclaqui/backend/internal/domain/entity"
)

// UserRepository defines the persistence operations for the User
// aggregate. Lookups return (nil, nil) when nothing matches; callers
// decide whether a missing user is an error. Implementations must honor
// a transaction carried in ctx by the unit of work.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	Save(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]*entity.User, error)
	FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error)
}
