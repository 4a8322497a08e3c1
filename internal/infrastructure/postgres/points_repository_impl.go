package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/repository"
)

type PointsRepository struct {
	pool *pgxpool.Pool
}

func NewPointsRepository(pool *pgxpool.Pool) *PointsRepository {
	return &PointsRepository{pool: pool}
}

func (r *PointsRepository) db(ctx context.Context) Querier {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return r.pool
}

func (r *PointsRepository) Create(ctx context.Context, e *entity.PointsEntry) error {
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO user_points (id, user_id, collection_id, points, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, e.ID, e.UserID, e.CollectionID, e.Points, e.Description, e.CreatedAt)
	return err
}

func (r *PointsRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.PointsEntry, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT id, user_id, collection_id, points, description, created_at
		FROM user_points
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.PointsEntry
	for rows.Next() {
		e := &entity.PointsEntry{}
		if err := rows.Scan(&e.ID, &e.UserID, &e.CollectionID, &e.Points, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ repository.PointsRepository = (*PointsRepository)(nil)
