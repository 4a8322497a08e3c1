package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reciclaqui/backend/internal/domain/entity"
	"github.com/reciclaqui/backend/internal/domain/repository"
	"github.com/reciclaqui/backend/internal/domain/valueobject"
)

type CollectionRepository struct {
	pool *pgxpool.Pool
}

func NewCollectionRepository(pool *pgxpool.Pool) *CollectionRepository {
	return &CollectionRepository{pool: pool}
}

func (r *CollectionRepository) db(ctx context.Context) Querier {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return r.pool
}

func (r *CollectionRepository) Create(ctx context.Context, c *entity.Collection) error {
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO collections (id, operator_id, user_id, material_type, quantity, points, description, status, created_at, responded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, c.ID, c.OperatorID, c.UserID, c.Material.String(), c.Quantity, c.Points, c.Description, string(c.Status), c.CreatedAt, c.RespondedAt)
	return err
}

func (r *CollectionRepository) Save(ctx context.Context, c *entity.Collection) error {
	res, err := r.db(ctx).Exec(ctx, `
		UPDATE collections
		SET status = $1, responded_at = $2, description = $3
		WHERE id = $4
	`, string(c.Status), c.RespondedAt, c.Description, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const collectionColumns = `id, operator_id, user_id, material_type, quantity, points, COALESCE(description, ''), status, created_at, responded_at`

func (r *CollectionRepository) FindByID(ctx context.Context, id string) (*entity.Collection, error) {
	row := r.db(ctx).QueryRow(ctx, `SELECT `+collectionColumns+` FROM collections WHERE id = $1`, id)
	c, err := scanCollection(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CollectionRepository) FindByUserID(ctx context.Context, userID string) ([]*entity.Collection, error) {
	return r.query(ctx, `SELECT `+collectionColumns+` FROM collections WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *CollectionRepository) FindPendingByUserID(ctx context.Context, userID string) ([]*entity.Collection, error) {
	return r.query(ctx, `SELECT `+collectionColumns+` FROM collections WHERE user_id = $1 AND status = 'PENDING' ORDER BY created_at DESC`, userID)
}

func (r *CollectionRepository) FindAll(ctx context.Context) ([]*entity.Collection, error) {
	return r.query(ctx, `SELECT `+collectionColumns+` FROM collections ORDER BY created_at DESC`)
}

// SummaryByMaterial aggregates accepted collections per material type.
func (r *CollectionRepository) SummaryByMaterial(ctx context.Context) ([]repository.MaterialSummary, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT material_type, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(points), 0)
		FROM collections
		WHERE status = 'ACCEPTED'
		GROUP BY material_type
		ORDER BY material_type
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.MaterialSummary
	for rows.Next() {
		var s repository.MaterialSummary
		if err := rows.Scan(&s.Material, &s.Collections, &s.TotalUnits, &s.TotalPoints); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CollectionRepository) query(ctx context.Context, sql string, args ...any) ([]*entity.Collection, error) {
	rows, err := r.db(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCollection(row pgx.Row) (*entity.Collection, error) {
	var (
		id, operatorID, userID, material, description, status string
		quantity, points                                      int
		createdAt                                             time.Time
		respondedAt                                           *time.Time
	)
	if err := row.Scan(&id, &operatorID, &userID, &material, &quantity, &points, &description, &status, &createdAt, &respondedAt); err != nil {
		return nil, err
	}
	mt, err := valueobject.ParseMaterialType(material)
	if err != nil {
		return nil, err
	}
	return entity.ReconstituteCollection(id, operatorID, userID, mt, quantity, points, description, entity.CollectionStatus(status), createdAt, respondedAt), nil
}

var _ repository.CollectionRepository = (*CollectionRepository)(nil)
