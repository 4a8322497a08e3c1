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

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) db(ctx context.Context) Querier {
	if tx, ok := txFrom(ctx); ok {
		return tx
	}
	return r.pool
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, ecopoint_id, points_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9)
	`, u.ID, u.Name, u.Email.Value(), u.Password.Hash(), string(u.Role), u.EcopointID, u.Balance.Value(), u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := r.db(ctx).Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, ecopoint_id = NULLIF($4, ''), points_balance = $5, updated_at = $6
		WHERE id = $7
	`, u.Name, u.Email.Value(), u.Password.Hash(), u.EcopointID, u.Balance.Value(), u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

const userColumns = `id, name, email, password_hash, role, COALESCE(ecopoint_id, ''), points_balance, created_at, updated_at`

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.db(ctx).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db(ctx).QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var (
		id, name, email, hash, role, ecopointID string
		balance                                 int
		createdAt, updatedAt                    time.Time
	)
	if err := row.Scan(&id, &name, &email, &hash, &role, &ecopointID, &balance, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rebuildUser(id, name, email, hash, role, ecopointID, balance, createdAt, updatedAt)
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	var out []*entity.User
	for rows.Next() {
		var (
			id, name, email, hash, role, ecopointID string
			balance                                 int
			createdAt, updatedAt                    time.Time
		)
		if err := rows.Scan(&id, &name, &email, &hash, &role, &ecopointID, &balance, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		u, err := rebuildUser(id, name, email, hash, role, ecopointID, balance, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func rebuildUser(id, name, email, hash, role, ecopointID string, balance int, createdAt, updatedAt time.Time) (*entity.User, error) {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	pts, err := valueobject.NewPoints(balance)
	if err != nil {
		return nil, err
	}
	return entity.ReconstituteUser(id, name, addr, valueobject.PasswordFromHash(hash), entity.Role(role), ecopointID, pts, createdAt, updatedAt), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
