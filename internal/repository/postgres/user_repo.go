package postgres

import (
	"context"
	"errors"

	"intervyo-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// textArray binds a text[] parameter, storing nil as an empty array
func textArray(values []string) any {
	if values == nil {
		values = []string{}
	}
	return pq.Array(values)
}

// scanner is satisfied by both pgx.Row and pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT id, email, first_name, last_name, role, xp, created_at, updated_at FROM users WHERE id = $1`
	var user domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Role, &user.XP, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) (map[string]domain.User, error) {
	users := make(map[string]domain.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query := `SELECT id, email, first_name, last_name, role, xp, created_at, updated_at
              FROM users WHERE id = ANY($1::text[])`
	rows, err := r.db.Query(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.XP, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users[u.ID] = u
	}
	return users, rows.Err()
}

func (r *userRepo) IncrementXP(ctx context.Context, id string, amount int) error {
	query := `UPDATE users SET xp = xp + $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
