package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
)

type userRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

var _ repository.UserRepository = (*userRepository)(nil)

const userColumns = `
	id,
	email,
	password_hash,
	role,
	full_name,
	phone,
	is_active,
	created_at,
	updated_at
`

func (r *userRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}

	query := `
		INSERT INTO users (email, password_hash, role, full_name, phone, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	return r.pool.QueryRow(
		ctx,
		query,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Phone,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users
		SET email = $2,
			password_hash = $3,
			role = $4,
			full_name = $5,
			phone = $6,
			is_active = $7,
			updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(
		ctx,
		query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.FullName,
		user.Phone,
		user.IsActive,
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return ensureAffected(tag)
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role model.UserRole) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, role)
	if err != nil {
		return err
	}
	return ensureAffected(tag)
}

func (r *userRepository) SetActive(ctx context.Context, id int64, active bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, active)
	if err != nil {
		return err
	}
	return ensureAffected(tag)
}

func (r *userRepository) List(ctx context.Context, filter repository.UserListFilter) ([]*model.User, error) {
	limit, offset := normalizePagination(filter.Pagination)

	args := make([]any, 0, 3)
	conditions := make([]string, 0, 1)
	if filter.Role != nil {
		args = append(args, *filter.Role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}

	var builder strings.Builder
	builder.WriteString("SELECT ")
	builder.WriteString(userColumns)
	builder.WriteString(" FROM users")
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}

	args = append(args, limit, offset)
	_, _ = fmt.Fprintf(&builder, " ORDER BY id LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0, limit)
	for rows.Next() {
		item, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func scanUser(src scanTarget) (*model.User, error) {
	user := &model.User{}
	err := src.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.FullName,
		&user.Phone,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return user, nil
}
