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

type businessRepository struct {
	pool *pgxpool.Pool
}

func NewBusinessRepository(pool *pgxpool.Pool) repository.BusinessRepository {
	return &businessRepository{pool: pool}
}

var _ repository.BusinessRepository = (*businessRepository)(nil)

const businessColumns = `
	id,
	name,
	description,
	category,
	phone,
	email,
	website,
	instagram,
	address,
	latitude,
	longitude,
	schedule_monday,
	schedule_tuesday,
	schedule_wednesday,
	schedule_thursday,
	schedule_friday,
	schedule_saturday,
	schedule_sunday,
	points_per_10000,
	status,
	is_featured,
	owner_id,
	created_at,
	updated_at
`

func (r *businessRepository) FindByID(ctx context.Context, id int64) (*model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	business, err := scanBusiness(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return business, nil
}

func (r *businessRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*model.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE owner_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBusinesses(rows)
}

func (r *businessRepository) CreateWithOwnerPromotion(ctx context.Context, business *model.Business, promoteOwner bool) error {
	now := time.Now().UTC()
	if business.CreatedAt.IsZero() {
		business.CreatedAt = now
	}
	if business.UpdatedAt.IsZero() {
		business.UpdatedAt = business.CreatedAt
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if promoteOwner {
		query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 AND role = $3`
		if _, err := tx.Exec(ctx, query, business.OwnerID, model.UserRoleBusiness, model.UserRoleUser); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO businesses (
			name, description, category, phone, email, website, instagram,
			address, latitude, longitude,
			schedule_monday, schedule_tuesday, schedule_wednesday, schedule_thursday,
			schedule_friday, schedule_saturday, schedule_sunday,
			points_per_10000, status, is_featured, owner_id, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17,
			$18, $19, $20, $21, $22, $23
		)
		RETURNING id
	`

	err = tx.QueryRow(
		ctx,
		query,
		business.Name,
		business.Description,
		business.Category,
		business.Phone,
		business.Email,
		business.Website,
		business.Instagram,
		business.Address,
		business.Latitude,
		business.Longitude,
		business.ScheduleMonday,
		business.ScheduleTuesday,
		business.ScheduleWednesday,
		business.ScheduleThursday,
		business.ScheduleFriday,
		business.ScheduleSaturday,
		business.ScheduleSunday,
		business.PointsPer10000,
		business.Status,
		business.IsFeatured,
		business.OwnerID,
		business.CreatedAt,
		business.UpdatedAt,
	).Scan(&business.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *businessRepository) Update(ctx context.Context, business *model.Business) error {
	business.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE businesses
		SET name = $2,
			description = $3,
			category = $4,
			phone = $5,
			email = $6,
			website = $7,
			instagram = $8,
			address = $9,
			latitude = $10,
			longitude = $11,
			schedule_monday = $12,
			schedule_tuesday = $13,
			schedule_wednesday = $14,
			schedule_thursday = $15,
			schedule_friday = $16,
			schedule_saturday = $17,
			schedule_sunday = $18,
			points_per_10000 = $19,
			updated_at = $20
		WHERE id = $1
	`

	tag, err := r.pool.Exec(
		ctx,
		query,
		business.ID,
		business.Name,
		business.Description,
		business.Category,
		business.Phone,
		business.Email,
		business.Website,
		business.Instagram,
		business.Address,
		business.Latitude,
		business.Longitude,
		business.ScheduleMonday,
		business.ScheduleTuesday,
		business.ScheduleWednesday,
		business.ScheduleThursday,
		business.ScheduleFriday,
		business.ScheduleSaturday,
		business.ScheduleSunday,
		business.PointsPer10000,
		business.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return ensureAffected(tag)
}

func (r *businessRepository) UpdateStatus(ctx context.Context, id int64, status model.BusinessStatus) error {
	query := `UPDATE businesses SET status = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return err
	}
	return ensureAffected(tag)
}

func (r *businessRepository) ToggleFeatured(ctx context.Context, id int64) (*model.Business, error) {
	query := `
		UPDATE businesses
		SET is_featured = NOT is_featured,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + businessColumns

	business, err := scanBusiness(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return business, nil
}

func (r *businessRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return ensureAffected(tag)
}

func (r *businessRepository) List(ctx context.Context, filter repository.BusinessListFilter) ([]*model.Business, error) {
	limit, offset := normalizePagination(filter.Pagination)

	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	if filter.OnlyApproved {
		args = append(args, model.BusinessStatusApproved)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	} else if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}

	var builder strings.Builder
	builder.WriteString("SELECT ")
	builder.WriteString(businessColumns)
	builder.WriteString(" FROM businesses")
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

	return collectBusinesses(rows)
}

func (r *businessRepository) ListFeatured(ctx context.Context, limit int32) ([]*model.Business, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT ` + businessColumns + `
		FROM businesses
		WHERE is_featured AND status = $1
		ORDER BY id
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, model.BusinessStatusApproved, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectBusinesses(rows)
}

func collectBusinesses(rows pgx.Rows) ([]*model.Business, error) {
	businesses := make([]*model.Business, 0, 16)
	for rows.Next() {
		item, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		businesses = append(businesses, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return businesses, nil
}

func scanBusiness(src scanTarget) (*model.Business, error) {
	business := &model.Business{}
	err := src.Scan(
		&business.ID,
		&business.Name,
		&business.Description,
		&business.Category,
		&business.Phone,
		&business.Email,
		&business.Website,
		&business.Instagram,
		&business.Address,
		&business.Latitude,
		&business.Longitude,
		&business.ScheduleMonday,
		&business.ScheduleTuesday,
		&business.ScheduleWednesday,
		&business.ScheduleThursday,
		&business.ScheduleFriday,
		&business.ScheduleSaturday,
		&business.ScheduleSunday,
		&business.PointsPer10000,
		&business.Status,
		&business.IsFeatured,
		&business.OwnerID,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return business, nil
}
