package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
)

type consumptionRepository struct {
	pool *pgxpool.Pool
}

func NewConsumptionRepository(pool *pgxpool.Pool) repository.ConsumptionRepository {
	return &consumptionRepository{pool: pool}
}

var _ repository.ConsumptionRepository = (*consumptionRepository)(nil)

func (r *consumptionRepository) Create(ctx context.Context, consumption *model.Consumption) error {
	if consumption.CreatedAt.IsZero() {
		consumption.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO consumptions (user_id, business_id, amount, points_earned, description, registered_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return r.pool.QueryRow(
		ctx,
		query,
		consumption.UserID,
		consumption.BusinessID,
		consumption.Amount,
		consumption.PointsEarned,
		consumption.Description,
		consumption.RegisteredByID,
		consumption.CreatedAt,
	).Scan(&consumption.ID)
}

func (r *consumptionRepository) ListByUser(ctx context.Context, userID int64, page repository.Pagination) ([]*model.ConsumptionDetail, error) {
	limit, offset := normalizePagination(page)

	query := `
		SELECT c.id, c.amount, c.points_earned, c.description, b.name, b.category, c.created_at
		FROM consumptions c
		JOIN businesses b ON b.id = c.business_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.ConsumptionDetail, 0, limit)
	for rows.Next() {
		item := &model.ConsumptionDetail{}
		err := rows.Scan(
			&item.ID,
			&item.Amount,
			&item.PointsEarned,
			&item.Description,
			&item.BusinessName,
			&item.BusinessCategory,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *consumptionRepository) ListByBusiness(ctx context.Context, businessID int64, page repository.Pagination) ([]*model.ConsumptionWithCustomer, error) {
	limit, offset := normalizePagination(page)

	query := `
		SELECT c.id, c.amount, c.points_earned, c.description, u.email, u.full_name, c.created_at
		FROM consumptions c
		JOIN users u ON u.id = c.user_id
		WHERE c.business_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*model.ConsumptionWithCustomer, 0, limit)
	for rows.Next() {
		item := &model.ConsumptionWithCustomer{}
		err := rows.Scan(
			&item.ID,
			&item.Amount,
			&item.PointsEarned,
			&item.Description,
			&item.UserEmail,
			&item.UserName,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *consumptionRepository) SummarizeByUser(ctx context.Context, userID int64) ([]model.PointsSummary, error) {
	query := `
		SELECT c.business_id,
			b.name,
			COALESCE(SUM(c.points_earned), 0),
			COALESCE(SUM(c.amount), 0),
			COUNT(c.id)
		FROM consumptions c
		JOIN businesses b ON b.id = c.business_id
		WHERE c.user_id = $1
		GROUP BY c.business_id, b.name
		ORDER BY c.business_id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]model.PointsSummary, 0, 8)
	for rows.Next() {
		var item model.PointsSummary
		err := rows.Scan(
			&item.BusinessID,
			&item.BusinessName,
			&item.TotalPoints,
			&item.TotalSpent,
			&item.VisitCount,
		)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

func (r *consumptionRepository) CustomersByBusiness(ctx context.Context, businessID int64) ([]model.CustomerSummary, error) {
	query := `
		SELECT u.id,
			u.email,
			u.full_name,
			COALESCE(SUM(c.points_earned), 0),
			COALESCE(SUM(c.amount), 0),
			COUNT(c.id)
		FROM consumptions c
		JOIN users u ON u.id = c.user_id
		WHERE c.business_id = $1
		GROUP BY u.id, u.email, u.full_name
		ORDER BY SUM(c.points_earned) DESC
	`

	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]model.CustomerSummary, 0, 8)
	for rows.Next() {
		var item model.CustomerSummary
		err := rows.Scan(
			&item.UserID,
			&item.Email,
			&item.FullName,
			&item.TotalPoints,
			&item.TotalSpent,
			&item.VisitCount,
		)
		if err != nil {
			return nil, err
		}
		customers = append(customers, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}
