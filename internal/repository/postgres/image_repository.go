package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Habid-Marun/getsemani-vivo/internal/model"
	"github.com/Habid-Marun/getsemani-vivo/internal/repository"
)

type imageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) repository.ImageRepository {
	return &imageRepository{pool: pool}
}

var _ repository.ImageRepository = (*imageRepository)(nil)

const imageColumns = `
	id,
	business_id,
	filename,
	url,
	is_primary,
	position,
	created_at
`

func (r *imageRepository) FindByID(ctx context.Context, id int64) (*model.BusinessImage, error) {
	query := `SELECT ` + imageColumns + ` FROM business_images WHERE id = $1`
	image, err := scanImage(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return image, nil
}

func (r *imageRepository) ListByBusiness(ctx context.Context, businessID int64) ([]*model.BusinessImage, error) {
	query := `SELECT ` + imageColumns + ` FROM business_images WHERE business_id = $1 ORDER BY position`
	rows, err := r.pool.Query(ctx, query, businessID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]*model.BusinessImage, 0, 8)
	for rows.Next() {
		item, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return images, nil
}

func (r *imageRepository) Create(ctx context.Context, image *model.BusinessImage) error {
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if image.IsPrimary {
		clear := `UPDATE business_images SET is_primary = FALSE WHERE business_id = $1 AND is_primary`
		if _, err := tx.Exec(ctx, clear, image.BusinessID); err != nil {
			return err
		}
	}

	// Position is max+1 among siblings; deleted rows are never renumbered.
	query := `
		INSERT INTO business_images (business_id, filename, url, is_primary, position, created_at)
		SELECT $1, $2, $3, $4, COALESCE(MAX(position), 0) + 1, $5
		FROM business_images
		WHERE business_id = $1
		RETURNING id, position
	`

	err = tx.QueryRow(
		ctx,
		query,
		image.BusinessID,
		image.Filename,
		image.URL,
		image.IsPrimary,
		image.CreatedAt,
	).Scan(&image.ID, &image.Position)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *imageRepository) SetPrimary(ctx context.Context, id int64) (*model.BusinessImage, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var businessID int64
	err = tx.QueryRow(ctx, `SELECT business_id FROM business_images WHERE id = $1 FOR UPDATE`, id).Scan(&businessID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	clear := `UPDATE business_images SET is_primary = FALSE WHERE business_id = $1 AND id <> $2 AND is_primary`
	if _, err := tx.Exec(ctx, clear, businessID, id); err != nil {
		return nil, err
	}

	set := `UPDATE business_images SET is_primary = TRUE WHERE id = $1 RETURNING ` + imageColumns
	image, err := scanImage(tx.QueryRow(ctx, set, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return image, nil
}

func (r *imageRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM business_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return ensureAffected(tag)
}

func scanImage(src scanTarget) (*model.BusinessImage, error) {
	image := &model.BusinessImage{}
	err := src.Scan(
		&image.ID,
		&image.BusinessID,
		&image.Filename,
		&image.URL,
		&image.IsPrimary,
		&image.Position,
		&image.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return image, nil
}
