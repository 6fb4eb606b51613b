package repository

import (
	"context"
	"errors"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *entity.Banner) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Banner, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Banner, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, banner *entity.Banner) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bannerRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewBannerRepository(db database.DBTX, log *zap.Logger) BannerRepository {
	return &bannerRepository{
		db:  db,
		log: log.With(zap.String("repository", "banner")),
	}
}

func scanBanner(row pgx.Row) (*entity.Banner, error) {
	var banner entity.Banner
	err := row.Scan(
		&banner.ID,
		&banner.Title,
		&banner.Image,
		&banner.IsShow,
		&banner.CreatedAt,
		&banner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepository) Create(ctx context.Context, banner *entity.Banner) error {
	query := `
		INSERT INTO banners (id, title, image, is_show, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		banner.ID,
		banner.Title,
		banner.Image,
		banner.IsShow,
		banner.CreatedAt,
		banner.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create banner", zap.Error(err), zap.String("title", banner.Title))
		return fmt.Errorf("create banner %s: %w", banner.Title, err)
	}

	return nil
}

func (r *bannerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Banner, error) {
	query := `
		SELECT id, title, image, is_show, created_at, updated_at
		FROM banners
		WHERE id = $1
	`

	banner, err := scanBanner(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find banner by ID", zap.Error(err), zap.String("banner_id", id.String()))
		return nil, fmt.Errorf("find banner by ID %s: %w", id.String(), err)
	}

	return banner, nil
}

func (r *bannerRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Banner, error) {
	query := `
		SELECT id, title, image, is_show, created_at, updated_at
		FROM banners
		WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, likeLiteral(search), limit, offset)
	if err != nil {
		r.log.Error("Failed to find banners", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("find banners: %w", err)
	}
	defer rows.Close()

	var banners []*entity.Banner
	for rows.Next() {
		banner, err := scanBanner(rows)
		if err != nil {
			r.log.Error("Failed to scan banner row", zap.Error(err))
			return nil, fmt.Errorf("scan banner row: %w", err)
		}
		banners = append(banners, banner)
	}

	return banners, rows.Err()
}

func (r *bannerRepository) Count(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM banners WHERE ($1 = '' OR title ILIKE '%' || $1 || '%')`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, likeLiteral(search)).Scan(&count); err != nil {
		r.log.Error("Failed to count banners", zap.Error(err))
		return 0, fmt.Errorf("count banners: %w", err)
	}

	return count, nil
}

func (r *bannerRepository) Update(ctx context.Context, banner *entity.Banner) error {
	query := `
		UPDATE banners
		SET title = $2, image = $3, is_show = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := database.Conn(ctx, r.db).Exec(ctx, query,
		banner.ID,
		banner.Title,
		banner.Image,
		banner.IsShow,
		banner.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update banner", zap.Error(err), zap.String("banner_id", banner.ID.String()))
		return fmt.Errorf("update banner %s: %w", banner.ID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *bannerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete banner", zap.Error(err), zap.String("banner_id", id.String()))
		return fmt.Errorf("delete banner %s: %w", id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
