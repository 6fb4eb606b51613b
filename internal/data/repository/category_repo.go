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

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewCategoryRepository(db database.DBTX, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		db:  db,
		log: log.With(zap.String("repository", "category")),
	}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var category entity.Category
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.Icon,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, description, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.Icon,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create category", zap.Error(err), zap.String("name", category.Name))
		return fmt.Errorf("create category %s: %w", category.Name, err)
	}

	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	query := `
		SELECT id, name, description, icon, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	category, err := scanCategory(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category by ID", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("find category by ID %s: %w", id.String(), err)
	}

	return category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	query := `
		SELECT id, name, description, icon, created_at, updated_at
		FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, likeLiteral(search), limit, offset)
	if err != nil {
		r.log.Error("Failed to find categories", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *categoryRepository) Count(ctx context.Context, search string) (int64, error) {
	query := `
		SELECT COUNT(*) FROM categories
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
	`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, likeLiteral(search)).Scan(&count); err != nil {
		r.log.Error("Failed to count categories", zap.Error(err))
		return 0, fmt.Errorf("count categories: %w", err)
	}

	return count, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	query := `
		UPDATE categories
		SET name = $2, description = $3, icon = $4, updated_at = $5
		WHERE id = $1
	`

	tag, err := database.Conn(ctx, r.db).Exec(ctx, query,
		category.ID,
		category.Name,
		category.Description,
		category.Icon,
		category.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update category", zap.Error(err), zap.String("category_id", category.ID.String()))
		return fmt.Errorf("update category %s: %w", category.ID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete category", zap.Error(err), zap.String("category_id", id.String()))
		return fmt.Errorf("delete category %s: %w", id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
