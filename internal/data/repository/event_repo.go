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

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Event, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Event, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewEventRepository(db database.DBTX, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, name, slug, start_date, end_date, description, banner, category_id,
		       is_featured, is_online, is_publish, created_by,
		       location_region, location_latitude, location_longitude, created_at, updated_at`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var event entity.Event
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.Slug,
		&event.StartDate,
		&event.EndDate,
		&event.Description,
		&event.Banner,
		&event.CategoryID,
		&event.IsFeatured,
		&event.IsOnline,
		&event.IsPublish,
		&event.CreatedBy,
		&event.Location.Region,
		&event.Location.Coordinates[0],
		&event.Location.Coordinates[1],
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		event.ID,
		event.Name,
		event.Slug,
		event.StartDate,
		event.EndDate,
		event.Description,
		event.Banner,
		event.CategoryID,
		event.IsFeatured,
		event.IsOnline,
		event.IsPublish,
		event.CreatedBy,
		event.Location.Region,
		event.Location.Coordinates[0],
		event.Location.Coordinates[1],
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("name", event.Name),
			zap.String("slug", event.Slug),
		)
		return fmt.Errorf("create event %s: %w", event.Slug, err)
	}

	return nil
}

func (r *eventRepository) findOne(ctx context.Context, where string, arg any) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + where

	event, err := scanEvent(database.Conn(ctx, r.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event", zap.Error(err), zap.String("where", where))
		return nil, fmt.Errorf("find event (%s): %w", where, err)
	}

	return event, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *eventRepository) FindBySlug(ctx context.Context, slug string) (*entity.Event, error) {
	return r.findOne(ctx, "slug = $1", slug)
}

func (r *eventRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY start_date DESC, created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := database.Conn(ctx, r.db).Query(ctx, query, likeLiteral(search), limit, offset)
	if err != nil {
		r.log.Error("Failed to find events", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer rows.Close()

	var events []*entity.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			r.log.Error("Failed to scan event row", zap.Error(err))
			return nil, fmt.Errorf("scan event row: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (r *eventRepository) Count(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM events WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, likeLiteral(search)).Scan(&count); err != nil {
		r.log.Error("Failed to count events", zap.Error(err))
		return 0, fmt.Errorf("count events: %w", err)
	}

	return count, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	query := `
		UPDATE events
		SET name = $2, slug = $3, start_date = $4, end_date = $5, description = $6,
		    banner = $7, category_id = $8, is_featured = $9, is_online = $10, is_publish = $11,
		    location_region = $12, location_latitude = $13, location_longitude = $14, updated_at = $15
		WHERE id = $1
	`

	tag, err := database.Conn(ctx, r.db).Exec(ctx, query,
		event.ID,
		event.Name,
		event.Slug,
		event.StartDate,
		event.EndDate,
		event.Description,
		event.Banner,
		event.CategoryID,
		event.IsFeatured,
		event.IsOnline,
		event.IsPublish,
		event.Location.Region,
		event.Location.Coordinates[0],
		event.Location.Coordinates[1],
		event.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update event", zap.Error(err), zap.String("event_id", event.ID.String()))
		return fmt.Errorf("update event %s: %w", event.ID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete event", zap.Error(err), zap.String("event_id", id.String()))
		return fmt.Errorf("delete event %s: %w", id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
