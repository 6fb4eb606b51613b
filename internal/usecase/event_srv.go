package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	Create(ctx context.Context, userID uuid.UUID, req *request.EventRequest) (*response.EventResponse, error)
	FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*response.EventResponse, error)
	FindOneBySlug(ctx context.Context, slug string) (*response.EventResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.EventRequest) (*response.EventResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*response.EventResponse, error)
}

type eventService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewEventService(repo *repository.Repository, log *zap.Logger) EventService {
	return &eventService{
		repo: repo,
		log:  log.With(zap.String("service", "event")),
	}
}

// Slugify lowercases name and joins its words with "-".
func Slugify(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "-"))
}

func (s *eventService) Create(ctx context.Context, userID uuid.UUID, req *request.EventRequest) (*response.EventResponse, error) {
	categoryID, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		Base:      entity.NewBase(),
		CreatedBy: userID,
	}
	s.apply(event, categoryID, req)

	if err := s.repo.Event.Create(ctx, event); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("slug already in use")
		}
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("slug", event.Slug),
	)

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.EventResponse], error) {
	events, err := s.repo.Event.FindAll(ctx, req.Search, req.PerPage(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}

	total, err := s.repo.Event.Count(ctx, req.Search)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}

	data := make([]response.EventResponse, len(events))
	for i, e := range events {
		data[i] = response.EventToResponse(e)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), req.PerPage(), total), nil
}

func (s *eventService) FindOne(ctx context.Context, id uuid.UUID) (*response.EventResponse, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) FindOneBySlug(ctx context.Context, slug string) (*response.EventResponse, error) {
	event, err := s.repo.Event.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("find event by slug %q: %w", slug, err)
	}
	if event == nil {
		return nil, apperror.NotFound("event not found")
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, req *request.EventRequest) (*response.EventResponse, error) {
	categoryID, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	s.apply(event, categoryID, req)
	event.UpdatedAt = time.Now().UTC()

	if err := s.repo.Event.Update(ctx, event); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("event not found")
		case database.IsUniqueViolation(err):
			return nil, apperror.Conflict("slug already in use")
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

func (s *eventService) Remove(ctx context.Context, id uuid.UUID) (*response.EventResponse, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("event not found")
		case database.IsForeignKeyViolation(err):
			return nil, apperror.Conflict("event has orders")
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}

	s.log.Info("Event removed", zap.String("event_id", id.String()))

	resp := response.EventToResponse(event)
	return &resp, nil
}

// validate checks the request shape and that its category and region exist.
func (s *eventService) validate(ctx context.Context, req *request.EventRequest) (uuid.UUID, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return uuid.Nil, apperror.Validation("validation failed", errs)
	}

	categoryID := uuid.MustParse(req.Category)
	category, err := s.repo.Category.FindByID(ctx, categoryID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find category: %w", err)
	}
	if category == nil {
		return uuid.Nil, apperror.Validation("validation failed", map[string]string{
			"category": "Category does not exist",
		})
	}

	regency, err := s.repo.Region.FindRegencyByID(ctx, req.Location.Region)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find region: %w", err)
	}
	if regency == nil {
		return uuid.Nil, apperror.Validation("validation failed", map[string]string{
			"region": "Region does not exist",
		})
	}

	return categoryID, nil
}

func (s *eventService) apply(event *entity.Event, categoryID uuid.UUID, req *request.EventRequest) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	event.Name = req.Name
	event.Slug = slug
	event.StartDate = req.StartDate
	event.EndDate = req.EndDate
	event.Description = req.Description
	event.Banner = req.Banner
	event.CategoryID = categoryID
	event.IsFeatured = req.IsFeatured
	event.IsOnline = req.IsOnline
	event.IsPublish = req.IsPublish
	event.Location = entity.Location{
		Region:      req.Location.Region,
		Coordinates: req.Location.Coordinates,
	}
}

func (s *eventService) find(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event %s: %w", id, err)
	}
	if event == nil {
		return nil, apperror.NotFound("event not found")
	}
	return event, nil
}
