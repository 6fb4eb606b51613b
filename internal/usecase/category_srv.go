package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService interface {
	Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error)
	FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*response.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.CategoryRequest) (*response.CategoryResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*response.CategoryResponse, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	log        *zap.Logger
}

func NewCategoryService(categories repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &categoryService{
		categories: categories,
		log:        log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) Create(ctx context.Context, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	category := &entity.Category{
		Base:        entity.NewBase(),
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info("Category created", zap.String("category_id", category.ID.String()))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.categories.FindAll(ctx, req.Search, req.PerPage(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}

	total, err := s.categories.Count(ctx, req.Search)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}

	data := make([]response.CategoryResponse, len(categories))
	for i, c := range categories {
		data[i] = response.CategoryToResponse(c)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), req.PerPage(), total), nil
}

func (s *categoryService) FindOne(ctx context.Context, id uuid.UUID) (*response.CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req *request.CategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Name = req.Name
	category.Description = req.Description
	category.Icon = req.Icon
	category.UpdatedAt = time.Now().UTC()

	if err := s.categories.Update(ctx, category); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) Remove(ctx context.Context, id uuid.UUID) (*response.CategoryResponse, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("category not found")
		}
		return nil, fmt.Errorf("delete category: %w", err)
	}

	s.log.Info("Category removed", zap.String("category_id", id.String()))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) find(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category %s: %w", id, err)
	}
	if category == nil {
		return nil, apperror.NotFound("category not found")
	}
	return category, nil
}
