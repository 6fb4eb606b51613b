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

type BannerService interface {
	Create(ctx context.Context, req *request.BannerRequest) (*response.BannerResponse, error)
	FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BannerResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*response.BannerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.BannerRequest) (*response.BannerResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*response.BannerResponse, error)
}

type bannerService struct {
	banners repository.BannerRepository
	log     *zap.Logger
}

func NewBannerService(banners repository.BannerRepository, log *zap.Logger) BannerService {
	return &bannerService{
		banners: banners,
		log:     log.With(zap.String("service", "banner")),
	}
}

func (s *bannerService) Create(ctx context.Context, req *request.BannerRequest) (*response.BannerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	banner := &entity.Banner{
		Base:   entity.NewBase(),
		Title:  req.Title,
		Image:  req.Image,
		IsShow: req.IsShow,
	}

	if err := s.banners.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("create banner: %w", err)
	}

	resp := response.BannerToResponse(banner)
	return &resp, nil
}

func (s *bannerService) FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BannerResponse], error) {
	banners, err := s.banners.FindAll(ctx, req.Search, req.PerPage(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find banners: %w", err)
	}

	total, err := s.banners.Count(ctx, req.Search)
	if err != nil {
		return nil, fmt.Errorf("count banners: %w", err)
	}

	data := make([]response.BannerResponse, len(banners))
	for i, b := range banners {
		data[i] = response.BannerToResponse(b)
	}

	return response.NewPaginatedResponse(data, req.CurrentPage(), req.PerPage(), total), nil
}

func (s *bannerService) FindOne(ctx context.Context, id uuid.UUID) (*response.BannerResponse, error) {
	banner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.BannerToResponse(banner)
	return &resp, nil
}

func (s *bannerService) Update(ctx context.Context, id uuid.UUID, req *request.BannerRequest) (*response.BannerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	banner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	banner.Title = req.Title
	banner.Image = req.Image
	banner.IsShow = req.IsShow
	banner.UpdatedAt = time.Now().UTC()

	if err := s.banners.Update(ctx, banner); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("banner not found")
		}
		return nil, fmt.Errorf("update banner: %w", err)
	}

	resp := response.BannerToResponse(banner)
	return &resp, nil
}

func (s *bannerService) Remove(ctx context.Context, id uuid.UUID) (*response.BannerResponse, error) {
	banner, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.banners.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("banner not found")
		}
		return nil, fmt.Errorf("delete banner: %w", err)
	}

	resp := response.BannerToResponse(banner)
	return &resp, nil
}

func (s *bannerService) find(ctx context.Context, id uuid.UUID) (*entity.Banner, error) {
	banner, err := s.banners.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find banner %s: %w", id, err)
	}
	if banner == nil {
		return nil, apperror.NotFound("banner not found")
	}
	return banner, nil
}
