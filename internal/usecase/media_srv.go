package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/storage"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type MediaService interface {
	UploadSingle(ctx context.Context, file io.Reader) (*storage.File, error)
	UploadMultiple(ctx context.Context, files []io.Reader) ([]*storage.File, error)
	Remove(ctx context.Context, req *request.RemoveMediaRequest) error
}

type mediaService struct {
	uploader storage.Uploader
	log      *zap.Logger
}

func NewMediaService(uploader storage.Uploader, log *zap.Logger) MediaService {
	return &mediaService{
		uploader: uploader,
		log:      log.With(zap.String("service", "media")),
	}
}

func (s *mediaService) UploadSingle(ctx context.Context, file io.Reader) (*storage.File, error) {
	if file == nil {
		return nil, apperror.Validation("validation failed", map[string]string{"file": "This field is required"})
	}

	stored, err := s.uploader.Upload(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	s.log.Info("File uploaded",
		zap.String("public_id", stored.PublicID),
		zap.String("content_type", stored.ContentType),
		zap.Int64("size", stored.Size),
	)
	return stored, nil
}

// UploadMultiple stores files in order. Files stored before a failure are
// removed again.
func (s *mediaService) UploadMultiple(ctx context.Context, files []io.Reader) ([]*storage.File, error) {
	if len(files) == 0 {
		return nil, apperror.Validation("validation failed", map[string]string{"files": "This field is required"})
	}

	stored := make([]*storage.File, 0, len(files))
	for i, file := range files {
		f, err := s.uploader.Upload(ctx, file)
		if err != nil {
			s.discard(ctx, stored)
			return nil, fmt.Errorf("upload file %d: %w", i, err)
		}
		stored = append(stored, f)
	}

	s.log.Info("Files uploaded", zap.Int("count", len(stored)))
	return stored, nil
}

func (s *mediaService) Remove(ctx context.Context, req *request.RemoveMediaRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation("validation failed", errs)
	}

	if err := s.uploader.Remove(ctx, req.FileURL); err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return apperror.NotFound("file not found")
		}
		return fmt.Errorf("remove file: %w", err)
	}

	s.log.Info("File removed", zap.String("url", req.FileURL))
	return nil
}

func (s *mediaService) discard(ctx context.Context, files []*storage.File) {
	for _, f := range files {
		if err := s.uploader.Remove(context.WithoutCancel(ctx), f.URL); err != nil {
			s.log.Warn("Failed to discard partial upload", zap.String("url", f.URL), zap.Error(err))
		}
	}
}
