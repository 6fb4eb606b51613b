package usecase

import (
	"context"
	"errors"
	"fmt"

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

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Activate(ctx context.Context, req *request.ActivationRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	users  repository.UserRepository
	config utils.JWTConfig
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, config utils.JWTConfig, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation("validation failed", errs)
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	existing, err = s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("username already taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	code, err := utils.GenerateActivationCode()
	if err != nil {
		return nil, fmt.Errorf("generate activation code: %w", err)
	}

	user := &entity.User{
		Base:           entity.NewBase(),
		FullName:       req.FullName,
		Username:       req.Username,
		Email:          req.Email,
		PasswordHash:   hash,
		Role:           entity.RoleMember,
		ProfilePicture: entity.DefaultProfilePicture,
		IsActive:       false,
		ActivationCode: &code,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperror.Conflict("email or username already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	// No mail delivery here; the code is logged for whoever operates the instance.
	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("activation_code", code),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Activate(ctx context.Context, req *request.ActivationRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	user, err := s.users.FindByActivationCode(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("find activation code: %w", err)
	}
	if user == nil {
		return nil, apperror.NotFound("activation code not found")
	}

	if err := s.users.Activate(ctx, user.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, fmt.Errorf("activate user: %w", err)
	}

	user.IsActive = true
	user.ActivationCode = nil

	s.log.Info("User activated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.Validation("validation failed", errs)
	}

	user, err := s.users.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login failed", zap.String("identifier", req.Identifier))
		return nil, apperror.Unauthorized("invalid credentials")
	}
	if !user.IsActive {
		return nil, apperror.Forbidden("account is not activated")
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), s.config)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return &response.LoginResponse{Token: token}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", userID, err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
