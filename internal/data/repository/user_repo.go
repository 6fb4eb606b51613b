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

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// FindByIdentifier matches either the email or the username.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
	FindByActivationCode(ctx context.Context, code string) (*entity.User, error)
	Activate(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewUserRepository(db database.DBTX, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, full_name, username, email, password_hash, role,
		       profile_picture, is_active, activation_code, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.ProfilePicture,
		&user.IsActive,
		&user.ActivationCode,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user record into the database
func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, full_name, username, email, password_hash, role,
		                   profile_picture, is_active, activation_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := database.Conn(ctx, ur.db).Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.ProfilePicture,
		user.IsActive,
		user.ActivationCode,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
			zap.String("username", user.Username),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(database.Conn(ctx, ur.db).QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user",
			zap.Error(err),
			zap.String("where", where),
		)
		return nil, fmt.Errorf("find user (%s): %w", where, err)
	}

	return user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id = $1", id)
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "LOWER(email) = LOWER($1)", email)
}

func (ur *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return ur.findOne(ctx, "username = $1", username)
}

func (ur *userRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	return ur.findOne(ctx, "(LOWER(email) = LOWER($1) OR username = $1)", identifier)
}

func (ur *userRepository) FindByActivationCode(ctx context.Context, code string) (*entity.User, error) {
	return ur.findOne(ctx, "activation_code = $1", code)
}

// Activate flips is_active and clears the one-time activation code
func (ur *userRepository) Activate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET is_active = TRUE, activation_code = NULL, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := database.Conn(ctx, ur.db).Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to activate user",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("activate user %s: %w", id.String(), err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
