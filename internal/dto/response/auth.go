package response

import (
	"time"

	"event-ticketing/internal/data/entity"
)

type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse never carries the password hash or activation code.
type UserResponse struct {
	ID             string          `json:"id"`
	FullName       string          `json:"fullName"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Role           entity.UserRole `json:"role"`
	ProfilePicture string          `json:"profilePicture"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		FullName:       user.FullName,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		ProfilePicture: user.ProfilePicture,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
}
