package entity

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

const DefaultProfilePicture = "user.jpg"

type User struct {
	Base
	FullName       string   `db:"full_name"`
	Username       string   `db:"username"`
	Email          string   `db:"email"`
	PasswordHash   string   `db:"password_hash"`
	Role           UserRole `db:"role"`
	ProfilePicture string   `db:"profile_picture"`
	IsActive       bool     `db:"is_active"`
	ActivationCode *string  `db:"activation_code"`
}
