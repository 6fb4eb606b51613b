package request

type RegisterRequest struct {
	FullName        string `json:"fullName" validate:"required,max=255"`
	Username        string `json:"username" validate:"required,min=3,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest accepts either the email or the username as identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ActivationRequest struct {
	Code string `json:"code" validate:"required"`
}
