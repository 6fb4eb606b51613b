package adaptor

import (
	"net/http"

	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/usecase"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "register")
		return
	}

	utils.ResponseSuccess(w, "Success registration user", user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login success", token.Token)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Success get user profile", user)
}

// Activation handles POST /api/auth/activation
func (h *AuthHandler) Activation(w http.ResponseWriter, r *http.Request) {
	var req request.ActivationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.Activate(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "activate user")
		return
	}

	utils.ResponseSuccess(w, "User successfully activated", user)
}
