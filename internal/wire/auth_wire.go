package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/activation", authHandler.Activation)

		r.With(middleware.Auth(config.JWT.Secret, log)).Get("/me", authHandler.Me)
	})
}
