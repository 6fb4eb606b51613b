package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(r chi.Router, h *adaptor.OrderHandler, config *utils.Config, log *zap.Logger) {
	admin := middleware.ACL(log, string(entity.RoleAdmin))
	member := middleware.ACL(log, string(entity.RoleMember))
	anyRole := middleware.ACL(log, string(entity.RoleAdmin), string(entity.RoleMember))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT.Secret, log))

		r.With(member).Post("/api/orders", h.Create)
		r.With(admin).Get("/api/orders", h.FindAll)
		r.With(anyRole).Get("/api/orders/{orderId}", h.FindOne)
		r.With(member).Get("/api/orders-history", h.FindAllByMember)

		// payment is confirmed out of band, so an operator moves the order on
		r.With(admin).Put("/api/orders/{orderId}/completed", h.Complete)
		r.With(admin).Put("/api/orders/{orderId}/cancelled", h.Cancel)

		r.With(admin).Delete("/api/orders/{orderId}", h.Remove)
	})
}
