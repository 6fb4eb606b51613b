package wire

import (
	"event-ticketing/internal/adaptor"
	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/middleware"
	"event-ticketing/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// adminOnly guards catalog mutations.
func adminOnly(config *utils.Config, log *zap.Logger) chi.Middlewares {
	return chi.Middlewares{
		middleware.Auth(config.JWT.Secret, log),
		middleware.ACL(log, string(entity.RoleAdmin)),
	}
}

func wireCategory(r chi.Router, h *adaptor.CategoryHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/category", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Get("/{id}", h.FindOne)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly(config, log)...)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Remove)
		})
	})
}

func wireEvent(r chi.Router, h *adaptor.EventHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Get("/{id}", h.FindOne)
		r.Get("/{slug}/slug", h.FindOneBySlug)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly(config, log)...)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Remove)
		})
	})
}

func wireTicket(r chi.Router, h *adaptor.TicketHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/tickets", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Get("/{id}", h.FindOne)
		r.Get("/{eventId}/events", h.FindAllByEvent)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly(config, log)...)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Remove)
		})
	})
}

func wireBanner(r chi.Router, h *adaptor.BannerHandler, config *utils.Config, log *zap.Logger) {
	r.Route("/api/banners", func(r chi.Router) {
		r.Get("/", h.FindAll)
		r.Get("/{id}", h.FindOne)

		r.Group(func(r chi.Router) {
			r.Use(adminOnly(config, log)...)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Remove)
		})
	})
}
