package adaptor

import (
	"event-ticketing/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Category *CategoryHandler
	Event    *EventHandler
	Ticket   *TicketHandler
	Banner   *BannerHandler
	Region   *RegionHandler
	Media    *MediaHandler
	Order    *OrderHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Category: NewCategoryHandler(service.Category, log),
		Event:    NewEventHandler(service.Event, log),
		Ticket:   NewTicketHandler(service.Ticket, log),
		Banner:   NewBannerHandler(service.Banner, log),
		Region:   NewRegionHandler(service.Region, log),
		Media:    NewMediaHandler(service.Media, log),
		Order:    NewOrderHandler(service.Order, log),
	}
}
