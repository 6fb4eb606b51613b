package usecase

import (
	"time"

	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/events"
	"event-ticketing/internal/payment"
	"event-ticketing/internal/storage"
	"event-ticketing/pkg/cache"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/utils"

	"go.uber.org/zap"
)

// Deps are the collaborators services need beyond the repositories.
type Deps struct {
	Tx        database.Transactor
	Gateway   payment.Gateway
	Publisher events.Publisher
	Cache     cache.Cache
	Uploader  storage.Uploader
}

type Service struct {
	Auth     AuthService
	Category CategoryService
	Event    EventService
	Ticket   TicketService
	Banner   BannerService
	Region   RegionService
	Media    MediaService
	Order    OrderService
}

func NewService(repo *repository.Repository, deps Deps, config *utils.Config, log *zap.Logger) *Service {
	regionTTL := time.Duration(config.Redis.RegionTTLMinutes) * time.Minute

	return &Service{
		Auth:     NewAuthService(repo.User, config.JWT, log),
		Category: NewCategoryService(repo.Category, log),
		Event:    NewEventService(repo, log),
		Ticket:   NewTicketService(repo, log),
		Banner:   NewBannerService(repo.Banner, log),
		Region:   NewRegionService(repo.Region, deps.Cache, regionTTL, log),
		Media:    NewMediaService(deps.Uploader, log),
		Order:    NewOrderService(repo, deps.Tx, deps.Gateway, deps.Publisher, config.Order, log),
	}
}
