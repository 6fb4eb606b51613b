package repository

import (
	"errors"
	"strings"

	"event-ticketing/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by mutations that matched no row.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Event    EventRepository
	Ticket   TicketRepository
	Banner   BannerRepository
	Region   RegionRepository
	Order    OrderRepository
}

func NewRepository(db database.DBTX, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(db, log),
		Category: NewCategoryRepository(db, log),
		Event:    NewEventRepository(db, log),
		Ticket:   NewTicketRepository(db, log),
		Banner:   NewBannerRepository(db, log),
		Region:   NewRegionRepository(db, log),
		Order:    NewOrderRepository(db, log),
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeLiteral escapes search so ILIKE treats it as plain text.
func likeLiteral(search string) string {
	return likeEscaper.Replace(search)
}
