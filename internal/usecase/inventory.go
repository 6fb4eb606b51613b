package usecase

import (
	"context"
	"errors"
	"fmt"

	"event-ticketing/internal/data/repository"
	"event-ticketing/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryLedger owns ticket stock. CheckAvailable is an optimistic read;
// Decrement is the authoritative, atomically guarded write.
type InventoryLedger struct {
	tickets repository.TicketRepository
	log     *zap.Logger
}

func NewInventoryLedger(tickets repository.TicketRepository, log *zap.Logger) *InventoryLedger {
	return &InventoryLedger{
		tickets: tickets,
		log:     log.With(zap.String("service", "inventory")),
	}
}

func (l *InventoryLedger) CheckAvailable(ctx context.Context, ticketID uuid.UUID, quantity int) (bool, error) {
	ticket, err := l.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return false, fmt.Errorf("load ticket %s: %w", ticketID, err)
	}
	if ticket == nil {
		return false, apperror.NotFound("ticket not found")
	}

	return ticket.Quantity >= quantity, nil
}

// Decrement joins the caller's transaction when ctx carries one.
func (l *InventoryLedger) Decrement(ctx context.Context, ticketID uuid.UUID, quantity int) error {
	err := l.tickets.DecrementStock(ctx, ticketID, quantity)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrInsufficientStock):
		l.log.Warn("Stock decrement rejected",
			zap.String("ticket_id", ticketID.String()),
			zap.Int("quantity", quantity),
		)
		return apperror.InsufficientStock("ticket quantity is not enough")
	case errors.Is(err, repository.ErrTicketNotFound):
		return apperror.NotFound("ticket not found")
	default:
		return fmt.Errorf("decrement ticket %s: %w", ticketID, err)
	}
}
