package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-ticketing/internal/data/entity"
	"event-ticketing/internal/data/repository"
	"event-ticketing/internal/dto/request"
	"event-ticketing/internal/dto/response"
	"event-ticketing/pkg/apperror"
	"event-ticketing/pkg/database"
	"event-ticketing/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketService interface {
	Create(ctx context.Context, req *request.TicketRequest) (*response.TicketResponse, error)
	FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	FindOne(ctx context.Context, id uuid.UUID) (*response.TicketResponse, error)
	FindAllByEvent(ctx context.Context, eventID uuid.UUID) ([]response.TicketResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *request.TicketRequest) (*response.TicketResponse, error)
	Remove(ctx context.Context, id uuid.UUID) (*response.TicketResponse, error)
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

func (s *ticketService) Create(ctx context.Context, req *request.TicketRequest) (*response.TicketResponse, error) {
	eventID, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	ticket := &entity.Ticket{
		Base:        entity.NewBase(),
		EventID:     eventID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}

	if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	s.log.Info("Ticket created",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("event_id", eventID.String()),
		zap.Int("quantity", ticket.Quantity),
	)

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) FindAll(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	tickets, err := s.repo.Ticket.FindAll(ctx, req.Search, req.PerPage(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("find tickets: %w", err)
	}

	total, err := s.repo.Ticket.Count(ctx, req.Search)
	if err != nil {
		return nil, fmt.Errorf("count tickets: %w", err)
	}

	return response.NewPaginatedResponse(ticketsToResponse(tickets), req.CurrentPage(), req.PerPage(), total), nil
}

func (s *ticketService) FindOne(ctx context.Context, id uuid.UUID) (*response.TicketResponse, error) {
	ticket, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) FindAllByEvent(ctx context.Context, eventID uuid.UUID) ([]response.TicketResponse, error) {
	tickets, err := s.repo.Ticket.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("find tickets for event %s: %w", eventID, err)
	}
	return ticketsToResponse(tickets), nil
}

// Update replaces the tier's fields. Orders already placed keep the total
// computed at creation.
func (s *ticketService) Update(ctx context.Context, id uuid.UUID, req *request.TicketRequest) (*response.TicketResponse, error) {
	eventID, err := s.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	ticket, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	ticket.EventID = eventID
	ticket.Name = req.Name
	ticket.Description = req.Description
	ticket.Price = req.Price
	ticket.Quantity = req.Quantity
	ticket.UpdatedAt = time.Now().UTC()

	if err := s.repo.Ticket.Update(ctx, ticket); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound("ticket not found")
		}
		return nil, fmt.Errorf("update ticket: %w", err)
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) Remove(ctx context.Context, id uuid.UUID) (*response.TicketResponse, error) {
	ticket, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Ticket.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperror.NotFound("ticket not found")
		case database.IsForeignKeyViolation(err):
			return nil, apperror.Conflict("ticket has orders")
		}
		return nil, fmt.Errorf("delete ticket: %w", err)
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) validate(ctx context.Context, req *request.TicketRequest) (uuid.UUID, error) {
	errs := utils.ValidateStruct(req)
	// the gateway charges whole currency units
	if req.Price.IsNegative() || !req.Price.IsInteger() {
		if errs == nil {
			errs = make(map[string]string)
		}
		if req.Price.IsNegative() {
			errs["price"] = "Must be at least 0"
		} else {
			errs["price"] = "Must be a whole amount"
		}
	}
	if len(errs) > 0 {
		return uuid.Nil, apperror.Validation("validation failed", errs)
	}

	eventID := uuid.MustParse(req.Events)
	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return uuid.Nil, apperror.NotFound("event not found")
	}
	return eventID, nil
}

func (s *ticketService) find(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.repo.Ticket.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ticket %s: %w", id, err)
	}
	if ticket == nil {
		return nil, apperror.NotFound("ticket not found")
	}
	return ticket, nil
}

func ticketsToResponse(tickets []*entity.Ticket) []response.TicketResponse {
	data := make([]response.TicketResponse, len(tickets))
	for i, t := range tickets {
		data[i] = response.TicketToResponse(t)
	}
	return data
}
