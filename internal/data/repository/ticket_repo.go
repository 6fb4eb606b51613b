package repository

import (
	"context"
	"errors"
	"fmt"

	"event-ticketing/internal/data/entity"
	"event-ticketing/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrTicketNotFound    = errors.New("ticket not found")
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Ticket, error)
	Count(ctx context.Context, search string) (int64, error)
	FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Ticket, error)
	Update(ctx context.Context, ticket *entity.Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error

	// DecrementStock subtracts quantity only when enough stock remains.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error
}

type ticketRepository struct {
	db  database.DBTX
	log *zap.Logger
}

func NewTicketRepository(db database.DBTX, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketColumns = `id, event_id, name, description, price, quantity, created_at, updated_at`

func scanTicket(row pgx.Row) (*entity.Ticket, error) {
	var ticket entity.Ticket
	err := row.Scan(
		&ticket.ID,
		&ticket.EventID,
		&ticket.Name,
		&ticket.Description,
		&ticket.Price,
		&ticket.Quantity,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (` + ticketColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := database.Conn(ctx, r.db).Exec(ctx, query,
		ticket.ID,
		ticket.EventID,
		ticket.Name,
		ticket.Description,
		ticket.Price,
		ticket.Quantity,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("event_id", ticket.EventID.String()),
			zap.String("name", ticket.Name),
		)
		return fmt.Errorf("create ticket %s: %w", ticket.Name, err)
	}

	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(database.Conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID", zap.Error(err), zap.String("ticket_id", id.String()))
		return nil, fmt.Errorf("find ticket by ID %s: %w", id.String(), err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, likeLiteral(search), limit, offset)
}

func (r *ticketRepository) Count(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM tickets WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	var count int64
	if err := database.Conn(ctx, r.db).QueryRow(ctx, query, likeLiteral(search)).Scan(&count); err != nil {
		r.log.Error("Failed to count tickets", zap.Error(err))
		return 0, fmt.Errorf("count tickets: %w", err)
	}

	return count, nil
}

func (r *ticketRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Ticket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM tickets
		WHERE event_id = $1
		ORDER BY price ASC
	`

	return r.list(ctx, query, eventID)
}

func (r *ticketRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Ticket, error) {
	rows, err := database.Conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find tickets", zap.Error(err))
		return nil, fmt.Errorf("find tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*entity.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		UPDATE tickets
		SET event_id = $2, name = $3, description = $4, price = $5, quantity = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := database.Conn(ctx, r.db).Exec(ctx, query,
		ticket.ID,
		ticket.EventID,
		ticket.Name,
		ticket.Description,
		ticket.Price,
		ticket.Quantity,
		ticket.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update ticket", zap.Error(err), zap.String("ticket_id", ticket.ID.String()))
		return fmt.Errorf("update ticket %s: %w", ticket.ID.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, r.db).Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete ticket", zap.Error(err), zap.String("ticket_id", id.String()))
		return fmt.Errorf("delete ticket %s: %w", id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DecrementStock is a single guarded UPDATE, so concurrent callers can never
// drive quantity below zero. Zero affected rows means the ticket is missing or
// short of stock; a follow-up read tells the two apart.
func (r *ticketRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	conn := database.Conn(ctx, r.db)

	query := `
		UPDATE tickets
		SET quantity = quantity - $2, updated_at = NOW()
		WHERE id = $1 AND quantity >= $2
	`

	tag, err := conn.Exec(ctx, query, id, quantity)
	if err != nil {
		r.log.Error("Failed to decrement ticket stock",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
			zap.Int("quantity", quantity),
		)
		return fmt.Errorf("decrement ticket %s stock: %w", id.String(), err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := conn.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check ticket %s: %w", id.String(), err)
	}
	if !exists {
		return ErrTicketNotFound
	}
	return ErrInsufficientStock
}
